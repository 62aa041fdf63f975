package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
)

// InsertBlockTransactions stores index rows. Re-inserting a block replaces its rows on merge.
func (r *Repository) InsertBlockTransactions(ctx context.Context, txs []model.BlockTransaction) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_block_transactions", r.network, err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	const query = `
INSERT INTO utxo_block_transactions (
	network,
	block_hash,
	block_height,
	tx_index,
	txid,
	tx_count
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare block transactions batch: %w", err)
	}

	for _, tx := range txs {
		if tx.Network != r.network {
			err = fmt.Errorf("block transaction %s is for %s, repository serves %s", tx.TxID, tx.Network, r.network)
			_ = batch.Abort()
			return err
		}
		if err = batch.Append(
			string(tx.Network),
			tx.BlockHash,
			tx.BlockHeight,
			tx.TxIndex,
			tx.TxID,
			tx.TxCount,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block transaction: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert block transactions: %w", err)
	}
	return nil
}

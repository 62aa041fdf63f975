package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
)

// BlockTxIDs returns a window of a block's transaction ids in on-chain order together with the
// block's declared transaction count.
func (r *Repository) BlockTxIDs(ctx context.Context, blockHash string, offset, limit int) (page model.TxIDPage, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_txids", r.network, err, start)
	}()

	if offset < 0 || limit <= 0 {
		return model.TxIDPage{}, fmt.Errorf("invalid window offset=%d limit=%d", offset, limit)
	}

	const query = `
SELECT
	txid,
	tx_count
FROM utxo_block_transactions FINAL
WHERE network = ? AND block_hash = ?
ORDER BY tx_index ASC
LIMIT ? OFFSET ?`

	rows, err := r.conn.Query(ctx, query, string(r.network), blockHash, limit, offset)
	if err != nil {
		return model.TxIDPage{}, fmt.Errorf("query block txids: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	ids := make([]string, 0, limit)
	var total uint32
	for rows.Next() {
		var txid string
		if err = rows.Scan(&txid, &total); err != nil {
			return model.TxIDPage{}, fmt.Errorf("scan block txid: %w", err)
		}
		ids = append(ids, txid)
	}
	if err = rows.Err(); err != nil {
		return model.TxIDPage{}, fmt.Errorf("iterate block txids: %w", err)
	}
	if len(ids) == 0 {
		err = fmt.Errorf("%w: %s at offset %d", ErrNotFound, blockHash, offset)
		return model.TxIDPage{}, err
	}

	return model.TxIDPage{TxIDs: ids, Total: int(total)}, nil
}

// Package indexer copies block transaction id lists from a node into the tx-id index, so the
// assembler can page through large blocks without asking the node each time.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/batcher"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/safe"
	"go.uber.org/zap"
)

const (
	// DefaultFlushBlocks is the number of blocks buffered before a ClickHouse insert.
	DefaultFlushBlocks = 20
	// DefaultFlushInterval flushes a partial buffer when blocks arrive slowly.
	DefaultFlushInterval = 5 * time.Second
)

// Config bounds one indexing run.
type Config struct {
	Network model.Network
	From    uint64
	To      uint64
	// Resume starts after the run of consecutive indexed heights beginning at From.
	Resume        bool
	FlushBlocks   int
	FlushInterval time.Duration
	FlushRPS      int
}

// Indexer copies the transaction id lists of a height range into a Store.
type Indexer struct {
	blocks BlockReader
	store  Store
	cfg    Config
	logger *zap.Logger
}

// New validates cfg and fills flush defaults.
func New(blocks BlockReader, store Store, cfg Config, logger *zap.Logger) (*Indexer, error) {
	if blocks == nil || store == nil {
		return nil, errors.New("block reader and store are required")
	}
	if cfg.Network == "" {
		return nil, errors.New("network is required")
	}
	if cfg.To < cfg.From {
		return nil, fmt.Errorf("invalid height range %d..%d", cfg.From, cfg.To)
	}
	if cfg.FlushBlocks <= 0 {
		cfg.FlushBlocks = DefaultFlushBlocks
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{
		blocks: blocks,
		store:  store,
		cfg:    cfg,
		logger: logger.Named("block_indexer"),
	}, nil
}

// Run indexes every block in the configured range and returns how many blocks were read.
// Blocks are written in batches; a block's rows always land in a single insert.
func (i *Indexer) Run(ctx context.Context) (int, error) {
	from, err := i.startHeight(ctx)
	if err != nil {
		return 0, err
	}
	if from > i.cfg.To {
		i.logger.Info("index already up to date", zap.Uint64("to", i.cfg.To))
		return 0, nil
	}

	b := batcher.New(i.logger, i.flush, i.cfg.FlushBlocks, i.cfg.FlushInterval, i.cfg.FlushRPS)
	b.Start(ctx)

	read := 0
	var runErr error
	for height := from; height <= i.cfg.To; height++ {
		block, err := i.blocks.BlockAtHeight(ctx, height)
		if err != nil {
			runErr = fmt.Errorf("read block %d: %w", height, err)
			break
		}
		if err := b.Add(ctx, block); err != nil {
			runErr = fmt.Errorf("queue block %d: %w", height, err)
			break
		}
		read++
		i.logger.Debug("block queued", zap.Uint64("height", height), zap.Int("txs", block.TxCount))
	}

	if err := b.Stop(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("write blocks: %w", err))
	}
	if runErr != nil {
		return read, runErr
	}

	i.logger.Info("blocks indexed", zap.Uint64("from", from), zap.Uint64("to", i.cfg.To), zap.Int("blocks", read))
	return read, nil
}

func (i *Indexer) startHeight(ctx context.Context) (uint64, error) {
	if !i.cfg.Resume {
		return i.cfg.From, nil
	}
	indexed, err := i.store.ContiguousIndexedBlocks(ctx, i.cfg.From)
	if err != nil {
		return 0, fmt.Errorf("contiguous indexed blocks: %w", err)
	}
	if indexed > 0 {
		i.logger.Info("resuming after contiguous indexed blocks",
			zap.Uint64("from", i.cfg.From),
			zap.Uint64("indexed", indexed),
		)
	}
	return i.cfg.From + indexed, nil
}

func (i *Indexer) flush(ctx context.Context, blocks []model.BlockSummary) error {
	rows, err := Rows(i.cfg.Network, blocks)
	if err != nil {
		return err
	}
	return i.store.InsertBlockTransactions(ctx, rows)
}

// Rows flattens blocks into index rows.
func Rows(network model.Network, blocks []model.BlockSummary) ([]model.BlockTransaction, error) {
	size := 0
	for _, block := range blocks {
		size += len(block.TxIDs)
	}

	rows := make([]model.BlockTransaction, 0, size)
	for _, block := range blocks {
		count, err := safe.Uint32(len(block.TxIDs))
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", block.Hash, err)
		}
		for idx, txid := range block.TxIDs {
			rows = append(rows, model.BlockTransaction{
				Network:     network,
				BlockHash:   block.Hash,
				BlockHeight: block.Height,
				TxIndex:     uint32(idx), //nolint:gosec // Bounded by count above.
				TxID:        txid,
				TxCount:     count,
			})
		}
	}
	return rows, nil
}

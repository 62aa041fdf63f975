package indexer

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockReader returns best-chain blocks with their ids in on-chain order.
	BlockReader interface {
		BlockAtHeight(ctx context.Context, height uint64) (model.BlockSummary, error)
	}

	// Store persists index rows.
	Store interface {
		InsertBlockTransactions(ctx context.Context, txs []model.BlockTransaction) error
		ContiguousIndexedBlocks(ctx context.Context, from uint64) (uint64, error)
	}
)

package assembler

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// TransactionSource returns a transaction with its containing block.
type TransactionSource interface {
	RawTransaction(ctx context.Context, txid string) (model.RawTransaction, error)
}

// TxIDSource pages through a block's transaction ids in on-chain order.
type TxIDSource interface {
	BlockTxIDs(ctx context.Context, blockHash string, offset, limit int) (model.TxIDPage, error)
}

// HeaderSource returns a block's raw 80-byte header as hex.
type HeaderSource interface {
	BlockHeader(ctx context.Context, blockHash string) (string, error)
}

// SecondChainSource reads the second chain's block index.
type SecondChainSource interface {
	ListBlocks(ctx context.Context, offset, limit int) (model.SecondChainPage, error)
	BlockByHeight(ctx context.Context, height uint64) (model.SecondChainBlock, error)
}

// Locator resolves the second chain block anchored to a Bitcoin height.
type Locator interface {
	Locate(ctx context.Context, burnHeight uint64) (model.SecondChainBlock, error)
}

// Metrics records assembly outcomes.
type Metrics interface {
	ObserveAssemble(outcome string, started time.Time)
	ObserveLocate(err error, started time.Time)
	ObserveBlockTxIDs(pages, txids int)
}

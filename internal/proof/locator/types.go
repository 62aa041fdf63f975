package locator

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// BlockLister pages through the second chain's blocks, newest first.
type BlockLister interface {
	ListBlocks(ctx context.Context, offset, limit int) (model.SecondChainPage, error)
}

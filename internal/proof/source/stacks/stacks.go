// Package stacks reads the second chain's block index from a Stacks API node.
package stacks

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/source/restclient"
)

// Source is a Stacks API backed block index.
type Source struct {
	client *restclient.Client
}

// New wraps client, whose base URL must point at the API host (for example
// https://api.hiro.so).
func New(client *restclient.Client) *Source {
	return &Source{client: client}
}

type block struct {
	Canonical       bool   `json:"canonical"`
	Height          uint64 `json:"height"`
	Hash            string `json:"hash"`
	BurnBlockHeight uint64 `json:"burn_block_height"`
	BurnBlockHash   string `json:"burn_block_hash"`
}

type blockList struct {
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
	Total   int     `json:"total"`
	Results []block `json:"results"`
}

// ListBlocks returns one page of blocks, newest first.
func (s *Source) ListBlocks(ctx context.Context, offset, limit int) (model.SecondChainPage, error) {
	var res blockList
	query := map[string]string{
		"offset": strconv.Itoa(offset),
		"limit":  strconv.Itoa(limit),
	}
	if err := s.client.GetJSON(ctx, "list_blocks", "/extended/v1/block", query, &res); err != nil {
		return model.SecondChainPage{}, fmt.Errorf("list blocks at offset %d: %w", offset, err)
	}

	page := model.SecondChainPage{
		Offset:  res.Offset,
		Limit:   res.Limit,
		Total:   res.Total,
		Results: make([]model.SecondChainBlock, 0, len(res.Results)),
	}
	for _, b := range res.Results {
		page.Results = append(page.Results, convertBlock(b))
	}
	return page, nil
}

// BlockByHeight returns the block at a second chain height.
func (s *Source) BlockByHeight(ctx context.Context, height uint64) (model.SecondChainBlock, error) {
	var res block
	path := "/extended/v1/block/by_height/" + strconv.FormatUint(height, 10)
	if err := s.client.GetJSON(ctx, "block_by_height", path, nil, &res); err != nil {
		return model.SecondChainBlock{}, fmt.Errorf("get block at height %d: %w", height, err)
	}
	return convertBlock(res), nil
}

func convertBlock(b block) model.SecondChainBlock {
	return model.SecondChainBlock{
		Height:          b.Height,
		Hash:            b.Hash,
		BurnBlockHeight: b.BurnBlockHeight,
		BurnBlockHash:   b.BurnBlockHash,
		Canonical:       b.Canonical,
	}
}

package bitcoin

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/hexcodec"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/safe"
)

var errEmptyResult = errors.New("empty rpc result")

// NodeSource serves transactions, block id lists and headers from a bitcoind node. The node
// must run with txindex for transactions outside the mempool.
type NodeSource struct {
	rpc RPCClient
}

// NewNodeSource wraps an (instrumented) RPC client.
func NewNodeSource(rpc RPCClient) *NodeSource {
	return &NodeSource{rpc: rpc}
}

// RawTransaction returns the transaction and, once confirmed, its block hash and height.
func (s *NodeSource) RawTransaction(ctx context.Context, txid string) (model.RawTransaction, error) {
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("parse txid %q: %w", txid, err)
	}

	res, err := await(ctx, func() (*btcjson.TxRawResult, error) { return s.rpc.GetRawTransactionVerbose(hash) })
	if err == nil && res == nil {
		err = errEmptyResult
	}
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	tx, err := BuildTransactionFromVerbose(*res)
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("transaction %s: %w", txid, err)
	}
	if tx.BlockHash == "" {
		return tx, nil
	}

	blockHash, err := chainhash.NewHashFromStr(tx.BlockHash)
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("transaction %s block hash: %w", txid, err)
	}
	hdr, err := await(ctx, func() (*btcjson.GetBlockHeaderVerboseResult, error) { return s.rpc.GetBlockHeaderVerbose(blockHash) })
	if err == nil && hdr == nil {
		err = errEmptyResult
	}
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("get block header %s: %w", tx.BlockHash, err)
	}
	height, err := safe.Uint64(hdr.Height)
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("block %s height: %w", tx.BlockHash, err)
	}
	tx.BlockHeight = height
	return tx, nil
}

// BlockTxIDs returns a window of the block's ids; the node serves the whole list at once.
func (s *NodeSource) BlockTxIDs(ctx context.Context, blockHash string, offset, limit int) (model.TxIDPage, error) {
	hash, err := chainhash.NewHashFromStr(blockHash)
	if err != nil {
		return model.TxIDPage{}, fmt.Errorf("parse block hash %q: %w", blockHash, err)
	}
	res, err := await(ctx, func() (*btcjson.GetBlockVerboseResult, error) { return s.rpc.GetBlockVerbose(hash) })
	if err == nil && res == nil {
		err = errEmptyResult
	}
	if err != nil {
		return model.TxIDPage{}, fmt.Errorf("get block %s: %w", blockHash, err)
	}

	page := model.TxIDPage{Total: len(res.Tx)}
	if offset < 0 || offset >= len(res.Tx) {
		return page, nil
	}
	end := len(res.Tx)
	if limit > 0 {
		end = min(offset+limit, len(res.Tx))
	}
	page.TxIDs = res.Tx[offset:end]
	return page, nil
}

// BlockAtHeight returns the best-chain block at height with its ids in on-chain order.
func (s *NodeSource) BlockAtHeight(ctx context.Context, height uint64) (model.BlockSummary, error) {
	h, err := safe.Int64(height)
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("block height: %w", err)
	}
	hash, err := await(ctx, func() (*chainhash.Hash, error) { return s.rpc.GetBlockHash(h) })
	if err == nil && hash == nil {
		err = errEmptyResult
	}
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("get block hash %d: %w", height, err)
	}
	res, err := await(ctx, func() (*btcjson.GetBlockVerboseResult, error) { return s.rpc.GetBlockVerbose(hash) })
	if err == nil && res == nil {
		err = errEmptyResult
	}
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("get block %s: %w", hash, err)
	}
	return model.BlockSummary{
		Hash:    res.Hash,
		Height:  height,
		TxIDs:   res.Tx,
		TxCount: len(res.Tx),
	}, nil
}

// BlockHeader returns the raw header hex.
func (s *NodeSource) BlockHeader(ctx context.Context, blockHash string) (string, error) {
	hash, err := chainhash.NewHashFromStr(blockHash)
	if err != nil {
		return "", fmt.Errorf("parse block hash %q: %w", blockHash, err)
	}
	hdr, err := await(ctx, func() (*wire.BlockHeader, error) { return s.rpc.GetBlockHeader(hash) })
	if err == nil && hdr == nil {
		err = errEmptyResult
	}
	if err != nil {
		return "", fmt.Errorf("get block header %s: %w", blockHash, err)
	}

	var buf bytes.Buffer
	if err := hdr.Serialize(&buf); err != nil {
		return "", fmt.Errorf("serialize block header %s: %w", blockHash, err)
	}
	return hexcodec.Encode(buf.Bytes()), nil
}

// await runs a blocking RPC call and gives up when ctx ends first. The call itself keeps
// running until the node answers; its result is dropped.
func await[T any](ctx context.Context, call func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		val, err := call()
		done <- result{val: val, err: err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-done:
		return res.val, res.err
	}
}

package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// rpcClient wraps an RPC client with metrics instrumentation.
type rpcClient struct {
	client     RPCClient
	rpcMetrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client.
func NewRPCClient(client RPCClient, rpcMetrics RPCMetrics) RPCClient {
	return &rpcClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// GetRawTransactionVerbose returns a decoded transaction with its raw hex.
func (r *rpcClient) GetRawTransactionVerbose(txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_raw_transaction_verbose", err, started)
	}()
	return r.client.GetRawTransactionVerbose(txHash)
}

// GetBlockHeaderVerbose returns header fields including the height.
func (r *rpcClient) GetBlockHeaderVerbose(blockHash *chainhash.Hash) (res *btcjson.GetBlockHeaderVerboseResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_header_verbose", err, started)
	}()
	return r.client.GetBlockHeaderVerbose(blockHash)
}

// GetBlockHeader returns the decoded 80-byte header.
func (r *rpcClient) GetBlockHeader(blockHash *chainhash.Hash) (res *wire.BlockHeader, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_header", err, started)
	}()
	return r.client.GetBlockHeader(blockHash)
}

// GetBlockVerbose returns a block with its transaction ids.
func (r *rpcClient) GetBlockVerbose(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_verbose", err, started)
	}()
	return r.client.GetBlockVerbose(blockHash)
}

// GetBlockHash returns the hash of the best-chain block at height.
func (r *rpcClient) GetBlockHash(blockHeight int64) (res *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

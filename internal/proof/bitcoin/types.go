package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCClient is the subset of bitcoind RPC the node source uses.
	RPCClient interface {
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
		GetBlockHeaderVerbose(blockHash *chainhash.Hash) (*btcjson.GetBlockHeaderVerboseResult, error)
		GetBlockHeader(blockHash *chainhash.Hash) (*wire.BlockHeader, error)
		GetBlockVerbose(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseResult, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

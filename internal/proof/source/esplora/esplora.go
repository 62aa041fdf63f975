// Package esplora reads transactions, block id lists and raw headers from an Esplora API
// (Blockstream, mempool.space).
package esplora

import (
	"context"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/source/restclient"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/hexcodec"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/safe"
	"golang.org/x/sync/singleflight"
)

// Source is an Esplora backed data source.
type Source struct {
	client *restclient.Client

	// txids holds the id list of the last block read; pages of one block share one download.
	txidsGroup singleflight.Group
	txidsMu    sync.Mutex
	txidsHash  string
	txids      []string
}

// New wraps client, whose base URL must point at the API root (for example
// https://blockstream.info/api).
func New(client *restclient.Client) *Source {
	return &Source{client: client}
}

type txStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight uint64 `json:"block_height"`
	BlockHash   string `json:"block_hash"`
}

type txInput struct {
	TxID      string `json:"txid"`
	Vout      uint32 `json:"vout"`
	ScriptSig string `json:"scriptsig"`
	Sequence  uint32 `json:"sequence"`
	Coinbase  bool   `json:"is_coinbase"`
	Prevout   *struct {
		ScriptPubKeyType string `json:"scriptpubkey_type"`
	} `json:"prevout"`
}

type txOutput struct {
	ScriptPubKey     string `json:"scriptpubkey"`
	ScriptPubKeyType string `json:"scriptpubkey_type"`
	Value            int64  `json:"value"`
}

type tx struct {
	TxID     string     `json:"txid"`
	LockTime uint32     `json:"locktime"`
	Vin      []txInput  `json:"vin"`
	Vout     []txOutput `json:"vout"`
	Status   txStatus   `json:"status"`
}

// RawTransaction returns the transaction with its raw hex and containing block.
func (s *Source) RawTransaction(ctx context.Context, txid string) (model.RawTransaction, error) {
	var res tx
	if err := s.client.GetJSON(ctx, "raw_transaction", "/tx/"+txid, nil, &res); err != nil {
		return model.RawTransaction{}, fmt.Errorf("get transaction %s: %w", txid, err)
	}
	rawHex, err := s.client.GetText(ctx, "raw_transaction_hex", "/tx/"+txid+"/hex")
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("get transaction %s hex: %w", txid, err)
	}

	out, err := convertTx(res)
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("transaction %s: %w", txid, err)
	}
	out.Hex = rawHex
	return out, nil
}

func convertTx(res tx) (model.RawTransaction, error) {
	inputs := make([]model.TransactionInput, 0, len(res.Vin))
	for i, in := range res.Vin {
		var prev chainhash.Hash
		if !in.Coinbase {
			h, err := chainhash.NewHashFromStr(in.TxID)
			if err != nil {
				return model.RawTransaction{}, fmt.Errorf("input %d prev txid: %w", i, err)
			}
			prev = *h
		}
		script, err := hexcodec.Decode(in.ScriptSig)
		if err != nil {
			return model.RawTransaction{}, fmt.Errorf("input %d scriptsig: %w", i, err)
		}
		scriptType := ""
		if in.Prevout != nil {
			scriptType = in.Prevout.ScriptPubKeyType
		}
		inputs = append(inputs, model.TransactionInput{
			PrevTxID:   prev,
			PrevIndex:  in.Vout,
			ScriptSig:  script,
			Sequence:   in.Sequence,
			ScriptType: scriptType,
		})
	}

	outputs := make([]model.TransactionOutput, 0, len(res.Vout))
	for i, o := range res.Vout {
		script, err := hexcodec.Decode(o.ScriptPubKey)
		if err != nil {
			return model.RawTransaction{}, fmt.Errorf("output %d script: %w", i, err)
		}
		value, err := safe.Uint64(o.Value)
		if err != nil {
			return model.RawTransaction{}, fmt.Errorf("output %d value: %w", i, err)
		}
		outputs = append(outputs, model.TransactionOutput{
			Value:      value,
			PkScript:   script,
			ScriptType: o.ScriptPubKeyType,
		})
	}

	out := model.RawTransaction{
		TxID:     res.TxID,
		Inputs:   inputs,
		Outputs:  outputs,
		LockTime: res.LockTime,
	}
	if res.Status.Confirmed {
		out.BlockHash = res.Status.BlockHash
		out.BlockHeight = res.Status.BlockHeight
	}
	return out, nil
}

// BlockTxIDs returns a window of the block's ids. Esplora serves the whole list in one call,
// so the list is downloaded once per block and every window is cut from it. Total is always
// the full count.
func (s *Source) BlockTxIDs(ctx context.Context, blockHash string, offset, limit int) (model.TxIDPage, error) {
	ids, err := s.blockTxIDList(ctx, blockHash)
	if err != nil {
		return model.TxIDPage{}, err
	}

	page := model.TxIDPage{Total: len(ids)}
	if offset < 0 || offset >= len(ids) {
		return page, nil
	}
	end := len(ids)
	if limit > 0 {
		end = min(offset+limit, len(ids))
	}
	// Capped so callers appending to a page never write into the shared list.
	page.TxIDs = ids[offset:end:end]
	return page, nil
}

func (s *Source) blockTxIDList(ctx context.Context, blockHash string) ([]string, error) {
	s.txidsMu.Lock()
	if s.txidsHash == blockHash {
		ids := s.txids
		s.txidsMu.Unlock()
		return ids, nil
	}
	s.txidsMu.Unlock()

	v, err, _ := s.txidsGroup.Do(blockHash, func() (any, error) {
		var ids []string
		if err := s.client.GetJSON(ctx, "block_txids", "/block/"+blockHash+"/txids", nil, &ids); err != nil {
			return nil, fmt.Errorf("get block %s txids: %w", blockHash, err)
		}
		s.txidsMu.Lock()
		s.txidsHash, s.txids = blockHash, ids
		s.txidsMu.Unlock()
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil //nolint:forcetypeassert // The group only stores []string.
}

// BlockHeader returns the raw header hex.
func (s *Source) BlockHeader(ctx context.Context, blockHash string) (string, error) {
	raw, err := s.client.GetText(ctx, "block_header", "/block/"+blockHash+"/header")
	if err != nil {
		return "", fmt.Errorf("get block %s header: %w", blockHash, err)
	}
	return raw, nil
}

// Package blockcypher reads transactions and paged block id lists from the BlockCypher API.
package blockcypher

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/source/restclient"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/hexcodec"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/safe"
)

// MaxPageSize is the largest txid window BlockCypher serves per request.
const MaxPageSize = 500

// Source is a BlockCypher backed data source.
type Source struct {
	client *restclient.Client
}

// New wraps client, whose base URL must include the chain path (for example
// https://api.blockcypher.com/v1/btc/main).
func New(client *restclient.Client) *Source {
	return &Source{client: client}
}

type txInput struct {
	PrevHash    string `json:"prev_hash"`
	OutputIndex int64  `json:"output_index"`
	Script      string `json:"script"`
	Sequence    uint32 `json:"sequence"`
	ScriptType  string `json:"script_type"`
}

type txOutput struct {
	Value      int64  `json:"value"`
	Script     string `json:"script"`
	ScriptType string `json:"script_type"`
}

type tx struct {
	Hash        string     `json:"hash"`
	Hex         string     `json:"hex"`
	BlockHash   string     `json:"block_hash"`
	BlockHeight int64      `json:"block_height"`
	LockTime    uint32     `json:"lock_time"`
	Inputs      []txInput  `json:"inputs"`
	Outputs     []txOutput `json:"outputs"`
}

type block struct {
	Hash       string    `json:"hash"`
	Height     uint64    `json:"height"`
	Version    int32     `json:"ver"`
	PrevBlock  string    `json:"prev_block"`
	MerkleRoot string    `json:"mrkl_root"`
	Time       time.Time `json:"time"`
	Bits       uint32    `json:"bits"`
	Nonce      uint32    `json:"nonce"`
	TxCount    int       `json:"n_tx"`
	TxIDs      []string  `json:"txids"`
}

// RawTransaction returns the transaction with its raw hex and containing block.
func (s *Source) RawTransaction(ctx context.Context, txid string) (model.RawTransaction, error) {
	var res tx
	query := map[string]string{"includeHex": "true"}
	if err := s.client.GetJSON(ctx, "raw_transaction", "/txs/"+txid, query, &res); err != nil {
		return model.RawTransaction{}, fmt.Errorf("get transaction %s: %w", txid, err)
	}

	out, err := convertTx(res)
	if err != nil {
		return model.RawTransaction{}, fmt.Errorf("transaction %s: %w", txid, err)
	}
	return out, nil
}

func convertTx(res tx) (model.RawTransaction, error) {
	inputs := make([]model.TransactionInput, 0, len(res.Inputs))
	for i, in := range res.Inputs {
		var prev chainhash.Hash
		if in.PrevHash != "" {
			h, err := chainhash.NewHashFromStr(in.PrevHash)
			if err != nil {
				return model.RawTransaction{}, fmt.Errorf("input %d prev hash: %w", i, err)
			}
			prev = *h
		}
		script, err := hexcodec.Decode(in.Script)
		if err != nil {
			return model.RawTransaction{}, fmt.Errorf("input %d script: %w", i, err)
		}
		// coinbase inputs report -1, which is the all-ones index on the wire
		index := uint32(0xffffffff)
		if in.OutputIndex >= 0 {
			if index, err = safe.Uint32(in.OutputIndex); err != nil {
				return model.RawTransaction{}, fmt.Errorf("input %d output index: %w", i, err)
			}
		}
		inputs = append(inputs, model.TransactionInput{
			PrevTxID:   prev,
			PrevIndex:  index,
			ScriptSig:  script,
			Sequence:   in.Sequence,
			ScriptType: in.ScriptType,
		})
	}

	outputs := make([]model.TransactionOutput, 0, len(res.Outputs))
	for i, o := range res.Outputs {
		script, err := hexcodec.Decode(o.Script)
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
			ScriptType: o.ScriptType,
		})
	}

	out := model.RawTransaction{
		TxID:     res.Hash,
		Hex:      res.Hex,
		Inputs:   inputs,
		Outputs:  outputs,
		LockTime: res.LockTime,
	}
	// unconfirmed transactions carry block_height -1 and no block_hash
	if res.BlockHash != "" && res.BlockHeight >= 0 {
		out.BlockHash = res.BlockHash
		out.BlockHeight = uint64(res.BlockHeight)
	}
	return out, nil
}

// BlockTxIDs returns up to limit ids starting at offset, with the block's declared count.
func (s *Source) BlockTxIDs(ctx context.Context, blockHash string, offset, limit int) (model.TxIDPage, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	res, err := s.block(ctx, "block_txids", blockHash, offset, limit)
	if err != nil {
		return model.TxIDPage{}, err
	}
	return model.TxIDPage{TxIDs: res.TxIDs, Total: res.TxCount}, nil
}

// BlockHeader rebuilds the raw header from the block's fields; BlockCypher serves no raw
// header. The rebuilt header must hash to blockHash.
func (s *Source) BlockHeader(ctx context.Context, blockHash string) (string, error) {
	res, err := s.block(ctx, "block_header", blockHash, 0, 1)
	if err != nil {
		return "", err
	}

	prev, err := chainhash.NewHashFromStr(res.PrevBlock)
	if err != nil {
		return "", fmt.Errorf("block %s prev_block: %w", blockHash, err)
	}
	root, err := chainhash.NewHashFromStr(res.MerkleRoot)
	if err != nil {
		return "", fmt.Errorf("block %s mrkl_root: %w", blockHash, err)
	}

	wh := wire.NewBlockHeader(res.Version, prev, root, res.Bits, res.Nonce)
	wh.Timestamp = res.Time
	if got := wh.BlockHash().String(); got != blockHash {
		return "", fmt.Errorf("block %s: rebuilt header hashes to %s", blockHash, got)
	}

	var buf bytes.Buffer
	if err := wh.Serialize(&buf); err != nil {
		return "", fmt.Errorf("serialize block %s header: %w", blockHash, err)
	}
	return hexcodec.Encode(buf.Bytes()), nil
}

func (s *Source) block(ctx context.Context, operation, blockHash string, offset, limit int) (block, error) {
	var res block
	query := map[string]string{
		"txstart": strconv.Itoa(offset),
		"limit":   strconv.Itoa(limit),
	}
	if err := s.client.GetJSON(ctx, operation, "/blocks/"+blockHash, query, &res); err != nil {
		return block{}, fmt.Errorf("get block %s at txstart %d: %w", blockHash, offset, err)
	}
	return res, nil
}

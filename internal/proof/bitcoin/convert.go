// Package bitcoin reads proof inputs from a bitcoind node and converts between addresses and
// output scripts.
package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/hexcodec"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/safe"
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// BuildTransactionFromVerbose maps a verbose getrawtransaction result into a model.RawTransaction.
// The block height is not part of the result and is filled by the caller.
func BuildTransactionFromVerbose(src btcjson.TxRawResult) (model.RawTransaction, error) {
	inputs := make([]model.TransactionInput, 0, len(src.Vin))
	for i, in := range src.Vin {
		input := model.TransactionInput{
			PrevIndex: in.Vout,
			Sequence:  in.Sequence,
		}
		if in.IsCoinBase() {
			script, err := hexcodec.Decode(in.Coinbase)
			if err != nil {
				return model.RawTransaction{}, fmt.Errorf("input %d coinbase: %w", i, err)
			}
			input.ScriptSig = script
			input.PrevIndex = wire.MaxPrevOutIndex
			input.ScriptType = "coinbase"
		} else {
			prev, err := chainhash.NewHashFromStr(in.Txid)
			if err != nil {
				return model.RawTransaction{}, fmt.Errorf("input %d prev txid: %w", i, err)
			}
			input.PrevTxID = *prev
			if in.ScriptSig != nil {
				script, err := hexcodec.Decode(in.ScriptSig.Hex)
				if err != nil {
					return model.RawTransaction{}, fmt.Errorf("input %d scriptsig: %w", i, err)
				}
				input.ScriptSig = script
			}
		}
		inputs = append(inputs, input)
	}

	outputs := make([]model.TransactionOutput, 0, len(src.Vout))
	for i, out := range src.Vout {
		value, err := BtcToSatoshis(out.Value)
		if err != nil {
			return model.RawTransaction{}, fmt.Errorf("output %d value: %w", i, err)
		}
		script, err := hexcodec.Decode(out.ScriptPubKey.Hex)
		if err != nil {
			return model.RawTransaction{}, fmt.Errorf("output %d script: %w", i, err)
		}
		outputs = append(outputs, model.TransactionOutput{
			Value:      value,
			PkScript:   script,
			ScriptType: out.ScriptPubKey.Type,
		})
	}

	return model.RawTransaction{
		TxID:      src.Txid,
		Hex:       src.Hex,
		Inputs:    inputs,
		Outputs:   outputs,
		LockTime:  src.LockTime,
		BlockHash: src.BlockHash,
	}, nil
}

// Package canonical renders Bitcoin transactions in the non-witness byte layout that on-chain
// verifiers hash, and decomposes them into fixed-width parts.
package canonical

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/hexcodec"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/safe"
)

// ErrEncodingMismatch is returned when a raw transaction cannot be reproduced from its parts.
var ErrEncodingMismatch = errors.New("canonical encoding mismatch")

const (
	segwitMarker = 0x00
	segwitFlag   = 0x01
)

// DetectVersionWidth reports whether the raw serialization carries the segwit marker and flag
// right after the 4-byte version. A zero input count never appears in a valid transaction, so
// 0x00 at offset 4 followed by 0x01 can only be the marker.
func DetectVersionWidth(raw []byte) model.VersionWidth {
	if len(raw) > 5 && raw[4] == segwitMarker && raw[5] == segwitFlag {
		return model.ExtendedVersionWidth
	}
	return model.StandardVersionWidth
}

// Decode parses a raw transaction hex (witness or legacy serialization) into its canonical parts.
func Decode(rawHex string) (model.TransactionParts, error) {
	raw, err := hexcodec.Decode(rawHex)
	if err != nil {
		return model.TransactionParts{}, fmt.Errorf("%w: %v", ErrEncodingMismatch, err)
	}

	var msg wire.MsgTx
	reader := bytes.NewReader(raw)
	if err := msg.Deserialize(reader); err != nil {
		return model.TransactionParts{}, fmt.Errorf("%w: deserialize: %v", ErrEncodingMismatch, err)
	}
	if reader.Len() != 0 {
		return model.TransactionParts{}, fmt.Errorf("%w: %d trailing bytes", ErrEncodingMismatch, reader.Len())
	}

	parts, err := FromWire(&msg)
	if err != nil {
		return model.TransactionParts{}, err
	}
	parts.VersionWidth = DetectVersionWidth(raw)

	var stripped bytes.Buffer
	if err := msg.SerializeNoWitness(&stripped); err != nil {
		return model.TransactionParts{}, fmt.Errorf("serialize without witness: %w", err)
	}

	encoded := Encode(parts)
	if !bytes.Equal(encoded, stripped.Bytes()) {
		return model.TransactionParts{}, fmt.Errorf("%w: re-encoded parts differ from stripped serialization", ErrEncodingMismatch)
	}
	if parts.VersionWidth == model.StandardVersionWidth && !bytes.Equal(encoded, raw) {
		return model.TransactionParts{}, fmt.Errorf("%w: re-encoded parts differ from raw bytes", ErrEncodingMismatch)
	}
	return parts, nil
}

// FromWire builds parts from a decoded wire transaction. The version width is left standard.
func FromWire(msg *wire.MsgTx) (model.TransactionParts, error) {
	inputs := make([]model.TransactionInput, 0, len(msg.TxIn))
	for _, in := range msg.TxIn {
		inputs = append(inputs, model.TransactionInput{
			PrevTxID:  in.PreviousOutPoint.Hash,
			PrevIndex: in.PreviousOutPoint.Index,
			ScriptSig: in.SignatureScript,
			Sequence:  in.Sequence,
		})
	}

	outputs := make([]model.TransactionOutput, 0, len(msg.TxOut))
	for i, out := range msg.TxOut {
		value, err := safe.Uint64(out.Value)
		if err != nil {
			return model.TransactionParts{}, fmt.Errorf("%w: output %d value: %v", ErrEncodingMismatch, i, err)
		}
		outputs = append(outputs, model.TransactionOutput{
			Value:      value,
			PkScript:   out.PkScript,
			ScriptType: txscript.GetScriptClass(out.PkScript).String(),
		})
	}

	return model.TransactionParts{
		Version:      uint32(msg.Version), //nolint:gosec // Signed on the wire; the bit pattern is kept.
		VersionWidth: model.StandardVersionWidth,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     msg.LockTime,
	}, nil
}

// Encode serializes parts in the non-witness layout. The version is always written as 4 bytes.
func Encode(parts model.TransactionParts) []byte {
	var buf bytes.Buffer

	version := hexcodec.Uint32LE(parts.Version)
	buf.Write(version[:])

	writeVarInt(&buf, uint64(len(parts.Inputs)))
	for _, in := range parts.Inputs {
		buf.Write(in.PrevTxID[:])
		index := hexcodec.Uint32LE(in.PrevIndex)
		buf.Write(index[:])
		writeVarInt(&buf, uint64(len(in.ScriptSig)))
		buf.Write(in.ScriptSig)
		sequence := hexcodec.Uint32LE(in.Sequence)
		buf.Write(sequence[:])
	}

	writeVarInt(&buf, uint64(len(parts.Outputs)))
	for _, out := range parts.Outputs {
		value := hexcodec.Uint64LE(out.Value)
		buf.Write(value[:])
		writeVarInt(&buf, uint64(len(out.PkScript)))
		buf.Write(out.PkScript)
	}

	lockTime := hexcodec.Uint32LE(parts.LockTime)
	buf.Write(lockTime[:])
	return buf.Bytes()
}

// EncodeHex is Encode rendered as lowercase hex.
func EncodeHex(parts model.TransactionParts) string {
	return hexcodec.Encode(Encode(parts))
}

// TxID returns the double-SHA-256 of canonical bytes in internal byte order. Its String method
// yields the familiar display-order id.
func TxID(canonical []byte) chainhash.Hash {
	return chainhash.DoubleHashH(canonical)
}

func writeVarInt(buf *bytes.Buffer, n uint64) {
	// bytes.Buffer writes never fail.
	_ = wire.WriteVarInt(buf, 0, n)
}

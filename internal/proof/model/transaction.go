package model

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// RawTransaction is a transaction as reported by a Bitcoin data source.
type RawTransaction struct {
	// TxID is the display-order (byte-reversed) transaction id.
	TxID        string
	Hex         string
	Inputs      []TransactionInput
	Outputs     []TransactionOutput
	LockTime    uint32
	BlockHash   string
	BlockHeight uint64
}

// Confirmed reports whether the source knows the containing block.
func (t RawTransaction) Confirmed() bool {
	return t.BlockHash != ""
}

// TransactionInput references a previous output.
type TransactionInput struct {
	// PrevTxID is kept in internal byte order, exactly as serialized on the wire.
	PrevTxID   chainhash.Hash
	PrevIndex  uint32
	ScriptSig  []byte
	Sequence   uint32
	ScriptType string
}

// TransactionOutput is a value locked by a script.
type TransactionOutput struct {
	Value      uint64
	PkScript   []byte
	ScriptType string
}

// VersionWidth tags how many bytes the raw feed spends before the input count.
type VersionWidth int

const (
	// StandardVersionWidth is a plain 4-byte version.
	StandardVersionWidth VersionWidth = iota
	// ExtendedVersionWidth is a 4-byte version followed by the segwit marker and flag bytes.
	ExtendedVersionWidth
)

// RawBytes returns the width of the version area in the raw serialization.
func (w VersionWidth) RawBytes() int {
	if w == ExtendedVersionWidth {
		return 6
	}
	return 4
}

func (w VersionWidth) String() string {
	if w == ExtendedVersionWidth {
		return "extended"
	}
	return "standard"
}

// TransactionParts is the structured non-witness decomposition of a transaction.
// Re-encoding it must reproduce the canonical bytes exactly.
type TransactionParts struct {
	Version      uint32
	VersionWidth VersionWidth
	Inputs       []TransactionInput
	Outputs      []TransactionOutput
	LockTime     uint32
}

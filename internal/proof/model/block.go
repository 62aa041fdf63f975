package model

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// HeaderSize is the serialized size of a Bitcoin block header.
const HeaderSize = 80

// BlockSummary lists the transactions of a block in on-chain order.
type BlockSummary struct {
	Hash    string
	Height  uint64
	TxIDs   []string
	TxCount int
}

// TxIDPage is one page of a block's transaction ids together with the declared total.
type TxIDPage struct {
	TxIDs []string
	Total int
}

// BlockHeader is an 80-byte header split into its six wire fields.
type BlockHeader struct {
	Raw        [HeaderSize]byte
	Version    [4]byte
	Parent     [32]byte
	MerkleRoot [32]byte
	Timestamp  [4]byte
	Bits       [4]byte
	Nonce      [4]byte
}

// Bytes concatenates the six fields in wire order.
func (h BlockHeader) Bytes() []byte {
	out := make([]byte, 0, HeaderSize)
	out = append(out, h.Version[:]...)
	out = append(out, h.Parent[:]...)
	out = append(out, h.MerkleRoot[:]...)
	out = append(out, h.Timestamp[:]...)
	out = append(out, h.Bits[:]...)
	out = append(out, h.Nonce[:]...)
	return out
}

// MerkleAuditPath proves one leaf against a Merkle root. Sibling sides are derived from the
// parity of the running index, so they are not stored.
type MerkleAuditPath struct {
	TxIndex uint32
	// Hashes are sibling nodes from the leaf level upwards, in internal byte order.
	Hashes    []chainhash.Hash
	TreeDepth uint32
}

package model

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// VerificationPacket is everything an on-chain verifier needs to check a transaction's
// inclusion in a Bitcoin block.
type VerificationPacket struct {
	// TxID is the double-SHA-256 of Transaction in internal byte order.
	TxID                 chainhash.Hash
	Transaction          []byte
	Parts                TransactionParts
	Proof                MerkleAuditPath
	Header               BlockHeader
	BlockHash            string
	BlockHeight          uint64
	SecondChainHeight    uint64
	SecondChainBlockHash string
}

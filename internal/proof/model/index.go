package model

// BlockTransaction is one row of the block tx-id index: a transaction id at its position in a
// block, with the block's declared transaction count.
type BlockTransaction struct {
	Network     Network
	BlockHash   string
	BlockHeight uint64
	TxIndex     uint32
	TxID        string
	TxCount     uint32
}

package model

// SecondChainBlock is a block of the chain that anchors to Bitcoin, with the Bitcoin (burn)
// block it was mined against.
type SecondChainBlock struct {
	Height          uint64
	Hash            string
	BurnBlockHeight uint64
	BurnBlockHash   string
	Canonical       bool
}

// SecondChainPage is one page of the second chain's block listing, newest first.
type SecondChainPage struct {
	Offset  int
	Limit   int
	Total   int
	Results []SecondChainBlock
}

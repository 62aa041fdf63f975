package clickhouse

import (
	"strings"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
)

func (s *RepositorySuite) TestBlockTxIDs() {
	hash := strings.Repeat("a", 64)
	ids := []string{strings.Repeat("1", 64), strings.Repeat("2", 64), strings.Repeat("3", 64), strings.Repeat("4", 64), strings.Repeat("5", 64)}

	s.metrics.EXPECT().Observe("insert_block_transactions", model.Mainnet, gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("block_txids", model.Mainnet, gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("block_txids", model.Mainnet, gomock.Not(gomock.Nil()), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertBlockTransactions(s.testCtx, blockRows(model.Mainnet, hash, 100, ids...)))
	s.Require().NoError(s.repo.InsertBlockTransactions(s.testCtx, blockRows(model.Mainnet, strings.Repeat("b", 64), 101, strings.Repeat("9", 64))))

	first, err := s.repo.BlockTxIDs(s.testCtx, hash, 0, 3)
	s.Require().NoError(err)
	s.Equal(model.TxIDPage{TxIDs: ids[:3], Total: len(ids)}, first)

	rest, err := s.repo.BlockTxIDs(s.testCtx, hash, 3, 3)
	s.Require().NoError(err)
	s.Equal(model.TxIDPage{TxIDs: ids[3:], Total: len(ids)}, rest)

	_, err = s.repo.BlockTxIDs(s.testCtx, strings.Repeat("c", 64), 0, 3)
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *RepositorySuite) TestInsertBlockTransactionsReplacesBlock() {
	hash := strings.Repeat("d", 64)
	ids := []string{strings.Repeat("6", 64), strings.Repeat("7", 64)}

	s.metrics.EXPECT().Observe("insert_block_transactions", model.Mainnet, gomock.Nil(), gomock.Any()).Times(2)

	s.Require().NoError(s.repo.InsertBlockTransactions(s.testCtx, blockRows(model.Mainnet, hash, 200, ids...)))
	s.Require().NoError(s.repo.InsertBlockTransactions(s.testCtx, blockRows(model.Mainnet, hash, 200, ids...)))
	s.Equal(uint64(len(ids)), s.countRows("utxo_block_transactions"))
}

func (s *RepositorySuite) TestContiguousIndexedBlocks() {
	s.metrics.EXPECT().Observe("contiguous_indexed_blocks", model.Mainnet, gomock.Nil(), gomock.Any()).Times(5)
	s.metrics.EXPECT().Observe("insert_block_transactions", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	empty, err := s.repo.ContiguousIndexedBlocks(s.testCtx, 700)
	s.Require().NoError(err)
	s.Equal(uint64(0), empty)

	var rows []model.BlockTransaction
	rows = append(rows, blockRows(model.Mainnet, strings.Repeat("e", 64), 700, strings.Repeat("6", 64), strings.Repeat("7", 64))...)
	rows = append(rows, blockRows(model.Mainnet, strings.Repeat("f", 64), 701, strings.Repeat("8", 64))...)
	// 702 missing
	rows = append(rows, blockRows(model.Mainnet, strings.Repeat("0", 64), 703, strings.Repeat("9", 64))...)
	s.Require().NoError(s.repo.InsertBlockTransactions(s.testCtx, rows))

	for from, want := range map[uint64]uint64{700: 2, 701: 1, 702: 0, 703: 1} {
		got, err := s.repo.ContiguousIndexedBlocks(s.testCtx, from)
		s.Require().NoError(err)
		s.Equal(want, got, "from %d", from)
	}
}

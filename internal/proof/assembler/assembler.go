// Package assembler builds verification packets proving a Bitcoin transaction's inclusion in
// its block, in the byte layout the second chain's verifier expects.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/canonical"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/header"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/locator"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/merkle"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/source/restclient"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/hexcodec"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	// DefaultTxIDPageSize is the number of tx ids requested per page.
	DefaultTxIDPageSize = 500
	// DefaultPageWorkers bounds concurrent tx id page fetches.
	DefaultPageWorkers = 4
	// DefaultFetchTimeout bounds every single remote read.
	DefaultFetchTimeout = 30 * time.Second
)

// Sources are the collaborators an Assembler reads from.
type Sources struct {
	Transactions TransactionSource
	TxIDs        TxIDSource
	Headers      HeaderSource
	SecondChain  SecondChainSource
	// Locator is optional; by default the second chain listing is searched page by page.
	Locator Locator
}

// Config tunes one Assembler.
type Config struct {
	Network         model.Network
	TxIDPageSize    int
	PageWorkers     int
	FetchTimeout    time.Duration
	LocatorPageSize int
	LocatorMaxPages int
}

// Request asks for the inclusion proof of one transaction.
type Request struct {
	// TxID is the display-order transaction id.
	TxID string
	// SecondChainHeight pins the second chain block; zero means locate it.
	SecondChainHeight uint64
}

// Assembler turns a transaction id into a verification packet.
type Assembler struct {
	sources Sources
	locator Locator
	cfg     Config
	metrics Metrics
	logger  *zap.Logger
}

// New validates sources and fills config defaults.
func New(sources Sources, cfg Config, metrics Metrics, logger *zap.Logger) (*Assembler, error) {
	if sources.Transactions == nil || sources.TxIDs == nil || sources.Headers == nil || sources.SecondChain == nil {
		return nil, errors.New("assembler: transaction, txid, header and second chain sources are required")
	}
	if metrics == nil {
		return nil, errors.New("assembler: metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TxIDPageSize <= 0 {
		cfg.TxIDPageSize = DefaultTxIDPageSize
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = DefaultPageWorkers
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}

	a := &Assembler{
		sources: sources,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger.Named("assembler"),
	}
	a.locator = sources.Locator
	if a.locator == nil {
		a.locator = locator.New(
			timedLister{source: sources.SecondChain, timeout: cfg.FetchTimeout},
			locator.WithPageSize(cfg.LocatorPageSize),
			locator.WithMaxPages(cfg.LocatorMaxPages),
			locator.WithLogger(a.logger),
		)
	}
	return a, nil
}

// Assemble fetches everything needed to prove req.TxID and returns the packet. Failures are
// *Error values; KindOf classifies them. Nothing is retried.
func (a *Assembler) Assemble(ctx context.Context, req Request) (packet *model.VerificationPacket, err error) {
	started := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = string(KindOf(err))
		}
		a.metrics.ObserveAssemble(outcome, started)
	}()

	if _, err := hexcodec.DecodeFixed(req.TxID, chainhash.HashSize); err != nil || len(req.TxID) != chainhash.MaxHashStringSize {
		return nil, fail(KindInvalidRequest, "txid %q must be %d hex chars", req.TxID, chainhash.MaxHashStringSize)
	}
	txid, err := chainhash.NewHashFromStr(req.TxID)
	if err != nil {
		return nil, fail(KindInvalidRequest, "txid %q: %w", req.TxID, err)
	}
	logger := a.logger.With(zap.String("txid", req.TxID))

	tx, err := a.transaction(ctx, req.TxID)
	if err != nil {
		return nil, err
	}

	parts, err := canonical.Decode(tx.Hex)
	if err != nil {
		return nil, &Error{Kind: KindEncodingMismatch, Err: fmt.Errorf("decode transaction %s: %w", req.TxID, err)}
	}
	canonicalTx := canonical.Encode(parts)
	if got := canonical.TxID(canonicalTx); got != *txid {
		return nil, fail(KindEncodingMismatch, "canonical bytes hash to %s, want %s", got, req.TxID)
	}
	if parts.VersionWidth == model.ExtendedVersionWidth {
		logger.Debug("stripped witness data", zap.Stringer("version_width", parts.VersionWidth))
	}

	secondChain, err := a.secondChainBlock(ctx, tx.BlockHeight, req.SecondChainHeight)
	if err != nil {
		return nil, err
	}

	ids, err := a.blockTxIDs(ctx, tx.BlockHash)
	if err != nil {
		return nil, err
	}

	hdr, err := a.header(ctx, tx.BlockHash)
	if err != nil {
		return nil, err
	}

	tree, err := merkle.BuildTree(ids)
	if err != nil {
		return nil, fail(KindSourceUnavailable, "block %s transaction ids: %w", tx.BlockHash, err)
	}
	path, err := tree.ProofFor(req.TxID, -1)
	if errors.Is(err, merkle.ErrTargetNotFound) {
		return nil, fail(KindTargetNotInBlock, "block %s: %w", tx.BlockHash, err)
	}
	if err != nil {
		return nil, fail(KindSourceUnavailable, "merkle proof: %w", err)
	}

	// The id list and the header come from separate reads and may disagree.
	if root := merkle.RootFromPath(*txid, path); root != chainhash.Hash(hdr.MerkleRoot) {
		return nil, fail(KindTargetNotInBlock, "block %s: merkle root from path %s differs from header root %s",
			tx.BlockHash, root, chainhash.Hash(hdr.MerkleRoot))
	}

	logger.Info("assembled verification packet",
		zap.String("block_hash", tx.BlockHash),
		zap.Uint64("block_height", tx.BlockHeight),
		zap.Uint64("second_chain_height", secondChain.Height),
		zap.Uint32("tx_index", path.TxIndex),
		zap.Uint32("tree_depth", path.TreeDepth),
	)

	return &model.VerificationPacket{
		TxID:                 *txid,
		Transaction:          canonicalTx,
		Parts:                parts,
		Proof:                path,
		Header:               hdr,
		BlockHash:            tx.BlockHash,
		BlockHeight:          tx.BlockHeight,
		SecondChainHeight:    secondChain.Height,
		SecondChainBlockHash: secondChain.Hash,
	}, nil
}

func (a *Assembler) transaction(ctx context.Context, txid string) (model.RawTransaction, error) {
	fetchCtx, cancel := clock.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	tx, err := a.sources.Transactions.RawTransaction(fetchCtx, txid)
	if err != nil {
		return model.RawTransaction{}, fail(KindSourceUnavailable, "fetch transaction %s: %w", txid, err)
	}
	if tx.Hex == "" {
		return model.RawTransaction{}, fail(KindSourceUnavailable, "transaction %s has no raw hex", txid)
	}
	if !tx.Confirmed() {
		return model.RawTransaction{}, fail(KindSourceUnavailable, "transaction %s is not confirmed", txid)
	}
	return tx, nil
}

func (a *Assembler) secondChainBlock(ctx context.Context, burnHeight, hint uint64) (block model.SecondChainBlock, err error) {
	started := time.Now()
	defer func() { a.metrics.ObserveLocate(err, started) }()

	if hint != 0 {
		fetchCtx, cancel := clock.WithTimeout(ctx, a.cfg.FetchTimeout)
		defer cancel()

		block, err = a.sources.SecondChain.BlockByHeight(fetchCtx, hint)
		if errors.Is(err, restclient.ErrNotFound) {
			return model.SecondChainBlock{}, fail(KindBlockNotIndexed, "second chain block %d: %w", hint, err)
		}
		if err != nil {
			return model.SecondChainBlock{}, fail(KindSourceUnavailable, "second chain block %d: %w", hint, err)
		}
		if block.BurnBlockHeight != burnHeight {
			a.logger.Warn("second chain height hint anchors to another bitcoin block",
				zap.Uint64("second_chain_height", hint),
				zap.Uint64("hint_burn_height", block.BurnBlockHeight),
				zap.Uint64("burn_height", burnHeight),
			)
		}
		return block, nil
	}

	block, err = a.locator.Locate(ctx, burnHeight)
	if errors.Is(err, locator.ErrNotFound) {
		return model.SecondChainBlock{}, fail(KindBlockNotIndexed, "burn height %d: %w", burnHeight, err)
	}
	if err != nil {
		return model.SecondChainBlock{}, fail(KindSourceUnavailable, "locate burn height %d: %w", burnHeight, err)
	}
	return block, nil
}

// blockTxIDs reads the first page for the declared total, fans out over the remaining pages
// and then tops up any short page until every page holds its share of the total.
func (a *Assembler) blockTxIDs(ctx context.Context, blockHash string) ([]string, error) {
	pageSize := a.cfg.TxIDPageSize
	first, err := a.txIDPage(ctx, blockHash, 0, pageSize)
	if err != nil {
		return nil, err
	}
	total := first.Total
	if total <= 0 || len(first.TxIDs) == 0 {
		return nil, fail(KindSourceUnavailable, "block %s lists no transactions", blockHash)
	}

	var offsets []int
	for offset := pageSize; offset < total; offset += pageSize {
		offsets = append(offsets, offset)
	}
	rest, err := workerpool.Map(ctx, a.cfg.PageWorkers, offsets, func(ctx context.Context, offset int) ([]string, error) {
		page, err := a.txIDPage(ctx, blockHash, offset, pageSize)
		if err != nil {
			return nil, err
		}
		return page.TxIDs, nil
	})
	if err != nil {
		return nil, err
	}

	fetched := 1 + len(offsets)
	pages := append([][]string{first.TxIDs}, rest...)
	ids := make([]string, 0, total)
	for i, page := range pages {
		start := i * pageSize
		want := min(pageSize, total-start)
		for len(page) < want {
			more, err := a.txIDPage(ctx, blockHash, start+len(page), want-len(page))
			if err != nil {
				return nil, err
			}
			fetched++
			if len(more.TxIDs) == 0 {
				return nil, fail(KindSourceUnavailable, "block %s: no transaction ids at offset %d of %d", blockHash, start+len(page), total)
			}
			page = append(page, more.TxIDs...)
		}
		ids = append(ids, page[:want]...)
	}

	a.metrics.ObserveBlockTxIDs(fetched, len(ids))
	return ids, nil
}

func (a *Assembler) txIDPage(ctx context.Context, blockHash string, offset, limit int) (model.TxIDPage, error) {
	fetchCtx, cancel := clock.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	page, err := a.sources.TxIDs.BlockTxIDs(fetchCtx, blockHash, offset, limit)
	if err != nil {
		return model.TxIDPage{}, fail(KindSourceUnavailable, "fetch block %s txids at offset %d: %w", blockHash, offset, err)
	}
	return page, nil
}

func (a *Assembler) header(ctx context.Context, blockHash string) (model.BlockHeader, error) {
	fetchCtx, cancel := clock.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	raw, err := a.sources.Headers.BlockHeader(fetchCtx, blockHash)
	if err != nil {
		return model.BlockHeader{}, fail(KindSourceUnavailable, "fetch block header %s: %w", blockHash, err)
	}
	hdr, err := header.Parse(raw)
	if err != nil {
		return model.BlockHeader{}, fail(KindMalformedHeader, "block header %s: %w", blockHash, err)
	}
	return hdr, nil
}

// timedLister bounds every listing call of the locator by the per-fetch timeout.
type timedLister struct {
	source  SecondChainSource
	timeout time.Duration
}

func (l timedLister) ListBlocks(ctx context.Context, offset, limit int) (model.SecondChainPage, error) {
	fetchCtx, cancel := clock.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.source.ListBlocks(fetchCtx, offset, limit)
}

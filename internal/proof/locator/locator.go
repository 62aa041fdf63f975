// Package locator finds the second-chain block anchored to a given Bitcoin (burn) height.
package locator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/safe"
	"go.uber.org/zap"
)

const (
	// DefaultPageSize is the listing page size used when none is configured.
	DefaultPageSize = 30
	// DefaultMaxPages bounds how many pages one search may request.
	DefaultMaxPages = 64
)

// ErrNotFound is returned when the bounded search ends without a matching block.
var ErrNotFound = errors.New("second chain block not found")

type state int

const (
	stateInitial state = iota
	stateEstimated
	stateScanningForward
	stateScanningBackward
	stateExhausted
)

func (s state) String() string {
	switch s {
	case stateInitial:
		return "initial"
	case stateEstimated:
		return "estimated"
	case stateScanningForward:
		return "scanning_forward"
	case stateScanningBackward:
		return "scanning_backward"
	default:
		return "exhausted"
	}
}

// Locator searches the newest-first block listing. The listing is ordered by second-chain height,
// and burn heights drift against it, so the search walks pages instead of indexing directly.
type Locator struct {
	lister   BlockLister
	pageSize int
	maxPages int
	logger   *zap.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithPageSize sets the listing page size.
func WithPageSize(size int) Option {
	return func(l *Locator) {
		if size > 0 {
			l.pageSize = size
		}
	}
}

// WithMaxPages bounds the number of pages one Locate call may request.
func WithMaxPages(pages int) Option {
	return func(l *Locator) {
		if pages > 0 {
			l.maxPages = pages
		}
	}
}

// WithLogger attaches a logger for page-level tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Locator) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New builds a Locator over lister.
func New(lister BlockLister, opts ...Option) *Locator {
	l := &Locator{
		lister:   lister,
		pageSize: DefaultPageSize,
		maxPages: DefaultMaxPages,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns the newest canonical block whose burn height equals burnHeight.
//
// The first page is read at offset 0. If it does not hold the target, the gap between its
// newest burn height and the target estimates a jump, clamped to the last page. From the
// estimated page on, the search moves one page at a time: toward older blocks while the page is
// entirely newer than the target, toward newer blocks while it is entirely older. The search
// ends with ErrNotFound on a direction reversal, an offset outside the listing, an empty page,
// a page that brackets the target without holding it, or when the page budget is spent.
func (l *Locator) Locate(ctx context.Context, burnHeight uint64) (model.SecondChainBlock, error) {
	st := stateInitial
	offset := 0

	for pages := 0; pages < l.maxPages; pages++ {
		page, err := l.lister.ListBlocks(ctx, offset, l.pageSize)
		if err != nil {
			return model.SecondChainBlock{}, fmt.Errorf("list blocks at offset %d: %w", offset, err)
		}
		if len(page.Results) == 0 {
			return model.SecondChainBlock{}, fmt.Errorf("%w: empty page at offset %d", ErrNotFound, offset)
		}
		if block, ok := find(page.Results, burnHeight); ok {
			return block, nil
		}

		newest := page.Results[0].BurnBlockHeight
		oldest := page.Results[len(page.Results)-1].BurnBlockHeight
		l.logger.Debug("page does not hold burn height",
			zap.Uint64("burn_height", burnHeight),
			zap.Int("offset", offset),
			zap.Uint64("newest_burn_height", newest),
			zap.Uint64("oldest_burn_height", oldest),
			zap.Stringer("state", st),
		)

		var next state
		switch {
		case burnHeight < oldest:
			next = stateScanningForward
		case burnHeight > newest && st != stateInitial:
			next = stateScanningBackward
		default:
			// bracketed but absent, or newer than the chain tip
			next = stateExhausted
		}

		switch {
		case st == stateInitial && next == stateScanningForward:
			st = stateEstimated
			offset = l.estimate(newest, burnHeight, page.Total)
		case next == stateExhausted,
			st == stateScanningForward && next == stateScanningBackward,
			st == stateScanningBackward && next == stateScanningForward:
			return model.SecondChainBlock{}, fmt.Errorf("%w: burn height %d (%s at offset %d)", ErrNotFound, burnHeight, st, offset)
		default:
			st = next
			offset = l.step(st, offset)
		}

		if offset < 0 || (page.Total > 0 && offset >= page.Total) {
			return model.SecondChainBlock{}, fmt.Errorf("%w: burn height %d out of listing range", ErrNotFound, burnHeight)
		}
	}

	return model.SecondChainBlock{}, fmt.Errorf("%w: burn height %d not reached within %d pages", ErrNotFound, burnHeight, l.maxPages)
}

func (l *Locator) estimate(newest, target uint64, total int) int {
	offset := l.pageSize
	if gap, err := safe.Int(newest - target); err == nil && gap > l.pageSize {
		offset = gap
	} else if err != nil {
		offset = total
	}
	if total > 0 && offset >= total {
		offset = (total - 1) / l.pageSize * l.pageSize
	}
	return offset
}

// step moves one page in the scan direction. Page 0 is always read first, so a backward step
// that would reach it ends the search.
func (l *Locator) step(st state, offset int) int {
	if st == stateScanningForward {
		return offset + l.pageSize
	}
	if offset-l.pageSize <= 0 {
		return -1
	}
	return offset - l.pageSize
}

func find(blocks []model.SecondChainBlock, burnHeight uint64) (model.SecondChainBlock, bool) {
	for _, b := range blocks {
		if b.Canonical && b.BurnBlockHeight == burnHeight {
			return b, true
		}
	}
	return model.SecondChainBlock{}, false
}

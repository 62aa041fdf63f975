package assembler

import (
	"errors"
	"fmt"
)

// Kind classifies why an assembly failed.
type Kind string

const (
	// KindSourceUnavailable means a remote fetch failed or returned no usable payload.
	KindSourceUnavailable Kind = "source_unavailable"
	// KindEncodingMismatch means the canonical re-encoding did not reproduce the source bytes.
	KindEncodingMismatch Kind = "encoding_mismatch"
	// KindBlockNotIndexed means no second chain block could be resolved for the Bitcoin block.
	KindBlockNotIndexed Kind = "block_not_indexed"
	// KindTargetNotInBlock means the transaction id is absent from its block's id list.
	KindTargetNotInBlock Kind = "target_not_in_block"
	// KindMalformedHeader means the block header is not 80 bytes.
	KindMalformedHeader Kind = "malformed_header"
	// KindInvalidRequest means the request was rejected before any fetch.
	KindInvalidRequest Kind = "invalid_request"
)

// Error is a terminal assembly failure of a specific kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or an empty kind for nil. Errors that did not come
// from Assemble are treated as unavailable sources.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var assembleErr *Error
	if errors.As(err, &assembleErr) {
		return assembleErr.Kind
	}
	return KindSourceUnavailable
}

func fail(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

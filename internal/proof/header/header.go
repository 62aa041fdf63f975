// Package header splits raw Bitcoin block headers into their wire fields.
package header

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/hexcodec"
)

// ErrMalformedHeader is returned for anything that is not exactly 80 bytes of hex.
var ErrMalformedHeader = errors.New("malformed block header")

// HexLength is the length of a hex encoded header.
const HexLength = model.HeaderSize * 2

// Parse slices a 160-character header at fixed offsets.
func Parse(headerHex string) (model.BlockHeader, error) {
	if len(headerHex) != HexLength {
		return model.BlockHeader{}, fmt.Errorf("%w: got %d hex chars, want %d", ErrMalformedHeader, len(headerHex), HexLength)
	}
	raw, err := hexcodec.DecodeFixed(headerHex, model.HeaderSize)
	if err != nil {
		return model.BlockHeader{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	var h model.BlockHeader
	copy(h.Raw[:], raw)
	copy(h.Version[:], raw[0:4])
	copy(h.Parent[:], raw[4:36])
	copy(h.MerkleRoot[:], raw[36:68])
	copy(h.Timestamp[:], raw[68:72])
	copy(h.Bits[:], raw[72:76])
	copy(h.Nonce[:], raw[76:80])
	return h, nil
}

// FromWire renders a decoded node header into the same layout Parse produces.
func FromWire(wh *wire.BlockHeader) (model.BlockHeader, error) {
	var buf bytes.Buffer
	if err := wh.Serialize(&buf); err != nil {
		return model.BlockHeader{}, fmt.Errorf("serialize header: %w", err)
	}
	return Parse(hexcodec.Encode(buf.Bytes()))
}

// Package merkle builds Bitcoin transaction Merkle trees and audit paths.
package merkle

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/goodnatureofminers/blockinsight7000-proof/pkg/safe"
)

var (
	// ErrEmptyTree is returned when a tree is requested over no leaves.
	ErrEmptyTree = errors.New("merkle tree needs at least one leaf")
	// ErrTargetNotFound is returned when the proven id is not a leaf of the tree.
	ErrTargetNotFound = errors.New("target not found in merkle tree")
	// ErrMalformedID is returned for an id that is not exactly 64 hex characters.
	ErrMalformedID = errors.New("malformed transaction id")
)

// Tree keeps every level of a Bitcoin Merkle tree, leaves first, in internal byte order.
type Tree struct {
	levels [][]chainhash.Hash
}

// BuildTree builds a tree over display-order transaction ids kept in block order. A level with
// an odd number of nodes pairs its last node with itself.
func BuildTree(leafIDs []string) (*Tree, error) {
	if len(leafIDs) == 0 {
		return nil, ErrEmptyTree
	}

	leaves := make([]chainhash.Hash, len(leafIDs))
	for i, id := range leafIDs {
		h, err := parseID(id)
		if err != nil {
			return nil, fmt.Errorf("leaf %d: %w", i, err)
		}
		leaves[i] = *h
	}

	levels := [][]chainhash.Hash{leaves}
	for current := leaves; len(current) > 1; {
		next := make([]chainhash.Hash, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			right := current[i]
			if i+1 < len(current) {
				right = current[i+1]
			}
			next = append(next, hashPair(current[i], right))
		}
		levels = append(levels, next)
		current = next
	}
	return &Tree{levels: levels}, nil
}

// Root returns the Merkle root in internal byte order.
func (t *Tree) Root() chainhash.Hash {
	return t.levels[len(t.levels)-1][0]
}

// Depth returns the number of hashing levels above the leaves; a single leaf has depth 0.
func (t *Tree) Depth() int {
	return len(t.levels) - 1
}

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int {
	return len(t.levels[0])
}

// ProofFor returns the audit path of targetID. targetIndex disambiguates duplicate ids; when it
// is out of range or points at a different id the first occurrence is used.
func (t *Tree) ProofFor(targetID string, targetIndex int) (model.MerkleAuditPath, error) {
	target, err := parseID(targetID)
	if err != nil {
		return model.MerkleAuditPath{}, fmt.Errorf("target: %w", err)
	}

	index := t.indexOf(*target, targetIndex)
	if index < 0 {
		return model.MerkleAuditPath{}, fmt.Errorf("%w: %s", ErrTargetNotFound, targetID)
	}

	txIndex, err := safe.Uint32(index)
	if err != nil {
		return model.MerkleAuditPath{}, fmt.Errorf("leaf index: %w", err)
	}
	depth, err := safe.Uint32(t.Depth())
	if err != nil {
		return model.MerkleAuditPath{}, fmt.Errorf("tree depth: %w", err)
	}

	hashes := make([]chainhash.Hash, 0, t.Depth())
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := index ^ 1
		if sibling >= len(level) {
			sibling = index
		}
		hashes = append(hashes, level[sibling])
		index /= 2
	}

	return model.MerkleAuditPath{
		TxIndex:   txIndex,
		Hashes:    hashes,
		TreeDepth: depth,
	}, nil
}

func (t *Tree) indexOf(target chainhash.Hash, hint int) int {
	leaves := t.levels[0]
	if hint >= 0 && hint < len(leaves) && leaves[hint] == target {
		return hint
	}
	for i, leaf := range leaves {
		if leaf == target {
			return i
		}
	}
	return -1
}

// RootFromPath replays an audit path from leaf (internal byte order) and returns the root it
// commits to.
func RootFromPath(leaf chainhash.Hash, path model.MerkleAuditPath) chainhash.Hash {
	node := leaf
	index := path.TxIndex
	for _, sibling := range path.Hashes {
		if index%2 == 1 {
			node = hashPair(sibling, node)
		} else {
			node = hashPair(node, sibling)
		}
		index /= 2
	}
	return node
}

func hashPair(left, right chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:])
}

// parseID decodes a display-order id. chainhash pads short strings with zeros, so the length
// is checked first.
func parseID(id string) (*chainhash.Hash, error) {
	if len(id) != chainhash.MaxHashStringSize {
		return nil, fmt.Errorf("%w: %q has %d chars", ErrMalformedID, id, len(id))
	}
	h, err := chainhash.NewHashFromStr(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformedID, id, err)
	}
	return h, nil
}

package merkle

import (
	"fmt"

	"github.com/alderlab/merkle-go/pkg/hasher"
)

// GenerateProof returns an inclusion proof for the leaf at the given input
// index. The proof carries, per level, every sibling hash in original child
// order plus the proven node's position among them; a single-leaf tree
// yields a proof with no items.
func (t *Tree) GenerateProof(leafIndex int) (*Proof, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: tree", ErrNilArgument)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.nodes == nil {
		return nil, fmt.Errorf("%w: tree has been destroyed", ErrBadArgument)
	}
	if leafIndex < 0 || leafIndex >= t.leafCount {
		return nil, fmt.Errorf("%w: leaf %d of %d", ErrInvalidIndex, leafIndex, t.leafCount)
	}
	return t.proofLocked(leafIndex)
}

// GenerateProofFunc returns an inclusion proof for the first leaf, in input
// order, whose data satisfies match. The predicate sees the tree's internal
// copy of each block and must not retain or modify it.
func (t *Tree) GenerateProofFunc(match func(data []byte) bool) (*Proof, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: tree", ErrNilArgument)
	}
	if match == nil {
		return nil, fmt.Errorf("%w: match predicate", ErrNilArgument)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.nodes == nil {
		return nil, fmt.Errorf("%w: tree has been destroyed", ErrBadArgument)
	}
	for i := 0; i < t.leafCount; i++ {
		if match(t.nodes[i].data) {
			return t.proofLocked(i)
		}
	}
	return nil, fmt.Errorf("%w: predicate matched none of %d leaves", ErrNotFound, t.leafCount)
}

// proofLocked walks parent links from the leaf to the root, collecting each
// level's sibling set. Callers hold the read lock.
func (t *Tree) proofLocked(leafIndex int) (*Proof, error) {
	items := make([]ProofItem, 0, t.height)

	for current := int32(leafIndex); t.nodes[current].parent != -1; {
		parentIdx := t.nodes[current].parent
		parent := t.nodes[parentIdx]

		position := int(current - parent.firstChild)
		if position < 0 || position >= int(parent.childCount) {
			return nil, fmt.Errorf("%w: node %d outside its parent's child window", ErrTreeBuild, current)
		}

		siblings := make([][hasher.Size]byte, 0, parent.childCount-1)
		for c := parent.firstChild; c < parent.firstChild+parent.childCount; c++ {
			if c == current {
				continue
			}
			siblings = append(siblings, t.nodes[c].hash)
		}

		items = append(items, ProofItem{
			SiblingHashes: siblings,
			NodePosition:  position,
		})
		current = parentIdx
	}

	return &Proof{
		Items:           items,
		LeafIndex:       leafIndex,
		BranchingFactor: t.branching,
		Algorithm:       t.h.Name(),
	}, nil
}

package merkle

import (
	"sync"

	"go.uber.org/zap"

	"github.com/alderlab/merkle-go/pkg/hasher"
)

// node is one arena entry. Level-order construction appends every
// generation after the previous one, so a parent's children always occupy
// consecutive arena slots and a (firstChild, childCount) window replaces
// per-node child slices.
type node struct {
	hash [hasher.Size]byte

	// data is the tree's private copy of the caller's block.
	// Only leaf nodes carry data.
	data []byte

	parent     int32 // arena index of the parent; -1 for the root
	firstChild int32 // arena index of the leftmost child; -1 for leaves
	childCount int32
}

// Tree is an immutable n-ary merkle tree over a set of data blocks.
// A built tree is safe for concurrent readers; Destroy blocks until active
// readers have finished.
type Tree struct {
	mu sync.RWMutex

	// nodes is the arena: leaves first in input order, then every
	// reduction pass appended left to right, the root last. nil once the
	// tree has been destroyed.
	nodes []node

	leafCount int
	height    int // reduction passes performed
	branching int
	h         hasher.Hasher
	log       *zap.Logger
}

// Proof shows that one leaf belongs to the tree with a given root hash.
type Proof struct {
	// Items holds one entry per level on the path from the leaf up to,
	// but not including, the root. A single-leaf tree proves with no
	// items at all.
	Items []ProofItem

	// LeafIndex is the position of the proven leaf in the original input.
	LeafIndex int

	// BranchingFactor records the fan-out of the originating tree.
	BranchingFactor int

	// Algorithm names the digest algorithm of the originating tree so
	// that verification can resolve the same hasher. Empty means SHA-256.
	Algorithm string
}

// ProofItem carries the sibling set of one node on the path from leaf to
// root.
type ProofItem struct {
	// SiblingHashes holds every sibling's hash in original child order,
	// the proven node itself excluded. Ragged groups at the right edge of
	// a level simply carry fewer siblings.
	SiblingHashes [][hasher.Size]byte

	// NodePosition is the proven node's index among its parent's
	// children, which is where the running hash slots back in during
	// verification.
	NodePosition int
}

// Package merkle builds n-ary merkle trees over opaque data blocks and
// produces inclusion proofs that verify against the root hash alone.
//
// Trees are built in level order with a configurable branching factor.
// A level whose width is not a multiple of the branching factor ends in a
// smaller final group; nothing is padded or duplicated, so every digest is
// computed over real child hashes.
package merkle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/alderlab/merkle-go/pkg/hasher"
)

const defaultBranchingFactor = 2

// settings collects the construction options.
type settings struct {
	branching int
	h         hasher.Hasher
	log       *zap.Logger
}

// Option configures tree construction.
type Option func(*settings)

// WithBranchingFactor sets the maximum number of children per internal
// node. The default is 2. A branching factor of 1 is only accepted for a
// single-leaf tree, since it could never reduce a wider level.
func WithBranchingFactor(n int) Option {
	return func(s *settings) { s.branching = n }
}

// WithHasher selects the digest algorithm. The default is SHA-256.
func WithHasher(h hasher.Hasher) Option {
	return func(s *settings) { s.h = h }
}

// WithLogger attaches a logger. Construction emits debug-level tracing of
// arena sizing and per-pass reduction; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) { s.log = log }
}

// New builds a merkle tree over the given data blocks. Leaves keep the
// input order; each block is hashed into a leaf and successive reduction
// passes hash groups of up to the branching factor into parents until a
// single root remains.
//
// The tree takes private copies of the blocks, so callers may reuse their
// buffers afterwards. On error no partially built tree is retained.
func New(blocks [][]byte, opts ...Option) (*Tree, error) {
	cfg := settings{
		branching: defaultBranchingFactor,
		h:         hasher.SHA256{},
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.h == nil {
		return nil, fmt.Errorf("%w: hasher", ErrNilArgument)
	}
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}

	if err := validateInput(blocks, cfg.branching); err != nil {
		return nil, err
	}

	nodes, height, err := buildNodes(blocks, cfg.branching, cfg.h, cfg.log)
	if err != nil {
		return nil, err
	}

	t := &Tree{
		leafCount: len(blocks),
		branching: cfg.branching,
		h:         cfg.h,
		log:       cfg.log,
	}

	// Publish under the write lock. The tree only escapes to other
	// goroutines after New returns, so readers never observe a partial
	// arena.
	t.mu.Lock()
	t.nodes = nodes
	t.height = height
	t.mu.Unlock()

	return t, nil
}

// validateInput rejects bad block sets before anything is allocated.
func validateInput(blocks [][]byte, branching int) error {
	if blocks == nil {
		return fmt.Errorf("%w: data blocks", ErrNilArgument)
	}
	if len(blocks) == 0 {
		return fmt.Errorf("%w: no data blocks", ErrBadLength)
	}
	if branching < 1 {
		return fmt.Errorf("%w: branching factor %d", ErrBadArgument, branching)
	}
	if branching == 1 && len(blocks) > 1 {
		return fmt.Errorf("%w: branching factor 1 cannot reduce %d leaves", ErrBadArgument, len(blocks))
	}
	for i, block := range blocks {
		if block == nil {
			return fmt.Errorf("%w: data block %d", ErrNilArgument, i)
		}
		if len(block) == 0 {
			return fmt.Errorf("%w: data block %d is empty", ErrBadLength, i)
		}
	}
	return nil
}

// RootHash returns the root digest of a built tree.
func (t *Tree) RootHash() ([hasher.Size]byte, error) {
	if t == nil {
		return [hasher.Size]byte{}, fmt.Errorf("%w: tree", ErrNilArgument)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.nodes == nil {
		return [hasher.Size]byte{}, fmt.Errorf("%w: tree has been destroyed", ErrBadArgument)
	}
	return t.nodes[len(t.nodes)-1].hash, nil
}

// LeafCount returns the number of data blocks the tree was built over, or
// zero for a destroyed tree.
func (t *Tree) LeafCount() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.nodes == nil {
		return 0
	}
	return t.leafCount
}

// Height returns the number of reduction passes between the leaves and the
// root. A single-leaf tree has height zero.
func (t *Tree) Height() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.nodes == nil {
		return 0
	}
	return t.height
}

// BranchingFactor returns the maximum fan-out the tree was built with, or
// zero for a destroyed tree.
func (t *Tree) BranchingFactor() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.nodes == nil {
		return 0
	}
	return t.branching
}

// Algorithm returns the name of the digest algorithm the tree hashes with,
// or an empty string for a destroyed tree.
func (t *Tree) Algorithm() string {
	if t == nil {
		return ""
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.nodes == nil {
		return ""
	}
	return t.h.Name()
}

// Destroy wipes the tree's private copies of the leaf data and releases
// the node arena. It blocks until active readers have finished; any
// operation after Destroy fails with ErrBadArgument. Destroy is safe to
// call on a nil tree and is idempotent.
func (t *Tree) Destroy() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.nodes == nil {
		return
	}
	t.log.Debug("destroying merkle tree",
		zap.Int("leaves", t.leafCount),
		zap.Int("nodes", len(t.nodes)),
	)
	wipeArena(t.nodes)
	t.nodes = nil
	t.leafCount = 0
	t.height = 0
}

// wipeArena zeroes every leaf's private data copy before the arena is
// dropped.
func wipeArena(nodes []node) {
	for i := range nodes {
		if nodes[i].data != nil {
			clear(nodes[i].data)
			nodes[i].data = nil
		}
	}
}

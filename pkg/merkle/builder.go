package merkle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/alderlab/merkle-go/pkg/hasher"
	"github.com/alderlab/merkle-go/pkg/queue"
)

// buildNodes hashes the blocks into leaves and runs the level-order
// reduction until a single root remains. It returns the finished arena and
// the number of reduction passes.
//
// The pending queue holds arena indices, never nodes. Parents of one pass
// are computed from the level width before the pass starts, so generations
// cannot interleave even though parents are pushed while the pass runs.
func buildNodes(blocks [][]byte, branching int, h hasher.Hasher, log *zap.Logger) ([]node, int, error) {
	leafCount := len(blocks)

	// The arena size is known up front: every pass adds one parent per
	// full or ragged sibling group until a single node remains.
	capacity := totalNodes(leafCount, branching)
	nodes := make([]node, 0, capacity)
	log.Debug("allocating node arena",
		zap.Int("leaves", leafCount),
		zap.Int("branching_factor", branching),
		zap.Int("capacity", capacity),
	)

	fail := func(err error) ([]node, int, error) {
		wipeArena(nodes)
		return nil, 0, err
	}

	pending := queue.New[int32](leafCount)
	for i, block := range blocks {
		data := make([]byte, len(block))
		copy(data, block)
		nodes = append(nodes, node{
			hash:       h.Hash(data),
			data:       data,
			parent:     -1,
			firstChild: -1,
		})
		pending.Push(int32(i))
	}

	height := 0
	for pending.Len() > 1 {
		width := pending.Len()
		// Round up without summing width and branching; the sum wraps
		// when the branching factor is near the integer limit.
		parents := width / branching
		if width%branching != 0 {
			parents++
		}
		log.Debug("reduction pass",
			zap.Int("pass", height+1),
			zap.Int("width", width),
			zap.Int("parents", parents),
		)

		for p := 0; p < parents; p++ {
			group := pending.DrainFront(branching)
			if len(group) == 0 {
				return fail(fmt.Errorf("%w: drained an empty sibling group", ErrTreeBuild))
			}

			// Children of one parent must sit side by side in the
			// arena; the (firstChild, childCount) window depends on it.
			first := group[0]
			for i, idx := range group {
				if idx != first+int32(i) {
					return fail(fmt.Errorf("%w: sibling group not contiguous at node %d", ErrTreeBuild, idx))
				}
			}

			children := make([][]byte, len(group))
			for i, idx := range group {
				children[i] = nodes[idx].hash[:]
			}
			parentHash := h.Hash(children...)

			parentIdx := int32(len(nodes))
			nodes = append(nodes, node{
				hash:       parentHash,
				parent:     -1,
				firstChild: first,
				childCount: int32(len(group)),
			})
			for _, idx := range group {
				nodes[idx].parent = parentIdx
			}
			pending.Push(parentIdx)
		}
		height++
	}

	if len(nodes) != capacity {
		return fail(fmt.Errorf("%w: arena holds %d nodes, expected %d", ErrTreeBuild, len(nodes), capacity))
	}
	return nodes, height, nil
}

// totalNodes returns the arena size for a tree over n leaves: the leaves
// plus one parent per sibling group per pass until a single node remains.
func totalNodes(n, branching int) int {
	total := n
	for width := n; width > 1; {
		parents := width / branching
		if width%branching != 0 {
			parents++
		}
		width = parents
		total += width
	}
	return total
}

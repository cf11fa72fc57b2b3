package queue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestQueueFIFOOrder tests that elements come out in insertion order
func TestQueueFIFOOrder(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 10; i++ {
		q.Push(i)
	}
	require.Equal(t, 10, q.Len())

	for i := 0; i < 10; i++ {
		item, ok := q.PopFront()
		require.True(t, ok)
		require.Equal(t, i, item)
	}
	require.Equal(t, 0, q.Len())
}

// TestQueueEmptyAccess tests that pops and peeks on an empty queue miss softly
func TestQueueEmptyAccess(t *testing.T) {
	q := New[string](0)

	item, ok := q.PopFront()
	require.False(t, ok)
	require.Equal(t, "", item)

	_, ok = q.PeekFront()
	require.False(t, ok)

	_, ok = q.PeekBack()
	require.False(t, ok)

	require.Equal(t, 0, q.Len())
}

// TestQueueZeroValue tests that the zero value works without New
func TestQueueZeroValue(t *testing.T) {
	var q Queue[int]
	q.Push(1)
	q.Push(2)

	item, ok := q.PopFront()
	require.True(t, ok)
	require.Equal(t, 1, item)
	require.Equal(t, 1, q.Len())
}

// TestQueuePeek tests front and back peeks against pushes and pops
func TestQueuePeek(t *testing.T) {
	q := New[int](2)
	q.Push(10)
	q.Push(20)
	q.Push(30)

	front, ok := q.PeekFront()
	require.True(t, ok)
	require.Equal(t, 10, front)

	back, ok := q.PeekBack()
	require.True(t, ok)
	require.Equal(t, 30, back)

	// Peeks must not consume
	require.Equal(t, 3, q.Len())

	_, _ = q.PopFront()
	front, ok = q.PeekFront()
	require.True(t, ok)
	require.Equal(t, 20, front)
}

// TestQueueDrainFront tests the bulk removal used for sibling groups
func TestQueueDrainFront(t *testing.T) {
	testCases := []struct {
		name      string
		pushed    int
		drain     int
		wantLen   int
		leftovers int
	}{
		{"Drain part", 10, 4, 4, 6},
		{"Drain exactly all", 5, 5, 5, 0},
		{"Drain more than queued", 3, 8, 3, 0},
		{"Drain zero", 3, 0, 0, 3},
		{"Drain negative", 3, -1, 0, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := New[int](4)
			for i := 0; i < tc.pushed; i++ {
				q.Push(i)
			}

			out := q.DrainFront(tc.drain)
			require.Len(t, out, tc.wantLen)
			require.Equal(t, tc.leftovers, q.Len())

			// Drained elements keep queue order
			for i, item := range out {
				require.Equal(t, i, item)
			}

			// Remaining elements continue where the drain stopped
			for i := 0; i < tc.leftovers; i++ {
				item, ok := q.PopFront()
				require.True(t, ok)
				require.Equal(t, tc.wantLen+i, item)
			}
		})
	}
}

// TestQueueDrainFrontEmpty tests that draining an empty queue yields nil
func TestQueueDrainFrontEmpty(t *testing.T) {
	q := New[int](0)
	require.Nil(t, q.DrainFront(4))
}

// TestQueueReset tests that reset releases everything and runs the cleanup
func TestQueueReset(t *testing.T) {
	q := New[[]byte](2)
	q.Push([]byte("a"))
	q.Push([]byte("b"))
	q.Push([]byte("c"))

	var cleaned []string
	q.Reset(func(b []byte) {
		cleaned = append(cleaned, string(b))
	})

	require.Equal(t, []string{"a", "b", "c"}, cleaned)
	require.Equal(t, 0, q.Len())

	_, ok := q.PopFront()
	require.False(t, ok)

	// Queue stays usable after a reset
	q.Push([]byte("d"))
	item, ok := q.PopFront()
	require.True(t, ok)
	require.Equal(t, []byte("d"), item)
}

// TestQueueResetNilCleanup tests reset without a cleanup callback
func TestQueueResetNilCleanup(t *testing.T) {
	q := New[int](0)
	q.Push(1)
	q.Push(2)
	q.Reset(nil)
	require.Equal(t, 0, q.Len())
}

// TestQueueWraparound tests order across ring buffer wraparound
func TestQueueWraparound(t *testing.T) {
	q := New[int](4)

	// Advance the head so later pushes wrap past the end of the buffer
	for i := 0; i < 3; i++ {
		q.Push(i)
	}
	for i := 0; i < 3; i++ {
		item, ok := q.PopFront()
		require.True(t, ok)
		require.Equal(t, i, item)
	}

	for i := 100; i < 110; i++ {
		q.Push(i)
	}
	for i := 100; i < 110; i++ {
		item, ok := q.PopFront()
		require.True(t, ok)
		require.Equal(t, i, item)
	}
}

// TestQueueGrowth tests that growth preserves order from arbitrary head offsets
func TestQueueGrowth(t *testing.T) {
	for offset := 0; offset < 8; offset++ {
		t.Run(fmt.Sprintf("Offset_%d", offset), func(t *testing.T) {
			q := New[int](8)
			for i := 0; i < offset; i++ {
				q.Push(-1)
			}
			for i := 0; i < offset; i++ {
				_, _ = q.PopFront()
			}

			// Overfill well past the initial capacity
			for i := 0; i < 100; i++ {
				q.Push(i)
			}
			require.Equal(t, 100, q.Len())

			for i := 0; i < 100; i++ {
				item, ok := q.PopFront()
				require.True(t, ok)
				require.Equal(t, i, item)
			}
		})
	}
}

// TestQueueInterleaved tests mixed pushes, pops and drains keep strict order
func TestQueueInterleaved(t *testing.T) {
	q := New[int](4)
	next := 0
	expect := 0

	push := func(n int) {
		for i := 0; i < n; i++ {
			q.Push(next)
			next++
		}
	}
	popOne := func() {
		item, ok := q.PopFront()
		require.True(t, ok)
		require.Equal(t, expect, item)
		expect++
	}

	push(5)
	popOne()
	popOne()
	push(3)

	out := q.DrainFront(4)
	require.Len(t, out, 4)
	for _, item := range out {
		require.Equal(t, expect, item)
		expect++
	}

	push(2)
	for q.Len() > 0 {
		popOne()
	}
	require.Equal(t, next, expect)
}

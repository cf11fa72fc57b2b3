// Package queue provides the FIFO used by the merkle tree builder.
//
// The queue is generic and backed by a ring buffer, so the builder can hold
// node indices without boxing and drain sibling groups without per-item
// allocation.
package queue

const minCapacity = 8

// Queue is a first-in-first-out collection over elements of type T.
// The zero value is ready to use; New pre-sizes the backing array when the
// caller knows the expected load.
type Queue[T any] struct {
	buf  []T
	head int
	size int
}

// New returns an empty queue with room for capacity elements before the
// backing array has to grow. A non-positive capacity is treated as zero.
func New[T any](capacity int) *Queue[T] {
	q := &Queue[T]{}
	if capacity > 0 {
		q.buf = make([]T, capacity)
	}
	return q
}

// Push appends item at the tail of the queue.
func (q *Queue[T]) Push(item T) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = item
	q.size++
}

// PopFront removes and returns the oldest element. The second return value
// is false when the queue is empty.
func (q *Queue[T]) PopFront() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	item := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return item, true
}

// PeekFront returns the oldest element without removing it. The second
// return value is false when the queue is empty.
func (q *Queue[T]) PeekFront() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	return q.buf[q.head], true
}

// PeekBack returns the most recently pushed element without removing it.
// The second return value is false when the queue is empty.
func (q *Queue[T]) PeekBack() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	return q.buf[(q.head+q.size-1)%len(q.buf)], true
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	return q.size
}

// DrainFront removes up to n elements from the front and returns them in
// queue order. The result holds exactly the number of elements removed,
// which is the smaller of n and Len. A non-positive n or an empty queue
// yields nil.
func (q *Queue[T]) DrainFront(n int) []T {
	if n <= 0 || q.size == 0 {
		return nil
	}
	if n > q.size {
		n = q.size
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i], _ = q.PopFront()
	}
	return out
}

// Reset discards every remaining element, invoking cleanup for each one in
// queue order when cleanup is non-nil. The backing array is retained for
// reuse.
func (q *Queue[T]) Reset(cleanup func(T)) {
	var zero T
	for i := 0; i < q.size; i++ {
		idx := (q.head + i) % len(q.buf)
		if cleanup != nil {
			cleanup(q.buf[idx])
		}
		q.buf[idx] = zero
	}
	q.head = 0
	q.size = 0
}

// grow doubles the backing array and unwraps the ring so the occupied
// region starts at index zero again.
func (q *Queue[T]) grow() {
	capacity := len(q.buf) * 2
	if capacity < minCapacity {
		capacity = minCapacity
	}
	next := make([]T, capacity)
	m := copy(next, q.buf[q.head:])
	copy(next[m:], q.buf[:q.head])
	q.buf = next
	q.head = 0
}

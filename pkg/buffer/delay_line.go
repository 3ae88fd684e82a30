package buffer

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrFull is returned by Push when the line already holds Cap()+1 elements.
	ErrFull = errors.New("buffer: delay line full")

	// ErrEmpty is returned by Pop when the line holds no elements.
	ErrEmpty = errors.New("buffer: delay line empty")
)

// DelayLine is a fixed-capacity FIFO ring.
//
// The nominal capacity n is the steady-state length. One extra slot is
// reserved so that a Push may precede the matching Pop, which is the order a
// feedback loop naturally produces (compute next from the head, append it,
// then drop the head).
//
// head and tail are monotonically increasing counters; the slot of a logical
// position is its counter modulo len(buf).
type DelayLine[T any] struct {
	buf        []T
	head, tail int64
}

// DelayN creates an empty DelayLine with nominal capacity n.
// It panics if n < 1.
func DelayN[T any](n int) *DelayLine[T] {
	if n < 1 {
		panic(fmt.Sprintf("buffer: invalid delay line capacity %d", n))
	}
	return &DelayLine[T]{buf: make([]T, n+1)}
}

// Fill resets the line and fills it to its nominal capacity with f(i) for
// i in [0, Cap()).
func (dl *DelayLine[T]) Fill(f func(i int) T) {
	dl.head, dl.tail = 0, 0
	for i := 0; i < dl.Cap(); i++ {
		dl.buf[i] = f(i)
	}
	dl.tail = int64(dl.Cap())
}

// At returns the element at logical position i, where 0 is the head.
// It panics if i is out of range.
func (dl *DelayLine[T]) At(i int) T {
	if i < 0 || int64(i) >= dl.tail-dl.head {
		panic(fmt.Sprintf("buffer: delay line index %d out of range [0,%d)", i, dl.tail-dl.head))
	}
	return dl.buf[(dl.head+int64(i))%int64(len(dl.buf))]
}

// Push appends v at the tail.
func (dl *DelayLine[T]) Push(v T) error {
	if dl.tail-dl.head >= int64(len(dl.buf)) {
		return ErrFull
	}
	dl.buf[dl.tail%int64(len(dl.buf))] = v
	dl.tail++
	return nil
}

// Pop removes and returns the head element.
func (dl *DelayLine[T]) Pop() (v T, err error) {
	if dl.head == dl.tail {
		err = ErrEmpty
		return
	}
	v = dl.buf[dl.head%int64(len(dl.buf))]
	dl.head++
	return v, nil
}

// Len returns the number of elements currently in the line.
func (dl *DelayLine[T]) Len() int {
	return int(dl.tail - dl.head)
}

// Cap returns the nominal capacity.
func (dl *DelayLine[T]) Cap() int {
	return len(dl.buf) - 1
}

// Snapshot returns a copy of the elements from head to tail.
func (dl *DelayLine[T]) Snapshot() []T {
	out := make([]T, 0, dl.Len())
	for i := dl.head; i < dl.tail; i++ {
		out = append(out, dl.buf[i%int64(len(dl.buf))])
	}
	return out
}

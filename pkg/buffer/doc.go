// Package buffer provides fixed-capacity buffer implementations for
// sample-level signal processing.
//
// DelayLine is a FIFO ring over a preallocated slice. Appending to the tail
// and removing from the head are O(1) index rotations; no element is ever
// moved. It is meant to be owned by a single goroutine for the lifetime of
// one computation, so it carries no locking.
//
// Example usage:
//
//	dl := buffer.DelayN[float64](4)
//	dl.Fill(func(int) float64 { return 0.25 })
//
//	out := dl.At(0)
//	dl.Push(0.5 * (dl.At(0) + dl.At(1)))
//	dl.Pop()
package buffer

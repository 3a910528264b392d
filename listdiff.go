// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package listdiff

import (
	"znkr.io/listdiff/internal/config"
	"znkr.io/listdiff/internal/dispatch"
	"znkr.io/listdiff/internal/myers"
	"znkr.io/listdiff/internal/status"
)

// NoPosition is returned by [Result.OldToNew] and [Result.NewToOld] for items without a
// counterpart in the other list.
const NoPosition = status.NoPosition

var (
	// ErrOutOfRange is returned for positions outside of a list.
	ErrOutOfRange = status.ErrOutOfRange

	// ErrInconsistent is returned if the comparisons of a [Callback] contradict each other. This
	// happens if a list is modified while a diff is computed.
	ErrInconsistent = myers.ErrInconsistent
)

// Callback provides access to the two lists that are compared.
type Callback interface {
	// OldLen returns the length of the old list.
	OldLen() int

	// NewLen returns the length of the new list.
	NewLen() int

	// SameItem reports whether old[oldIndex] and new[newIndex] represent the same item.
	SameItem(oldIndex, newIndex int) bool

	// SameContent reports whether old[oldIndex] and new[newIndex] have the same contents. It's
	// only called if SameItem returned true for the same positions.
	SameContent(oldIndex, newIndex int) bool

	// ChangePayload returns the payload that is passed to [Sink.Changed] for a change of
	// old[oldIndex] into new[newIndex]. It's only called if SameContent returned false. Return
	// nil if there is no payload.
	ChangePayload(oldIndex, newIndex int) any
}

// Items is a [Callback] for two slices that compares items with functions.
type Items[T any] struct {
	Old, New []T

	// Same reports whether a and b represent the same item. Required.
	Same func(a, b T) bool

	// Equal reports whether a and b have the same contents. If nil, the contents of items are
	// always the same.
	Equal func(a, b T) bool

	// Payload returns the payload for a change of a into b. If nil, changes have no payload.
	Payload func(a, b T) any
}

// Comparable returns a [Callback] for two slices of comparable elements. Elements are the same
// item if they are equal; as a consequence, there are never any changes.
func Comparable[T comparable](old, new []T) *Items[T] {
	eq := func(a, b T) bool { return a == b }
	return &Items[T]{Old: old, New: new, Same: eq, Equal: eq}
}

// OldLen returns len(it.Old).
func (it *Items[T]) OldLen() int { return len(it.Old) }

// NewLen returns len(it.New).
func (it *Items[T]) NewLen() int { return len(it.New) }

// SameItem calls Same for old[oldIndex] and new[newIndex].
func (it *Items[T]) SameItem(oldIndex, newIndex int) bool {
	return it.Same(it.Old[oldIndex], it.New[newIndex])
}

// SameContent calls Equal for old[oldIndex] and new[newIndex], or reports true if Equal is nil.
func (it *Items[T]) SameContent(oldIndex, newIndex int) bool {
	if it.Equal == nil {
		return true
	}
	return it.Equal(it.Old[oldIndex], it.New[newIndex])
}

// ChangePayload calls Payload for old[oldIndex] and new[newIndex], or returns nil if Payload is
// nil.
func (it *Items[T]) ChangePayload(oldIndex, newIndex int) any {
	if it.Payload == nil {
		return nil
	}
	return it.Payload(it.Old[oldIndex], it.New[newIndex])
}

// Sink receives the operations that transform the old list into the new list.
//
// Positions always refer to the list with all previous operations applied. A move from `from` to
// `to` removes the item at `from` and then inserts it at `to`.
type Sink = dispatch.Sink

// BatchingSink is a [Sink] that merges consecutive operations of the same kind before forwarding
// them to another sink.
type BatchingSink = dispatch.Batching

// NewBatchingSink returns a [BatchingSink] that forwards to sink. The last operation is only
// forwarded after calling [BatchingSink.Flush].
func NewBatchingSink(sink Sink) *BatchingSink {
	return dispatch.NewBatching(sink)
}

// Result is the difference between two lists. It's immutable and safe for concurrent use as long
// as the [Callback] it was computed with is.
type Result struct {
	cb Callback
	t  *status.Table
}

// Compute compares the lists provided by cb.
//
// The following options are supported: [DetectMoves].
//
// Compute returns an error wrapping [ErrInconsistent] if the answers of cb contradict each other.
func Compute(cb Callback, opts ...Option) (*Result, error) {
	cfg := config.FromOptions(opts, config.DetectMoves)
	snakes, err := myers.Solve(cb)
	if err != nil {
		return nil, err
	}
	return &Result{cb: cb, t: status.Build(cb, snakes, cfg.DetectMoves)}, nil
}

// OldLen returns the length of the old list.
func (r *Result) OldLen() int { return len(r.t.Old) }

// NewLen returns the length of the new list.
func (r *Result) NewLen() int { return len(r.t.New) }

// OldToNew returns the position in the new list of the item at position i in the old list. If the
// item was removed, it returns [NoPosition]. If i is not a position of the old list, it returns an
// error wrapping [ErrOutOfRange].
func (r *Result) OldToNew(i int) (int, error) { return r.t.OldToNew(i) }

// NewToOld returns the position in the old list of the item at position i in the new list. If the
// item was inserted, it returns [NoPosition]. If i is not a position of the new list, it returns
// an error wrapping [ErrOutOfRange].
func (r *Result) NewToOld(i int) (int, error) { return r.t.NewToOld(i) }

// Dispatch sends the operations that transform the old list into the new list to sink.
// Consecutive operations are merged. If sink is a [BatchingSink], it's used as is and the caller
// is responsible to flush it.
//
// Dispatch can be called multiple times. Payloads are requested from the [Callback] for every
// call.
func (r *Result) Dispatch(sink Sink) error {
	return dispatch.Dispatch(r.t, r.cb, sink)
}

// Operations returns the operations that transform the old list into the new list.
func (r *Result) Operations() ([]Operation, error) {
	var rec Recorder
	err := r.Dispatch(&rec)
	return rec.Ops, err
}

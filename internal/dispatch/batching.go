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

package dispatch

import "reflect"

type eventType int

const (
	eventNone eventType = iota
	eventInsert
	eventRemove
	eventChange
)

// Batching is a Sink that merges consecutive operations of the same kind before forwarding them
// to another Sink.
//
// Insertions are merged if they are adjacent to or inside of the pending insertion, removals if
// the pending removal starts inside of the new one and changes if they overlap or touch the
// pending change and carry the same payload. Moves are never merged.
//
// Call Flush after the last operation to forward the pending operation.
type Batching struct {
	wrapped Sink

	typ     eventType
	pos     int
	count   int
	payload any
}

// NewBatching returns a Batching that forwards to sink.
func NewBatching(sink Sink) *Batching {
	return &Batching{wrapped: sink}
}

// Flush forwards the pending operation, if any.
func (b *Batching) Flush() {
	switch b.typ {
	case eventNone:
		return
	case eventInsert:
		b.wrapped.Inserted(b.pos, b.count)
	case eventRemove:
		b.wrapped.Removed(b.pos, b.count)
	case eventChange:
		b.wrapped.Changed(b.pos, b.count, b.payload)
	}
	b.typ = eventNone
	b.payload = nil
}

// Inserted merges the insertion into the pending one or flushes and starts a new one.
func (b *Batching) Inserted(pos, count int) {
	if b.typ == eventInsert && pos >= b.pos && pos <= b.pos+b.count {
		b.count += count
		b.pos = min(pos, b.pos)
		return
	}
	b.Flush()
	b.typ, b.pos, b.count = eventInsert, pos, count
}

// Removed merges the removal into the pending one or flushes and starts a new one.
func (b *Batching) Removed(pos, count int) {
	if b.typ == eventRemove && b.pos >= pos && b.pos <= pos+count {
		b.count += count
		b.pos = pos
		return
	}
	b.Flush()
	b.typ, b.pos, b.count = eventRemove, pos, count
}

// Moved flushes and forwards the move.
func (b *Batching) Moved(from, to int) {
	b.Flush()
	b.wrapped.Moved(from, to)
}

// Changed merges the change into the pending one or flushes and starts a new one.
func (b *Batching) Changed(pos, count int, payload any) {
	if b.typ == eventChange && pos <= b.pos+b.count && pos+count >= b.pos && samePayload(b.payload, payload) {
		end := b.pos + b.count
		b.pos = min(pos, b.pos)
		b.count = max(end, pos+count) - b.pos
		return
	}
	b.Flush()
	b.typ, b.pos, b.count, b.payload = eventChange, pos, count, payload
}

// samePayload reports whether two payloads are equal without panicking on payloads that can't be
// compared. Comparable types can still hold incomparable values in interface fields, those are
// reported as different.
func samePayload(a, b any) (eq bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

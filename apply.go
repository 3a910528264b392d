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

import "fmt"

// Apply applies the operations of r to a copy of old and returns the result. Inserted and changed
// items are taken from new, all other items from old.
//
// Apply verifies that every item ends up at the position reported by [Result.NewToOld]. If it
// doesn't, Apply returns an error wrapping [ErrInconsistent].
func Apply[T any](r *Result, old, new []T) ([]T, error) {
	if len(old) != r.OldLen() || len(new) != r.NewLen() {
		return nil, fmt.Errorf("%w: lists of length %d and %d for a result of length %d and %d", ErrOutOfRange, len(old), len(new), r.OldLen(), r.NewLen())
	}

	rp := replayer{slots: make([]slot, len(old), max(len(old), len(new)))}
	for i := range rp.slots {
		rp.slots[i] = slot{old: i}
	}
	if err := r.Dispatch(&rp); err != nil {
		return nil, err
	}
	if rp.err != nil {
		return nil, rp.err
	}
	if len(rp.slots) != len(new) {
		return nil, fmt.Errorf("%w: replay produced %d items, want %d", ErrInconsistent, len(rp.slots), len(new))
	}

	out := make([]T, len(new))
	for j, s := range rp.slots {
		want, err := r.NewToOld(j)
		if err != nil {
			return nil, err
		}
		if s.old != want {
			return nil, fmt.Errorf("%w: position %d holds old item %d, want %d", ErrInconsistent, j, s.old, want)
		}
		if s.old == NoPosition || s.changed {
			out[j] = new[j]
		} else {
			out[j] = old[s.old]
		}
	}
	return out, nil
}

// slot is a position in the list that is being transformed.
type slot struct {
	old     int // Position in the old list or NoPosition for insertions.
	changed bool
}

// replayer is a Sink that tracks where the items of the old list end up.
type replayer struct {
	slots []slot
	err   error // First invalid operation.
}

// valid records an error for the operation unless ok. It reports whether the operation can be
// applied.
func (rp *replayer) valid(ok bool, op Operation) bool {
	if rp.err != nil {
		return false
	}
	if !ok {
		rp.err = fmt.Errorf("%w: %v on a list of length %d", ErrInconsistent, op, len(rp.slots))
	}
	return ok
}

func (rp *replayer) Inserted(pos, count int) {
	n := len(rp.slots)
	if !rp.valid(pos >= 0 && pos <= n && count >= 0, Operation{Op: Insert, Pos: pos, Count: count}) {
		return
	}
	ins := make([]slot, count)
	for i := range ins {
		ins[i] = slot{old: NoPosition}
	}
	rp.slots = append(rp.slots[:pos], append(ins, rp.slots[pos:]...)...)
}

func (rp *replayer) Removed(pos, count int) {
	n := len(rp.slots)
	if !rp.valid(pos >= 0 && count >= 0 && pos+count <= n, Operation{Op: Remove, Pos: pos, Count: count}) {
		return
	}
	rp.slots = append(rp.slots[:pos], rp.slots[pos+count:]...)
}

func (rp *replayer) Moved(from, to int) {
	n := len(rp.slots)
	if !rp.valid(from >= 0 && from < n && to >= 0 && to < n, Operation{Op: Move, Pos: from, Count: 1, To: to}) {
		return
	}
	s := rp.slots[from]
	rp.slots = append(rp.slots[:from], rp.slots[from+1:]...)
	rp.slots = append(rp.slots[:to], append([]slot{s}, rp.slots[to:]...)...)
}

func (rp *replayer) Changed(pos, count int, payload any) {
	n := len(rp.slots)
	if !rp.valid(pos >= 0 && count >= 0 && pos+count <= n, Operation{Op: Change, Pos: pos, Count: count, Payload: payload}) {
		return
	}
	for i := pos; i < pos+count; i++ {
		rp.slots[i].changed = true
	}
}

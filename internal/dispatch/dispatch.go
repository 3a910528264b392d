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

// Package dispatch replays a classified diff as a sequence of operations.
//
// The operations are emitted from the end of the lists to the start. That way, a position
// before the current one is always the same in the old list and in the list that is being
// transformed, only positions after the current one need to be adjusted. Moves complicate this,
// because the two halves of a move are visited at different times: the half that is visited first
// is postponed and its position is kept up to date until the other half is visited.
package dispatch

import (
	"fmt"

	"znkr.io/listdiff/internal/myers"
	"znkr.io/listdiff/internal/status"
)

// Sink receives the operations that transform the old list into the new list. Positions always
// refer to the list with all previous operations applied.
type Sink interface {
	// Inserted is called when count items are inserted at pos.
	Inserted(pos, count int)
	// Removed is called when count items are removed at pos.
	Removed(pos, count int)
	// Moved is called when the item at from is moved to to.
	Moved(from, to int)
	// Changed is called when the contents of count items at pos changed.
	Changed(pos, count int, payload any)
}

// PayloadSource provides the payloads for changed items.
type PayloadSource interface {
	ChangePayload(oldIndex, newIndex int) any
}

// postponed is one half of a move whose other half hasn't been visited yet.
type postponed struct {
	ownerPos   int  // Position in the list this half belongs to.
	currentPos int  // Position in the list that is being transformed.
	removal    bool // Set if this half is a removal.
}

type dispatcher struct {
	t         *status.Table
	c         PayloadSource
	sink      Sink
	postponed []*postponed
}

// Dispatch replays t as a sequence of operations into sink. Consecutive operations are merged
// using a Batching, unless sink already is one. The caller remains responsible to flush a
// Batching that it provided.
//
// If t contains flags that can't be replayed, Dispatch stops and returns an error wrapping
// [myers.ErrInconsistent]. All operations emitted up to that point are forwarded to sink.
func Dispatch(t *status.Table, c PayloadSource, sink Sink) error {
	b, ok := sink.(*Batching)
	if !ok {
		b = NewBatching(sink)
		defer b.Flush()
	}
	d := dispatcher{t: t, c: c, sink: b}
	return d.run()
}

func (d *dispatcher) run() error {
	t := d.t
	s, u := len(t.Old), len(t.New)
	for i := len(t.Snakes) - 1; i >= 0; i-- {
		snake := t.Snakes[i]
		endX, endY := snake.X+snake.Size, snake.Y+snake.Size
		if endX < s {
			if err := d.removals(endX, s-endX); err != nil {
				return err
			}
		}
		if endY < u {
			if err := d.insertions(endX, endY, u-endY); err != nil {
				return err
			}
		}
		for j := snake.Size - 1; j >= 0; j-- {
			x, y := snake.X+j, snake.Y+j
			if t.Old[x].Flag == status.Changed {
				d.sink.Changed(x, 1, d.c.ChangePayload(x, y))
			}
		}
		s, u = snake.X, snake.Y
	}
	if len(d.postponed) > 0 {
		p := d.postponed[0]
		return fmt.Errorf("%w: unmatched move of position %d (removal=%v)", myers.ErrInconsistent, p.ownerPos, p.removal)
	}
	return nil
}

// removals dispatches the removal of old[start:start+count]. Since everything after start has
// been dispatched already, start is also the position in the transformed list.
func (d *dispatcher) removals(start, count int) error {
	if !d.t.DetectMoves {
		d.sink.Removed(start, count)
		return nil
	}
	for i := count - 1; i >= 0; i-- {
		x := start + i
		st := d.t.Old[x]
		switch st.Flag {
		case status.Unset:
			d.sink.Removed(x, 1)
			for _, p := range d.postponed {
				p.currentPos--
			}
		case status.MovedChanged, status.MovedNotChanged:
			p := d.take(st.Pos, false)
			if p == nil {
				return fmt.Errorf("%w: no insertion pending for the move of old position %d", myers.ErrInconsistent, x)
			}
			// Removing the item first shifts the target position by one.
			to := p.currentPos - 1
			d.sink.Moved(x, to)
			if st.Flag == status.MovedChanged {
				d.sink.Changed(to, 1, d.c.ChangePayload(x, st.Pos))
			}
		case status.Ignore:
			d.postponed = append(d.postponed, &postponed{ownerPos: x, currentPos: x, removal: true})
		default:
			return fmt.Errorf("%w: unexpected flag %v for old position %d", myers.ErrInconsistent, st.Flag, x)
		}
	}
	return nil
}

// insertions dispatches the insertion of new[globalStart:globalStart+count] at position start of
// the transformed list.
func (d *dispatcher) insertions(start, globalStart, count int) error {
	if !d.t.DetectMoves {
		d.sink.Inserted(start, count)
		return nil
	}
	for i := count - 1; i >= 0; i-- {
		y := globalStart + i
		st := d.t.New[y]
		switch st.Flag {
		case status.Unset:
			d.sink.Inserted(start, 1)
			for _, p := range d.postponed {
				p.currentPos++
			}
		case status.MovedChanged, status.MovedNotChanged:
			p := d.take(st.Pos, true)
			if p == nil {
				return fmt.Errorf("%w: no removal pending for the move of new position %d", myers.ErrInconsistent, y)
			}
			d.sink.Moved(p.currentPos, start)
			if st.Flag == status.MovedChanged {
				d.sink.Changed(start, 1, d.c.ChangePayload(st.Pos, y))
			}
		case status.Ignore:
			d.postponed = append(d.postponed, &postponed{ownerPos: y, currentPos: start, removal: false})
		default:
			return fmt.Errorf("%w: unexpected flag %v for new position %d", myers.ErrInconsistent, st.Flag, y)
		}
	}
	return nil
}

// take removes and returns the postponed half of a move. The halves that were postponed after it
// are adjusted for the completed move.
func (d *dispatcher) take(ownerPos int, removal bool) *postponed {
	for i := len(d.postponed) - 1; i >= 0; i-- {
		p := d.postponed[i]
		if p.ownerPos != ownerPos || p.removal != removal {
			continue
		}
		d.postponed = append(d.postponed[:i], d.postponed[i+1:]...)
		for _, q := range d.postponed[i:] {
			if removal {
				q.currentPos++
			} else {
				q.currentPos--
			}
		}
		return p
	}
	return nil
}

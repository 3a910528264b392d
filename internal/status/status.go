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

// Package status classifies every position of the old and the new list after the snakes of a
// shortest edit script have been found.
//
// Positions covered by a snake are matches, they are either unchanged or changed in place. All
// other positions are removals (old list) or insertions (new list). If move detection is enabled,
// a second pass pairs up removals and insertions of the same item and turns them into moves.
package status

import (
	"errors"
	"fmt"
	"slices"

	"znkr.io/listdiff/internal/myers"
)

// NoPosition is returned by position queries for items that have no counterpart in the other
// list.
const NoPosition = -1

// ErrOutOfRange is returned by position queries for positions outside of the list.
var ErrOutOfRange = errors.New("listdiff: position out of range")

// Flag classifies a single position.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Flag
type Flag uint8

const (
	Unset           Flag = iota // A removal (old list) or an insertion (new list).
	NotChanged                  // Matched in place, contents are the same.
	Changed                     // Matched in place, contents differ.
	MovedChanged                // Moved, contents differ.
	MovedNotChanged             // Moved, contents are the same.

	// The move of this item is dispatched together with its partner. For an insertion this means
	// the item was removed at a later position in the old list, for a removal it means the item is
	// inserted at an earlier position in the new list.
	Ignore
)

// Status is the classification of a single position.
type Status struct {
	Flag Flag
	Pos  int // Position of the counterpart in the other list, unless Flag is Unset.
}

// Comparer provides access to the two lists that are compared.
type Comparer interface {
	myers.Comparer

	// SameContent reports whether old[oldIndex] and new[newIndex] have the same contents. It's
	// only called for positions for which SameItem returned true.
	SameContent(oldIndex, newIndex int) bool
}

// Table holds the classification of all positions of both lists.
type Table struct {
	Old, New []Status

	// Snakes sorted by position. The first snake always starts at (0,0).
	Snakes []myers.Snake

	// DetectMoves is set if moves were detected.
	DetectMoves bool
}

// Build classifies all positions using the snakes found by [myers.Solve].
func Build(c Comparer, snakes []myers.Snake, detectMoves bool) *Table {
	t := &Table{
		Old:         make([]Status, c.OldLen()),
		New:         make([]Status, c.NewLen()),
		Snakes:      snakes,
		DetectMoves: detectMoves,
	}

	// A root snake guarantees that walking the snakes backwards ends in (0,0).
	if len(snakes) == 0 || snakes[0].X != 0 || snakes[0].Y != 0 {
		t.Snakes = slices.Insert(slices.Clip(snakes), 0, myers.Snake{})
	}

	t.findMatchingItems(c)
	return t
}

// OldToNew returns the position in the new list of the item at position i in the old list or
// NoPosition if the item was removed.
func (t *Table) OldToNew(i int) (int, error) {
	if i < 0 || i >= len(t.Old) {
		return NoPosition, fmt.Errorf("%w: old position %d, old list size %d", ErrOutOfRange, i, len(t.Old))
	}
	return t.Old[i].position(), nil
}

// NewToOld returns the position in the old list of the item at position i in the new list or
// NoPosition if the item was inserted.
func (t *Table) NewToOld(i int) (int, error) {
	if i < 0 || i >= len(t.New) {
		return NoPosition, fmt.Errorf("%w: new position %d, new list size %d", ErrOutOfRange, i, len(t.New))
	}
	return t.New[i].position(), nil
}

func (st Status) position() int {
	if st.Flag == Unset {
		return NoPosition
	}
	return st.Pos
}

// findMatchingItems walks the snakes from (N,M) back to (0,0), classifies all matches and, if
// enabled, pairs removals with insertions.
func (t *Table) findMatchingItems(c Comparer) {
	s, u := len(t.Old), len(t.New)
	for i := len(t.Snakes) - 1; i >= 0; i-- {
		snake := t.Snakes[i]
		endX, endY := snake.X+snake.Size, snake.Y+snake.Size
		if t.DetectMoves {
			// old[endX:s] are removals, check if any of them was inserted again.
			for ; s > endX; s-- {
				if t.Old[s-1].Flag == Unset {
					t.findInsertion(c, s-1, u, i)
				}
			}
			// new[endY:u] are insertions, check if any of them was removed before.
			for ; u > endY; u-- {
				if t.New[u-1].Flag == Unset {
					t.findRemoval(c, s, u-1, i)
				}
			}
		}
		for j := range snake.Size {
			x, y := snake.X+j, snake.Y+j
			flag := Changed
			if c.SameContent(x, y) {
				flag = NotChanged
			}
			t.Old[x] = Status{flag, y}
			t.New[y] = Status{flag, x}
		}
		s, u = snake.X, snake.Y
	}
}

// findInsertion looks for an insertion of old[x] in new[:u], starting with the gap before
// snake i and continuing with the gaps before earlier snakes. The nearest match wins.
func (t *Table) findInsertion(c Comparer, x, u, i int) {
	for ; i >= 0; i-- {
		snake := t.Snakes[i]
		for y := u - 1; y >= snake.Y+snake.Size; y-- {
			if t.New[y].Flag != Unset || !c.SameItem(x, y) {
				continue
			}
			t.Old[x] = Status{Ignore, y}
			t.New[y] = Status{movedFlag(c, x, y), x}
			return
		}
		u = snake.Y
	}
}

// findRemoval looks for a removal of new[y] in old[:s], starting with the gap before snake i
// and continuing with the gaps before earlier snakes. The nearest match wins.
func (t *Table) findRemoval(c Comparer, s, y, i int) {
	for ; i >= 0; i-- {
		snake := t.Snakes[i]
		for x := s - 1; x >= snake.X+snake.Size; x-- {
			if t.Old[x].Flag != Unset || !c.SameItem(x, y) {
				continue
			}
			t.New[y] = Status{Ignore, x}
			t.Old[x] = Status{movedFlag(c, x, y), y}
			return
		}
		s = snake.X
	}
}

func movedFlag(c Comparer, x, y int) Flag {
	if c.SameContent(x, y) {
		return MovedNotChanged
	}
	return MovedChanged
}

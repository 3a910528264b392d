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

package status

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/listdiff/internal/myers"
)

// items compares lists of strings. The first byte identifies an item, the whole string is its
// content.
type items struct {
	old, new []string
}

func (c items) OldLen() int               { return len(c.old) }
func (c items) NewLen() int               { return len(c.new) }
func (c items) SameItem(x, y int) bool    { return c.old[x][0] == c.new[y][0] }
func (c items) SameContent(x, y int) bool { return c.old[x] == c.new[y] }

func split(s string) []string { return strings.Fields(s) }

func build(t *testing.T, old, new string, moves bool) *Table {
	t.Helper()
	c := items{split(old), split(new)}
	snakes, err := myers.Solve(c)
	if err != nil {
		t.Fatalf("myers.Solve(%q, %q) failed: %v", old, new, err)
	}
	return Build(c, snakes, moves)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		moves    bool
		wantOld  []Status
		wantNew  []Status
	}{
		{
			name:    "empty",
			wantOld: []Status{},
			wantNew: []Status{},
		},
		{
			name:    "identical",
			old:     "a b c",
			new:     "a b c",
			moves:   true,
			wantOld: []Status{{NotChanged, 0}, {NotChanged, 1}, {NotChanged, 2}},
			wantNew: []Status{{NotChanged, 0}, {NotChanged, 1}, {NotChanged, 2}},
		},
		{
			name:    "append",
			old:     "a b",
			new:     "a b c",
			moves:   true,
			wantOld: []Status{{NotChanged, 0}, {NotChanged, 1}},
			wantNew: []Status{{NotChanged, 0}, {NotChanged, 1}, {Unset, 0}},
		},
		{
			name:    "remove-first",
			old:     "a b c",
			new:     "b c",
			moves:   true,
			wantOld: []Status{{Unset, 0}, {NotChanged, 0}, {NotChanged, 1}},
			wantNew: []Status{{NotChanged, 1}, {NotChanged, 2}},
		},
		{
			name:    "change-in-place",
			old:     "a b c",
			new:     "a b' c",
			moves:   true,
			wantOld: []Status{{NotChanged, 0}, {Changed, 1}, {NotChanged, 2}},
			wantNew: []Status{{NotChanged, 0}, {Changed, 1}, {NotChanged, 2}},
		},
		{
			name:    "move-to-end",
			old:     "a b c",
			new:     "b c a",
			moves:   true,
			wantOld: []Status{{MovedNotChanged, 2}, {NotChanged, 0}, {NotChanged, 1}},
			wantNew: []Status{{NotChanged, 1}, {NotChanged, 2}, {Ignore, 0}},
		},
		{
			name:    "move-to-end-without-moves",
			old:     "a b c",
			new:     "b c a",
			wantOld: []Status{{Unset, 0}, {NotChanged, 0}, {NotChanged, 1}},
			wantNew: []Status{{NotChanged, 1}, {NotChanged, 2}, {Unset, 0}},
		},
		{
			name:    "move-to-start-changed",
			old:     "a b c",
			new:     "c' a b",
			moves:   true,
			wantOld: []Status{{NotChanged, 1}, {NotChanged, 2}, {Ignore, 0}},
			wantNew: []Status{{MovedChanged, 2}, {NotChanged, 0}, {NotChanged, 1}},
		},
		{
			name:    "no-partner",
			old:     "x a a",
			new:     "a a y",
			moves:   true,
			wantOld: []Status{{Unset, 0}, {NotChanged, 0}, {NotChanged, 1}},
			wantNew: []Status{{NotChanged, 1}, {NotChanged, 2}, {Unset, 0}},
		},
		{
			name:    "claimed-partner-is-skipped",
			old:     "b a c",
			new:     "a c b b",
			moves:   true,
			wantOld: []Status{{MovedNotChanged, 3}, {NotChanged, 0}, {NotChanged, 1}},
			wantNew: []Status{{NotChanged, 1}, {NotChanged, 2}, {Unset, 0}, {Ignore, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := build(t, tt.old, tt.new, tt.moves)
			if diff := cmp.Diff(tt.wantOld, tab.Old); diff != "" {
				t.Errorf("Old statuses differ [-want, +got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantNew, tab.New); diff != "" {
				t.Errorf("New statuses differ [-want, +got]:\n%s", diff)
			}
			if s := tab.Snakes[0]; s.X != 0 || s.Y != 0 {
				t.Errorf("first snake = %+v, want a snake starting at (0,0)", s)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	tab := build(t, "a b c d", "d' b x c", true)

	wantOldToNew := []int{NoPosition, 1, 3, 0}
	for i, want := range wantOldToNew {
		got, err := tab.OldToNew(i)
		if err != nil {
			t.Fatalf("OldToNew(%d) failed: %v", i, err)
		}
		if got != want {
			t.Errorf("OldToNew(%d) = %d, want %d", i, got, want)
		}
		if got == NoPosition {
			continue
		}
		if back, _ := tab.NewToOld(got); back != i {
			t.Errorf("NewToOld(OldToNew(%d)) = %d, want %d", i, back, i)
		}
	}

	wantNewToOld := []int{3, 1, NoPosition, 2}
	for i, want := range wantNewToOld {
		got, err := tab.NewToOld(i)
		if err != nil {
			t.Fatalf("NewToOld(%d) failed: %v", i, err)
		}
		if got != want {
			t.Errorf("NewToOld(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestPositions_outOfRange(t *testing.T) {
	tab := build(t, "a b", "a", true)
	for _, i := range []int{-1, 2, 100} {
		if _, err := tab.OldToNew(i); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("OldToNew(%d) error = %v, want ErrOutOfRange", i, err)
		}
	}
	for _, i := range []int{-1, 1} {
		if _, err := tab.NewToOld(i); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("NewToOld(%d) error = %v, want ErrOutOfRange", i, err)
		}
	}
}

func TestBuild_doesNotModifySnakes(t *testing.T) {
	snakes := make([]myers.Snake, 1, 4)
	snakes[0] = myers.Snake{X: 1, Y: 1, Size: 1}
	backing := snakes[:cap(snakes)]
	Build(items{split("a b"), split("c b")}, snakes, true)
	if diff := cmp.Diff(myers.Snake{}, backing[1]); diff != "" {
		t.Errorf("Build wrote into the backing array of snakes [-want, +got]:\n%s", diff)
	}
}

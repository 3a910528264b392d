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

package myers

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInconsistent is returned when the search fails to find a path through the edit graph. This
// only happens if the answers of the Comparer changed while the diff was computed.
var ErrInconsistent = errors.New("listdiff: inconsistent item comparisons, was a list modified during the diff?")

// Comparer provides access to the two lists that are compared.
type Comparer interface {
	// OldLen returns the length of the old list.
	OldLen() int
	// NewLen returns the length of the new list.
	NewLen() int
	// SameItem reports whether old[oldIndex] and new[newIndex] represent the same item.
	SameItem(oldIndex, newIndex int) bool
}

// Snake is a run of matching items, old[X:X+Size] is the same as new[Y:Y+Size].
type Snake struct {
	X, Y int // Start in the old and new list.
	Size int // Number of matching items, may be 0.

	// Removal is set if the edge adjacent to the snake is a removal, otherwise it's an insertion.
	Removal bool

	// Reverse is set if the snake was found by the backward search. In that case the adjacent edge
	// follows the snake, otherwise it precedes it.
	Reverse bool
}

// span is a rectangle of the edit graph, old[smin:smax] compared to new[tmin:tmax].
type span struct {
	smin, smax int
	tmin, tmax int
}

type solver struct {
	c Comparer

	// v-arrays for forwards and backwards searches respectively. They store the furthest reaching
	// endpoint of a d-path in diagonal k in v[v0+k]. Only the s-coordinate is stored, t = s - k.
	vf, vb []int
	v0     int

	// Snakes found so far, in discovery order.
	snakes []Snake

	// Unused spans, reused for sub-problems.
	pool []*span
}

// Solve computes the snakes of a shortest edit script that transforms the old list into the new
// one. The snakes are sorted by X and Y.
//
// If the comparer is inconsistent, Solve returns an error wrapping [ErrInconsistent] and no
// snakes.
func Solve(c Comparer) ([]Snake, error) {
	n, m := c.OldLen(), c.NewLen()

	// k is in [-m, n], the offset and the length leave room for both directions plus the borders
	// that are written next to the outermost diagonals.
	koffset := n + m + max(n-m, m-n)
	vlen := 2*koffset + 3
	buf := make([]int, 2*vlen) // allocate space for vf and vb with a single allocation

	sv := solver{
		c:  c,
		vf: buf[:vlen],
		vb: buf[vlen:],
		v0: koffset + 1,
	}

	stack := []*span{{0, n, 0, m}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sv.trim(r)
		if r.smin == r.smax || r.tmin == r.tmax {
			// Only removals or only insertions remain, nothing to search for.
			sv.pool = append(sv.pool, r)
			continue
		}

		snake, err := sv.middleSnake(r)
		if err != nil {
			return nil, err
		}
		if snake.Size > 0 {
			sv.snakes = append(sv.snakes, snake)
		}

		// The edge adjacent to the snake is excluded from both sides.
		left := sv.alloc()
		left.smin, left.tmin = r.smin, r.tmin
		left.smax, left.tmax = snake.X, snake.Y
		if !snake.Reverse {
			if snake.Removal {
				left.smax--
			} else {
				left.tmax--
			}
		}

		// Reuse r for the right side.
		right := r
		right.smin, right.tmin = snake.X+snake.Size, snake.Y+snake.Size
		if snake.Reverse {
			if snake.Removal {
				right.smin++
			} else {
				right.tmin++
			}
		}

		if left.smin > left.smax || left.tmin > left.tmax || right.smin > right.smax || right.tmin > right.tmax {
			return nil, fmt.Errorf("%w: snake %+v leaves the edit graph", ErrInconsistent, snake)
		}
		stack = append(stack, left, right)
	}

	slices.SortFunc(sv.snakes, func(a, b Snake) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return sv.snakes, nil
}

func (sv *solver) alloc() *span {
	if len(sv.pool) == 0 {
		return new(span)
	}
	r := sv.pool[len(sv.pool)-1]
	sv.pool = sv.pool[:len(sv.pool)-1]
	return r
}

// trim strips the common prefix and suffix from r and records them as snakes.
func (sv *solver) trim(r *span) {
	c := sv.c

	n := 0
	for r.smin+n < r.smax && r.tmin+n < r.tmax && c.SameItem(r.smin+n, r.tmin+n) {
		n++
	}
	if n > 0 {
		sv.snakes = append(sv.snakes, Snake{X: r.smin, Y: r.tmin, Size: n})
		r.smin += n
		r.tmin += n
	}

	n = 0
	for r.smax-n > r.smin && r.tmax-n > r.tmin && c.SameItem(r.smax-n-1, r.tmax-n-1) {
		n++
	}
	if n > 0 {
		r.smax -= n
		r.tmax -= n
		sv.snakes = append(sv.snakes, Snake{X: r.smax, Y: r.tmax, Size: n})
	}
}

// middleSnake finds the middle snake of a cheapest path from (smin, tmin) to (smax, tmax).
//
// Important: old[smin:smax] and new[tmin:tmax] must both be non-empty and they must not have a
// common prefix or a common suffix.
func (sv *solver) middleSnake(r *span) (Snake, error) {
	smin, smax, tmin, tmax := r.smin, r.smax, r.tmin, r.tmax
	N, M := smax-smin, tmax-tmin
	c := sv.c
	vf, vb := sv.vf, sv.vb
	v0 := sv.v0

	// Bounds for k. Since t = s - k, k = s - t.
	kmin, kmax := smin-tmax, smax-tmin

	// Diagonals are numbered consistently for both directions, the searches are centered around
	// different midpoints instead.
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// The cost of a cheapest path has the same parity as N-M (Corollary 1). An odd cost can only be
	// detected by the forward search, an even cost only by the backward search.
	odd := (N-M)%2 != 0

	// The 0-paths are trivial, because there is no common prefix or suffix.
	vf[v0+fmid] = smin
	vb[v0+bmid] = smax

	// A cheapest path costs at most N+M, so the searches must have met once each of them covered
	// half of that.
	dmax := (N+M+1)/2 + 1
	for d := 1; d <= dmax; d++ {
		// Forward search.
		//
		// Diagonals outside of the edit grid are never searched. Instead, the outermost diagonals
		// are moved inwards and the v-array is initialized next to them such that the border is
		// never picked.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0

			// Extend the furthest reaching (d-1)-path on k+1 with an insertion or the one on k-1
			// with a removal. Ties prefer removals.
			var s int
			removal := false
			if vf[k0-1] < vf[k0+1] {
				s = vf[k0+1]
			} else {
				s = vf[k0-1] + 1
				removal = true
			}
			t := s - k

			// Follow the diagonal as far as possible.
			s0, t0 := s, t
			for s < smax && t < tmax && c.SameItem(s, t) {
				s++
				t++
			}
			vf[k0] = s

			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return Snake{X: s0, Y: t0, Size: s - s0, Removal: removal}, nil
			}
		}

		// Backward search, mirrors the forward search.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0

			var s int
			removal := false
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1]
			} else {
				s = vb[k0+1] - 1
				removal = true
			}
			t := s - k

			s0 := s
			for s > smin && t > tmin && c.SameItem(s-1, t-1) {
				s--
				t--
			}
			vb[k0] = s

			if !odd && fmin <= k && k <= fmax && s <= vf[k0] {
				return Snake{X: s, Y: t, Size: s0 - s, Removal: removal, Reverse: true}, nil
			}
		}
	}

	return Snake{}, fmt.Errorf("%w: no middle snake between (%d,%d) and (%d,%d)", ErrInconsistent, smin, tmin, smax, tmax)
}

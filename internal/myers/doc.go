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

// Package myers finds the snakes of a shortest edit script between two lists with Myers'
// algorithm.
//
// The lists are never accessed directly. Instead, a [Comparer] answers whether the item at a
// position in the old list is the same item as the one at a position in the new list. This makes
// it possible to diff anything that can be indexed, including lists that live outside of Go
// memory.
//
// # Edit graph
//
// For an old list of length N and a new list of length M, all edit scripts are paths through a
// grid from (0,0) to (N,M). We use s for the position in the old list, t for the position in the
// new list and k = s - t for diagonals. A horizontal edge (s,t) -> (s+1,t) removes old[s], a
// vertical edge (s,t) -> (s,t+1) inserts new[t] and a diagonal edge (s,t) -> (s+1,t+1) exists
// where old[s] and new[t] are the same item. Horizontal and vertical edges cost 1, diagonal edges
// are free. A shortest edit script is a cheapest path.
//
// A snake is a possibly empty run of diagonal edges. Solve returns the non-empty snakes of one
// cheapest path, sorted by position. Everything that is not covered by a snake is either a removal
// or an insertion.
//
// # Divide and conquer
//
// Myers showed that a cheapest path with cost D can be found in O((N+M)D) time by searching
// simultaneously from (0,0) forwards and from (N,M) backwards. The forward search stores the
// furthest reaching endpoint of a d-path for every diagonal k, the backward search does the same
// for paths ending in (N,M). As soon as the two searches overlap on a diagonal, the last snake of
// the search that detected the overlap is part of a cheapest path, the middle snake. The
// rectangles before and after the middle snake are independent sub-problems.
//
// The sub-problems are kept on an explicit stack instead of recursing, the depth of the recursion
// is otherwise bounded only by the number of differences. The ranges on that stack are pooled and
// reused for the duration of a single Solve call.
//
// Every middle snake records which search found it (Reverse) and whether the single edge adjacent
// to it is a removal or an insertion (Removal). The forward search enters a snake through that
// edge, the backward search leaves it through that edge. The edge belongs to neither sub-problem.
//
// Before searching, common prefixes and suffixes of a range are emitted as snakes directly. That
// takes care of the d=0 case and guarantees that the searches start from a mismatch on both ends.
//
// # References
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package myers

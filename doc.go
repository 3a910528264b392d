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

// Package listdiff computes the difference between two ordered lists and replays it as a sequence
// of insert, remove, move and change operations.
//
// The main function is [Compute], which finds a shortest edit script using Myers' algorithm and
// classifies every position of both lists. By default, a second pass pairs up removals and
// insertions of the same item and reports them as moves. Use [DetectMoves] to disable it.
//
// A [Result] answers position queries ([Result.OldToNew], [Result.NewToOld]) and dispatches the
// operations to a [Sink] ([Result.Dispatch]). The operations are ordered so that applying them one
// by one to the old list produces the new list; [Apply] does exactly that.
//
// Items are compared through a [Callback]. [Items] and [Comparable] provide callbacks for slices.
// Two notions of equality are involved: SameItem decides whether two elements represent the same
// item (e.g. have the same ID), SameContent decides whether such a pair changed.
//
// Performance: O(ND) time and O(N) space where N is the total length of both lists and D is the
// number of edits. Move detection adds O(DN) comparisons in the worst case.
package listdiff

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

// Op describes an operation of a [Sink].
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Insert Op = iota // Count items are inserted at Pos.
	Remove           // Count items are removed at Pos.
	Move             // The item at Pos is moved to To.
	Change           // The contents of Count items at Pos changed.
)

// Operation is a single call of a [Sink].
type Operation struct {
	Op      Op
	Pos     int // Position of the operation, the source position for Move.
	Count   int // Number of items, always 1 for Move.
	To      int // Target position for Move, unused otherwise.
	Payload any // Payload of a Change.
}

func (o Operation) String() string {
	switch o.Op {
	case Insert, Remove:
		return fmt.Sprintf("%v(%d, %d)", o.Op, o.Pos, o.Count)
	case Move:
		return fmt.Sprintf("%v(%d, %d)", o.Op, o.Pos, o.To)
	case Change:
		if o.Payload == nil {
			return fmt.Sprintf("%v(%d, %d)", o.Op, o.Pos, o.Count)
		}
		return fmt.Sprintf("%v(%d, %d, %v)", o.Op, o.Pos, o.Count, o.Payload)
	default:
		return fmt.Sprintf("%v", o.Op)
	}
}

// Recorder is a [Sink] that records all operations.
type Recorder struct {
	Ops []Operation
}

// Inserted records an Insert operation.
func (r *Recorder) Inserted(pos, count int) {
	r.Ops = append(r.Ops, Operation{Op: Insert, Pos: pos, Count: count})
}

// Removed records a Remove operation.
func (r *Recorder) Removed(pos, count int) {
	r.Ops = append(r.Ops, Operation{Op: Remove, Pos: pos, Count: count})
}

// Moved records a Move operation.
func (r *Recorder) Moved(from, to int) {
	r.Ops = append(r.Ops, Operation{Op: Move, Pos: from, Count: 1, To: to})
}

// Changed records a Change operation.
func (r *Recorder) Changed(pos, count int, payload any) {
	r.Ops = append(r.Ops, Operation{Op: Change, Pos: pos, Count: count, Payload: payload})
}

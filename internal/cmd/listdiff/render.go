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

package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/listdiff"
)

// useColors decides whether output to w is colored.
func useColors(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}

// contentDiff is the change payload: a character diff of the contents of both items.
func contentDiff(a, b item) any {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a.content, b.content, false)
	return dmp.DiffCleanupSemantic(diffs)
}

type printer struct {
	w      io.Writer
	styles map[listdiff.Op]*color.Color
	del    *color.Color
	ins    *color.Color
}

func newPrinter(w io.Writer, colors bool) *printer {
	p := &printer{
		w: w,
		styles: map[listdiff.Op]*color.Color{
			listdiff.Insert: color.New(color.FgGreen),
			listdiff.Remove: color.New(color.FgRed),
			listdiff.Move:   color.New(color.FgYellow),
			listdiff.Change: color.New(color.FgCyan),
		},
		del: color.New(color.FgRed, color.CrossedOut),
		ins: color.New(color.FgGreen, color.Underline),
	}
	for _, c := range []*color.Color{p.styles[listdiff.Insert], p.styles[listdiff.Remove], p.styles[listdiff.Move], p.styles[listdiff.Change], p.del, p.ins} {
		if colors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// entry is an item of the list while the operations are applied.
type entry struct {
	label    string
	inserted bool
}

// print writes one line per operation with the ids of the affected items. Changes with a payload
// are followed by an indented line with the rendered payload.
func (p *printer) print(ops []listdiff.Operation, old, new []item) error {
	affected, err := track(ops, old, new)
	if err != nil {
		return err
	}
	for i, op := range ops {
		labels := make([]string, len(affected[i]))
		for j, e := range affected[i] {
			labels[j] = e.label
		}
		payload := op.Payload
		op.Payload = nil
		if _, err := fmt.Fprintf(p.w, "%s %s\n", p.styles[op.Op].Sprint(op), strings.Join(labels, ", ")); err != nil {
			return err
		}
		if diffs, ok := payload.([]diffmatchpatch.Diff); ok {
			if _, err := fmt.Fprintf(p.w, "  %s\n", p.render(diffs)); err != nil {
				return err
			}
		}
	}
	return nil
}

// track applies ops to old and returns the entries affected by every operation. Inserted entries
// are labeled with the item of new they end up as.
func track(ops []listdiff.Operation, old, new []item) ([][]*entry, error) {
	cur := make([]*entry, len(old))
	for i, it := range old {
		cur[i] = &entry{label: it.id}
	}
	affected := make([][]*entry, len(ops))
	for i, op := range ops {
		if !inRange(op, len(cur)) {
			return nil, fmt.Errorf("%w: %v on a list of length %d", listdiff.ErrInconsistent, op, len(cur))
		}
		switch op.Op {
		case listdiff.Insert:
			es := make([]*entry, op.Count)
			for j := range es {
				es[j] = &entry{inserted: true}
			}
			cur = slices.Insert(cur, op.Pos, es...)
			affected[i] = es
		case listdiff.Remove:
			affected[i] = slices.Clone(cur[op.Pos : op.Pos+op.Count])
			cur = slices.Delete(cur, op.Pos, op.Pos+op.Count)
		case listdiff.Move:
			e := cur[op.Pos]
			cur = slices.Delete(cur, op.Pos, op.Pos+1)
			cur = slices.Insert(cur, op.To, e)
			affected[i] = []*entry{e}
		case listdiff.Change:
			affected[i] = slices.Clone(cur[op.Pos : op.Pos+op.Count])
		}
	}
	if len(cur) != len(new) {
		return nil, fmt.Errorf("%w: %d items after applying the operations, want %d", listdiff.ErrInconsistent, len(cur), len(new))
	}
	for j, e := range cur {
		if e.inserted {
			e.label = new[j].id
		}
	}
	return affected, nil
}

// inRange reports whether op can be applied to a list of length n.
func inRange(op listdiff.Operation, n int) bool {
	if op.Pos < 0 || op.Count < 0 {
		return false
	}
	switch op.Op {
	case listdiff.Insert:
		return op.Pos <= n
	case listdiff.Remove, listdiff.Change:
		return op.Pos+op.Count <= n
	case listdiff.Move:
		return op.Pos < n && op.To >= 0 && op.To < n
	default:
		return false
	}
}

func (p *printer) render(diffs []diffmatchpatch.Diff) string {
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString(p.del.Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(p.ins.Sprint("{+" + d.Text + "+}"))
		}
	}
	return sb.String()
}

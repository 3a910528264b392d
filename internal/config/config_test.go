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

package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/listdiff"
	"znkr.io/listdiff/internal/config"
)

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "no-moves",
			opts: []config.Option{
				listdiff.DetectMoves(false),
			},
			want: config.Config{
				DetectMoves: false,
			},
		},
		{
			name: "override",
			opts: []config.Option{
				listdiff.DetectMoves(false),
				listdiff.DetectMoves(true),
			},
			want: config.Config{
				DetectMoves: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, config.DetectMoves)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptions_notAllowed(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("FromOptions(...) with a disallowed option did not panic")
		}
	}()
	config.FromOptions([]config.Option{listdiff.DetectMoves(false)}, 0)
}

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
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

type format int

const (
	formatLines format = iota
	formatYAML
	formatJSON
)

func (f format) String() string {
	switch f {
	case formatLines:
		return "lines"
	case formatYAML:
		return "yaml"
	case formatJSON:
		return "json"
	default:
		panic("never reached")
	}
}

// inputFormat returns the format named by flag or, if flag is empty, the format that matches the
// extension of path.
func inputFormat(flag, path string) (format, error) {
	switch flag {
	case "lines":
		return formatLines, nil
	case "yaml":
		return formatYAML, nil
	case "json":
		return formatJSON, nil
	case "":
	default:
		return 0, fmt.Errorf("unknown format %q", flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".json":
		return formatJSON, nil
	default:
		return formatLines, nil
	}
}

// item is a list element. Two items are the same if they have the same id and they are equal if
// they have the same content.
type item struct {
	id      string
	content string
}

func load(path string, f format, key string) ([]item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if f == formatLines {
		return parseLines(string(data)), nil
	}
	// JSON is a subset of YAML.
	return parseRecords(data, key)
}

func parseLines(s string) []item {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	items := make([]item, len(lines))
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		items[i] = item{id: line, content: line}
	}
	return items
}

func parseRecords(data []byte, key string) ([]item, error) {
	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	items := make([]item, len(records))
	for i, rec := range records {
		id, ok := rec[key]
		if !ok {
			return nil, fmt.Errorf("record %d has no field %q", i, key)
		}
		content, err := yaml.MarshalWithOptions(canonical(rec), yaml.Flow(true))
		if err != nil {
			return nil, fmt.Errorf("encoding record %d: %v", i, err)
		}
		items[i] = item{
			id:      fmt.Sprint(id),
			content: strings.TrimSpace(string(content)),
		}
	}
	return items, nil
}

// canonical returns v with all mappings converted to mapping slices sorted by key, so that equal
// records always have the same encoding.
func canonical(v any) any {
	switch v := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		ms := make(yaml.MapSlice, len(keys))
		for i, k := range keys {
			ms[i] = yaml.MapItem{Key: k, Value: canonical(v[k])}
		}
		return ms
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = canonical(e)
		}
		return out
	default:
		return v
	}
}

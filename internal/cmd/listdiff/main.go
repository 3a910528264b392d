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

// listdiff prints the operations that transform the list in one file into the list in another.
//
// Lists are read line by line or, for YAML and JSON files, as a sequence of records that are
// identified by a key field.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"znkr.io/listdiff"
)

type config struct {
	format   string
	key      string
	moves    bool
	payload  bool
	validate bool
	color    string
	verbose  bool
}

func main() {
	var cfg config
	rootCmd := &cobra.Command{
		Use:          "listdiff [flags] OLD NEW",
		Short:        "Prints the operations that transform the list in OLD into the list in NEW",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd.ErrOrStderr(), cfg.verbose)
			return run(cmd.OutOrStdout(), log, &cfg, args[0], args[1])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfg.format, "format", "", "input format: lines, yaml or json (default: by file extension)")
	flags.StringVar(&cfg.key, "key", "id", "field that identifies a record in yaml and json input")
	flags.BoolVar(&cfg.moves, "moves", true, "if moved items should be detected")
	flags.BoolVar(&cfg.payload, "payload", false, "if changes should show how a record changed")
	flags.BoolVar(&cfg.validate, "validate", false, "if the operations should be applied and checked against NEW")
	flags.StringVar(&cfg.color, "color", "auto", "when to use colors: auto, always or never")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "if debug logs should be written to stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

var errMismatch = errors.New("applying the operations doesn't reproduce the new list")

func run(w io.Writer, log zerolog.Logger, cfg *config, oldPath, newPath string) error {
	f, err := inputFormat(cfg.format, oldPath)
	if err != nil {
		return err
	}
	colors, err := useColors(cfg.color, w)
	if err != nil {
		return err
	}

	old, err := load(oldPath, f, cfg.key)
	if err != nil {
		return fmt.Errorf("loading %s: %v", oldPath, err)
	}
	new, err := load(newPath, f, cfg.key)
	if err != nil {
		return fmt.Errorf("loading %s: %v", newPath, err)
	}
	log.Debug().
		Str("format", f.String()).
		Int("old", len(old)).
		Int("new", len(new)).
		Msg("lists loaded")

	items := &listdiff.Items[item]{
		Old:   old,
		New:   new,
		Same:  func(a, b item) bool { return a.id == b.id },
		Equal: func(a, b item) bool { return a.content == b.content },
	}
	if cfg.payload {
		items.Payload = contentDiff
	}

	start := time.Now()
	r, err := listdiff.Compute(items, listdiff.DetectMoves(cfg.moves))
	if err != nil {
		return fmt.Errorf("comparing %s and %s: %w", oldPath, newPath, err)
	}
	ops, err := r.Operations()
	if err != nil {
		return fmt.Errorf("dispatching operations: %w", err)
	}
	log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("operations", len(ops)).
		Bool("moves", cfg.moves).
		Msg("diff computed")

	if cfg.validate {
		got, err := listdiff.Apply(r, old, new)
		if err != nil {
			return fmt.Errorf("validating operations: %w", err)
		}
		for i := range got {
			if got[i] != new[i] {
				return fmt.Errorf("%w: item %d is %q, want %q", errMismatch, i, got[i].content, new[i].content)
			}
		}
		log.Debug().Msg("operations validated")
	}

	p := newPrinter(w, colors)
	return p.print(ops, old, new)
}

// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"go.decorate-lang.org/decorate"
)

type cmdGenerate struct {
	stdio
	config  configFlags
	outPath string
	verbose bool
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate [flags] FILE...",
		summary: "Write the decorated form of each input file",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.outPath, "output", "o", "", "output path for a single input, or - for stdout")
	flags.StringVar(&cmd.config.configPath, "config", "", "config file (default: "+decorate.ConfigFileName+" above the first input)")
	flags.StringVar(&cmd.config.tag, "tag", "", "build tag that selects the undecorated input")
	flags.StringVar(&cmd.config.suffix, "suffix", "", "file name suffix of generated files")
	flags.StringVar(&cmd.config.futurePackage, "future-package", "", "import path of the future package")
	flags.StringVar(&cmd.config.receiver, "receiver-keyword", "", "name for the method receiver in directives")
	flags.BoolVarP(&cmd.verbose, "verbose", "v", false, "log skipped files")
}

func (cmd *cmdGenerate) run(ctx context.Context, argv []string) int {
	logger := newLogger(cmd.stderr, cmd.verbose)
	if len(argv) == 0 {
		fmt.Fprintln(cmd.stderr, "generate: no input files")
		return 1
	}
	if cmd.outPath != "" && len(argv) > 1 {
		fmt.Fprintln(cmd.stderr, "generate: -o requires exactly one input file")
		return 1
	}

	cfg, err := cmd.config.load(filepath.Dir(argv[0]))
	if err != nil {
		fmt.Fprintln(cmd.stderr, err)
		return 1
	}
	logger.DebugContext(ctx, "loaded config",
		"build_tag", cfg.BuildTag,
		"output_suffix", cfg.OutputSuffix,
		"future_package", cfg.FuturePackage,
	)

	status := 0
	for _, srcPath := range argv {
		if err := cmd.generate(ctx, logger, cfg, srcPath); err != nil {
			fmt.Fprintln(cmd.stderr, err)
			status = 1
		}
	}
	return status
}

func (cmd *cmdGenerate) generate(
	ctx context.Context,
	logger *slog.Logger,
	cfg *decorate.Config,
	srcPath string,
) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	name := displayPath(srcPath)
	if decorate.IsGenerated(src) {
		logger.DebugContext(ctx, "skipping generated file", "file", name)
		return nil
	}

	out, err := decorate.Generate(name, src, cfg.Options()...)
	if errors.Is(err, decorate.ErrNothingToGenerate) {
		logger.DebugContext(ctx, "no decorated functions", "file", name)
		return nil
	}
	var diagErr *decorate.DiagnosticsError
	if errors.As(err, &diagErr) {
		for _, diag := range diagErr.Diagnostics {
			fmt.Fprintln(cmd.stderr, diag)
		}
		return fmt.Errorf("%s: not generated", name)
	}
	if err != nil {
		return err
	}
	for _, warn := range out.Warnings {
		fmt.Fprintln(cmd.stderr, warn)
	}

	outPath := cmd.outPath
	if outPath == "" {
		outPath = decorate.OutputPath(srcPath, cfg.OutputSuffix)
	}
	if outPath == "-" {
		_, err := cmd.stdout.Write(out.Source)
		return err
	}
	if err := writeFile(outPath, out.Source); err != nil {
		return err
	}
	logger.InfoContext(ctx, "generated",
		"input", name,
		"output", displayPath(outPath),
		"functions", out.Functions,
	)
	return nil
}

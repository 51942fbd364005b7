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
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"

	"go.decorate-lang.org/decorate"
)

type cmdCheck struct {
	stdio
	config configFlags
	format string
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check [flags] FILE...",
		summary: "Report problems with decorated functions without writing files",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.format, "format", "f", "text", "output format (text or json)")
	flags.StringVar(&cmd.config.configPath, "config", "", "config file (default: "+decorate.ConfigFileName+" above the first input)")
	flags.StringVar(&cmd.config.receiver, "receiver-keyword", "", "name for the method receiver in directives")
}

func (cmd *cmdCheck) run(ctx context.Context, argv []string) int {
	switch cmd.format {
	case "text", "json":
	default:
		fmt.Fprintf(cmd.stderr, "Unsupported output format %q\n", cmd.format)
		return 1
	}
	if len(argv) == 0 {
		fmt.Fprintln(cmd.stderr, "check: no input files")
		return 1
	}

	cfg, err := cmd.config.load(filepath.Dir(argv[0]))
	if err != nil {
		fmt.Fprintln(cmd.stderr, err)
		return 1
	}

	status := 0
	diags := []decorate.Diagnostic{}
	for _, srcPath := range argv {
		src, err := os.ReadFile(srcPath)
		if err != nil {
			fmt.Fprintln(cmd.stderr, err)
			status = 1
			continue
		}
		fileDiags, err := decorate.Check(displayPath(srcPath), src, cfg.Options()...)
		if err != nil {
			fmt.Fprintln(cmd.stderr, err)
			status = 1
			continue
		}
		for _, diag := range fileDiags {
			if diag.Severity == decorate.SeverityError {
				status = 1
			}
		}
		diags = append(diags, fileDiags...)
	}

	if cmd.format == "json" {
		encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(diags); err != nil {
			fmt.Fprintln(cmd.stderr, err)
			return 1
		}
		return status
	}
	for _, diag := range diags {
		fmt.Fprintln(cmd.stdout, diag)
	}
	return status
}

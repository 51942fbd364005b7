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
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.decorate-lang.org/decorate"
)

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// configFlags are the settings every command can override from the
// config file.
type configFlags struct {
	configPath    string
	tag           string
	suffix        string
	futurePackage string
	receiver      string
}

// load reads the config file named by --config, or the one found above
// dir, and applies the flag overrides.
func (f *configFlags) load(dir string) (*decorate.Config, error) {
	path := f.configPath
	if path == "" {
		found, err := decorate.FindConfig(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := decorate.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = decorate.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	for _, override := range []struct {
		value  string
		target *string
	}{
		{f.tag, &cfg.BuildTag},
		{f.suffix, &cfg.OutputSuffix},
		{f.futurePackage, &cfg.FuturePackage},
		{f.receiver, &cfg.ReceiverKeyword},
	} {
		if override.value != "" {
			*override.target = override.value
		}
	}
	return cfg, cfg.Validate()
}

// displayPath shortens path relative to the working directory when it is
// inside it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// writeFile replaces path through a temporary file in the same directory,
// so readers never see a partial file.
func writeFile(path string, data []byte) error {
	fp, err := os.CreateTemp(filepath.Dir(path), ".decorate-*")
	if err != nil {
		return err
	}
	tmpPath := fp.Name()
	_, writeErr := fp.Write(data)
	closeErr := fp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Chmod(tmpPath, 0o644)
	}
	if writeErr == nil {
		writeErr = os.Rename(tmpPath, path)
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	return nil
}

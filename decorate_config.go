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

package decorate

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"go.decorate-lang.org/decorate/compiler"
	"go.decorate-lang.org/decorate/syntax"
)

const ConfigFileName = "decorate.yaml"

type Config struct {
	BuildTag        string `yaml:"build_tag"`
	OutputSuffix    string `yaml:"output_suffix"`
	FuturePackage   string `yaml:"future_package"`
	ReceiverKeyword string `yaml:"receiver_keyword"`
}

func DefaultConfig() *Config {
	return &Config{
		BuildTag:        DefaultBuildTag,
		OutputSuffix:    DefaultOutputSuffix,
		FuturePackage:   compiler.DefaultFuturePackage,
		ReceiverKeyword: syntax.DefaultReceiverKeyword,
	}
}

// LoadConfig reads a YAML config file. Keys absent from the file keep
// their default values; unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if !isBuildTag(cfg.BuildTag) {
		return fmt.Errorf("build_tag: invalid build tag %q", cfg.BuildTag)
	}
	if !strings.HasSuffix(cfg.OutputSuffix, ".go") || cfg.OutputSuffix == ".go" {
		return fmt.Errorf("output_suffix: %q must end in .go and name a distinct file", cfg.OutputSuffix)
	}
	if strings.ContainsRune(cfg.OutputSuffix, filepath.Separator) {
		return fmt.Errorf("output_suffix: %q must not contain a path separator", cfg.OutputSuffix)
	}
	if cfg.FuturePackage == "" {
		return errors.New("future_package: must not be empty")
	}
	if !token.IsIdentifier(cfg.ReceiverKeyword) {
		return fmt.Errorf("receiver_keyword: %q is not an identifier", cfg.ReceiverKeyword)
	}
	return nil
}

func isBuildTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

func (cfg *Config) Options() []Option {
	return []Option{
		WithBuildTag(cfg.BuildTag),
		WithFuturePackage(cfg.FuturePackage),
		WithReceiverKeyword(cfg.ReceiverKeyword),
	}
}

// FindConfig looks for ConfigFileName in dir and its parents, stopping at
// the directory containing go.mod. It returns "" if there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

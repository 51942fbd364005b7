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

// Package decorate turns Go source files with decorated functions into
// generated files where each decorated function's body is wrapped by its
// decorators.
//
// A decorated function carries a directive in its doc comment:
//
//	//go:build decorate
//
//	//decorate:with decorators.LogErrors("load"), decorators.Retry(3)
//	func Load(id string) (Item, error) {
//		return fetch(id)
//	}
//
// Generate rewrites such a file into its decorated form, guarded by the
// inverted build constraint so that exactly one of the two files is built.
package decorate

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/printer"
	"go/token"
	"path/filepath"
	"strings"

	"go.decorate-lang.org/decorate/compiler"
	"go.decorate-lang.org/decorate/syntax"
)

const (
	DefaultBuildTag     = "decorate"
	DefaultOutputSuffix = "_decorated.go"
)

var ErrNothingToGenerate = errors.New("no decorated functions")

type Option interface {
	apply(*Options)
}

type option func(*Options)

func (f option) apply(opts *Options) { f(opts) }

type Options struct {
	buildTag      string
	futurePackage string
	receiver      string
}

// WithBuildTag sets the build tag that selects the undecorated input over
// the generated file.
func WithBuildTag(tag string) Option {
	return option(func(opts *Options) {
		opts.buildTag = tag
	})
}

func WithFuturePackage(importPath string) Option {
	return option(func(opts *Options) {
		opts.futurePackage = importPath
	})
}

func WithReceiverKeyword(keyword string) Option {
	return option(func(opts *Options) {
		opts.receiver = keyword
	})
}

func NewOptions(opts ...Option) *Options {
	options := &Options{
		buildTag:      DefaultBuildTag,
		futurePackage: compiler.DefaultFuturePackage,
		receiver:      syntax.DefaultReceiverKeyword,
	}
	for _, opt := range opts {
		opt.apply(options)
	}
	return options
}

func (opts *Options) compileOptions() *compiler.CompileOptions {
	return compiler.NewCompileOptions(
		compiler.WithFuturePackage(opts.futurePackage),
		compiler.WithReceiverKeyword(opts.receiver),
	)
}

// Output is a generated file.
type Output struct {
	Source []byte
	// Functions counts the decorated functions of the input.
	Functions int
	Warnings  []Diagnostic
}

func Generate(filename string, src []byte, opts ...Option) (*Output, error) {
	return NewOptions(opts...).Generate(filename, src)
}

// Generate rewrites the decorated functions of src. It returns a
// *DiagnosticsError if any function cannot be decorated, and
// ErrNothingToGenerate if src has no decorated functions.
func (opts *Options) Generate(filename string, src []byte) (*Output, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	result := opts.compileOptions().CompileFile(fset, file)
	diags := fileDiagnostics(fset, result)
	if len(result.Errors) > 0 {
		return nil, &DiagnosticsError{Diagnostics: diags}
	}
	if result.Functions == 0 {
		return nil, ErrNothingToGenerate
	}
	if err := invertConstraint(fset, file, opts.buildTag); err != nil {
		return nil, err
	}
	result.JoinRemovedLines(fset)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by decorate from %s. DO NOT EDIT.\n\n", filepath.Base(filename))
	cfg := printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8}
	if err := cfg.Fprint(&buf, fset, file); err != nil {
		return nil, err
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated %s: %w", filename, err)
	}
	return &Output{
		Source:    formatted,
		Functions: result.Functions,
		Warnings:  diags,
	}, nil
}

func Check(filename string, src []byte, opts ...Option) ([]Diagnostic, error) {
	return NewOptions(opts...).Check(filename, src)
}

// Check reports the diagnostics of every decorated function in src without
// generating output. The returned error is non-nil only if src is not a
// valid Go file.
func (opts *Options) Check(filename string, src []byte) ([]Diagnostic, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	result := opts.compileOptions().CompileFile(fset, file)
	return fileDiagnostics(fset, result), nil
}

// OutputPath names the generated file for input: "service.go" becomes
// "service_decorated.go" with the default suffix.
func OutputPath(input, suffix string) string {
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}
	return strings.TrimSuffix(input, ".go") + suffix
}

// IsGenerated reports whether src starts with a generated-code header.
func IsGenerated(src []byte) bool {
	file, err := parser.ParseFile(token.NewFileSet(), "", src, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil {
		return false
	}
	return ast.IsGenerated(file)
}

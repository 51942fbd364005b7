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

package compiler

import (
	"go/ast"
	"go/token"
	"path"
	"slices"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"

	"go.decorate-lang.org/decorate/syntax"
)

const DefaultFuturePackage = "go.decorate-lang.org/decorate/future"

type CompileOption interface {
	apply(*CompileOptions)
}

type compileOption func(*CompileOptions)

func (f compileOption) apply(opts *CompileOptions) { f(opts) }

type CompileOptions struct {
	futurePackage string
	receiver      string
}

// WithFuturePackage sets the import path of the package providing the
// Future type used by async functions.
func WithFuturePackage(importPath string) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.futurePackage = importPath
	})
}

// WithReceiverKeyword sets the name that self paths and config expressions
// use for the method receiver.
func WithReceiverKeyword(keyword string) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.receiver = keyword
	})
}

func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	compileOptions := &CompileOptions{
		futurePackage: DefaultFuturePackage,
		receiver:      syntax.DefaultReceiverKeyword,
	}
	for _, opt := range opts {
		opt.apply(compileOptions)
	}
	return compileOptions
}

func (opts *CompileOptions) receiverKeyword() string {
	return opts.receiver
}

func (opts *CompileOptions) FuturePackage() string {
	return opts.futurePackage
}

type CompileResult struct {
	decl       *ast.FuncDecl
	usesFuture bool

	Errors   []*Error
	Warnings []*Warning
}

// Decl returns the rewritten declaration, or nil if compilation failed.
func (r *CompileResult) Decl() *ast.FuncDecl {
	return r.decl
}

// UsesFuture reports whether the rewritten declaration refers to the
// future package.
func (r *CompileResult) UsesFuture() bool {
	return r.usesFuture
}

func CompileFunction(fn *Function, opts ...CompileOption) CompileResult {
	return NewCompileOptions(opts...).CompileFunction(fn, "")
}

// CompileFunction parses the function's directive, validates the function,
// and composes its new body. futureName is the local name of the future
// package; it defaults to the last element of the import path. Compilation
// stops at the first error.
func (opts *CompileOptions) CompileFunction(fn *Function, futureName string) CompileResult {
	if futureName == "" {
		futureName = path.Base(opts.futurePackage)
	}

	list, err := syntax.Parse(
		fn.directive.Text(),
		syntax.WithReceiverKeyword(opts.receiver),
	)
	if err != nil {
		return CompileResult{Errors: []*Error{errSyntax(err, fn.directive)}}
	}
	if err := Validate(fn); err != nil {
		return CompileResult{Errors: []*Error{err}}
	}

	c := newComposer(fn, list, opts, futureName)
	body, err := c.compose()
	if err != nil {
		return CompileResult{
			Errors:   []*Error{err.(*Error)},
			Warnings: c.warnings,
		}
	}

	return CompileResult{
		decl:       emit(fn, body),
		usesFuture: fn.Async(),
		Warnings:   c.warnings,
	}
}

// emit assembles the rewritten declaration: the original doc comment minus
// its directives, the original receiver, name, type parameters, and
// signature, and the composed body.
func emit(fn *Function, body *ast.BlockStmt) *ast.FuncDecl {
	decl := fn.decl
	return &ast.FuncDecl{
		Doc:  stripDirectives(decl.Doc, fn.directive),
		Recv: decl.Recv,
		Name: decl.Name,
		Type: decl.Type,
		Body: body,
	}
}

type FileResult struct {
	// Functions counts the decorated functions found in the file.
	Functions int
	// Rewritten counts the functions replaced by their decorated form.
	Rewritten int

	Errors   []*Error
	Warnings []*Warning

	// Removed lists the directive comments dropped from rewritten functions.
	Removed []*ast.Comment
}

// JoinRemovedLines joins every line of a removed directive comment onto the
// line before it, so that a doc comment kept above a rewritten function
// prints directly above it. Positions inside the removed lines resolve to
// the wrong line afterwards; resolve diagnostics first.
func (r *FileResult) JoinRemovedLines(fset *token.FileSet) {
	if len(r.Removed) == 0 {
		return
	}
	file := fset.File(r.Removed[0].Pos())
	lines := make([]int, 0, len(r.Removed))
	for _, c := range r.Removed {
		lines = append(lines, file.Line(c.Pos()))
	}
	slices.Sort(lines)
	lines = slices.Compact(lines)
	for _, line := range slices.Backward(lines) {
		if line > 1 {
			file.MergeLine(line - 1)
		}
	}
}

func CompileFile(fset *token.FileSet, file *ast.File, opts ...CompileOption) FileResult {
	return NewCompileOptions(opts...).CompileFile(fset, file)
}

// CompileFile rewrites every decorated function of file in place. A
// function that fails to compile is left unchanged; the others are still
// rewritten. Consumed directive comments are removed from the file, and
// the future package is imported when an async function was rewritten.
func (opts *CompileOptions) CompileFile(fset *token.FileSet, file *ast.File) FileResult {
	var result FileResult
	futureName, imported := importName(file, opts.futurePackage)
	usesFuture := false

	for ii, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		fn, err := NewFunction(file.Name.Name, funcDecl)
		if err != nil {
			result.Functions++
			result.Errors = append(result.Errors, err)
			continue
		}
		if fn == nil {
			continue
		}
		result.Functions++

		compiled := opts.CompileFunction(fn, futureName)
		result.Warnings = append(result.Warnings, compiled.Warnings...)
		if len(compiled.Errors) > 0 {
			result.Errors = append(result.Errors, compiled.Errors...)
			continue
		}
		file.Decls[ii] = compiled.decl
		replaceComments(file, funcDecl.Doc, compiled.decl.Doc)
		result.Removed = append(result.Removed, removedComments(funcDecl.Doc, compiled.decl.Doc)...)
		usesFuture = usesFuture || compiled.usesFuture
		result.Rewritten++
	}

	if usesFuture && !imported {
		astutil.AddImport(fset, file, opts.futurePackage)
	}
	return result
}

// importName returns the local name under which file imports importPath,
// and whether it is imported at all.
func importName(file *ast.File, importPath string) (string, bool) {
	base := path.Base(importPath)
	for _, spec := range file.Imports {
		specPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil || specPath != importPath {
			continue
		}
		if spec.Name == nil {
			return base, true
		}
		switch spec.Name.Name {
		case "_", ".":
			continue
		default:
			return spec.Name.Name, true
		}
	}
	return base, false
}

// removedComments returns the comments of old missing from kept.
func removedComments(old, kept *ast.CommentGroup) []*ast.Comment {
	if old == nil {
		return nil
	}
	var removed []*ast.Comment
	for _, c := range old.List {
		if kept == nil || !slices.Contains(kept.List, c) {
			removed = append(removed, c)
		}
	}
	return removed
}

func replaceComments(file *ast.File, old, replacement *ast.CommentGroup) {
	if old == nil {
		return
	}
	for ii, group := range file.Comments {
		if group != old {
			continue
		}
		if replacement == nil {
			file.Comments = append(file.Comments[:ii], file.Comments[ii+1:]...)
		} else {
			file.Comments[ii] = replacement
		}
		return
	}
}

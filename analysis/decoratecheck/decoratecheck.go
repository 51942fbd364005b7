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

// Package decoratecheck defines an Analyzer that reports decorated
// functions which cannot be generated.
//
// It runs the same directive parser and validator as the generator, so
// problems surface in editors and in go vet instead of at generation time.
// Because inputs are usually excluded from normal builds by the decorate
// build tag, run it with that tag set:
//
//	go vet -vettool=$(which decorate-vet) -tags decorate ./...
package decoratecheck

import (
	"fmt"
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"go.decorate-lang.org/decorate/compiler"
	"go.decorate-lang.org/decorate/syntax"
)

var Analyzer = &analysis.Analyzer{
	Name:             "decoratecheck",
	Doc:              "reports //decorate: directives that cannot be generated",
	URL:              "https://pkg.go.dev/go.decorate-lang.org/decorate/analysis/decoratecheck",
	Run:              run,
	RunDespiteErrors: true,
	Requires: []*analysis.Analyzer{
		inspect.Analyzer,
	},
}

var receiverKeyword string

func init() {
	Analyzer.Flags.StringVar(
		&receiverKeyword,
		"receiver",
		syntax.DefaultReceiverKeyword,
		"name for the method receiver in directives",
	)
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	opts := compiler.NewCompileOptions(compiler.WithReceiverKeyword(receiverKeyword))

	generated := make(map[*ast.File]bool)
	for _, file := range pass.Files {
		generated[file] = ast.IsGenerated(file)
	}

	nodeFilter := []ast.Node{(*ast.File)(nil), (*ast.FuncDecl)(nil)}
	var skip bool
	insp.Preorder(nodeFilter, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.File:
			skip = generated[n]
			return
		case *ast.FuncDecl:
			if skip {
				return
			}
			fn, err := compiler.NewFunction(pass.Pkg.Name(), n)
			if err != nil {
				reportError(pass, err)
				return
			}
			if fn == nil {
				return
			}
			result := opts.CompileFunction(fn, "")
			for _, err := range result.Errors {
				reportError(pass, err)
			}
			for _, warn := range result.Warnings {
				pass.Report(analysis.Diagnostic{
					Pos:      warn.Pos(),
					End:      warn.End(),
					Category: fmt.Sprintf("W%d", warn.Code()),
					Message:  warn.String(),
				})
			}
		}
	})
	return nil, nil
}

func reportError(pass *analysis.Pass, err *compiler.Error) {
	message := err.Error()
	if hint := err.Hint(); hint != "" {
		message = fmt.Sprintf("%s (%s)", message, hint)
	}
	pass.Report(analysis.Diagnostic{
		Pos:      err.Pos(),
		End:      err.End(),
		Category: fmt.Sprintf("E%d", err.Code()),
		Message:  message,
	})
}

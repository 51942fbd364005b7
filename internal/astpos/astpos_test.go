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

package astpos_test

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"testing"

	"go.decorate-lang.org/decorate/internal/astpos"
	"go.decorate-lang.org/decorate/internal/testutil"
)

func validPositions(node ast.Node) []token.Pos {
	var out []token.Pos
	ast.Inspect(node, func(n ast.Node) bool {
		if n != nil && n.Pos().IsValid() {
			out = append(out, n.Pos())
		}
		return true
	})
	return out
}

func TestCloneIsDeep(t *testing.T) {
	expr, err := parser.ParseExpr("retry.With(3, time.Second)")
	testutil.AssertNoError(t, err)

	clone := astpos.Clone(expr)
	clone.(*ast.CallExpr).Fun.(*ast.SelectorExpr).Sel.Name = "Without"

	testutil.ExpectEq(t, "With", expr.(*ast.CallExpr).Fun.(*ast.SelectorExpr).Sel.Name)
	testutil.ExpectEq(t, expr.Pos(), clone.Pos())
}

func TestCloneNil(t *testing.T) {
	var list *ast.FieldList
	testutil.ExpectTrue(t, astpos.Clone(list) == nil)
}

func TestCloneDropsObjects(t *testing.T) {
	file, err := parser.ParseFile(token.NewFileSet(), "", "package p\nfunc f(x int) int { return x }\n", 0)
	testutil.AssertNoError(t, err)

	decl := file.Decls[0].(*ast.FuncDecl)
	clone := astpos.Clone(decl)
	ret := clone.Body.List[0].(*ast.ReturnStmt)
	testutil.ExpectTrue(t, ret.Results[0].(*ast.Ident).Obj == nil)
}

func TestAnchor(t *testing.T) {
	expr, err := parser.ParseExpr("f(a, b...)")
	testutil.AssertNoError(t, err)

	astpos.Anchor(expr, token.Pos(42))
	for _, pos := range validPositions(expr) {
		testutil.ExpectEq(t, token.Pos(42), pos)
	}
	testutil.ExpectEq(t, token.Pos(42), expr.(*ast.CallExpr).Ellipsis)
}

func TestStripKeepsLayoutFields(t *testing.T) {
	src := "package p\n\nimport (\n\t\"fmt\"\n)\n\nfunc f(xs ...any) {\n\tfmt.Println(xs...)\n}\n"
	file, err := parser.ParseFile(token.NewFileSet(), "", src, 0)
	testutil.AssertNoError(t, err)

	astpos.Strip(file)
	testutil.ExpectEq(t, 0, len(validPositions(file)))

	var buf bytes.Buffer
	testutil.AssertNoError(t, printer.Fprint(&buf, token.NewFileSet(), file))

	reparsed, err := parser.ParseFile(token.NewFileSet(), "", buf.Bytes(), 0)
	testutil.AssertNoError(t, err)
	call := reparsed.Decls[1].(*ast.FuncDecl).Body.List[0].(*ast.ExprStmt).X.(*ast.CallExpr)
	testutil.ExpectTrue(t, call.Ellipsis.IsValid())
	testutil.ExpectTrue(t, reparsed.Decls[0].(*ast.GenDecl).Lparen.IsValid())
}

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

package syntax_test

import (
	"go/ast"
	"testing"

	"go.decorate-lang.org/decorate/internal/testutil"
	"go.decorate-lang.org/decorate/syntax"
)

func TestResolveSelfPath(t *testing.T) {
	path, err := syntax.ResolveSelfPath("self.a.b")
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{"self", "a", "b"}, path.Segments())
	testutil.ExpectSliceEq(t, []string{"a", "b"}, path.Members())
	testutil.ExpectEq(t, "self.a.b", testutil.PrintNode(path.Expr()))

	outer, ok := path.Expr().(*ast.SelectorExpr)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "b", outer.Sel.Name)
	inner, ok := outer.X.(*ast.SelectorExpr)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "a", inner.Sel.Name)
	root, ok := inner.X.(*ast.Ident)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "self", root.Name)
}

func TestResolveSelfPathIsDeterministic(t *testing.T) {
	first, err := syntax.ResolveSelfPath("self.a.b")
	testutil.AssertNoError(t, err)
	second, err := syntax.ResolveSelfPath("self.a.b")
	testutil.AssertNoError(t, err)
	testutil.ExpectDeepEq(t, first.Expr(), second.Expr())
	testutil.ExpectDeepEq(t, first, second)
}

func TestResolveSelfPathBind(t *testing.T) {
	path, err := syntax.ResolveSelfPath("self.cache.Memoize")
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "svc.cache.Memoize", testutil.PrintNode(path.Bind("svc")))
}

func TestResolveSelfPathReceiverOnly(t *testing.T) {
	path, err := syntax.ResolveSelfPath("self")
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 0, len(path.Members()))
	testutil.ExpectEq(t, "self", testutil.PrintNode(path.Expr()))
}

func TestResolveSelfPathErrors(t *testing.T) {
	tests := []struct {
		path string
		code uint32
		span syntax.Span
	}{
		{"", 2100, syntax.NewSpan(0, 0)},
		{"other.field", 2100, syntax.NewSpan(0, 5)},
		{"selfish.field", 2100, syntax.NewSpan(0, 7)},
		{".field", 2101, syntax.NewSpan(0, 0)},
		{"self..field", 2101, syntax.NewSpan(5, 0)},
		{"self.field.", 2101, syntax.NewSpan(11, 0)},
		{"self.1field", 2102, syntax.NewSpan(5, 6)},
		{"self.fie-ld", 2102, syntax.NewSpan(5, 6)},
		{"self.func", 2102, syntax.NewSpan(5, 4)},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			_, err := syntax.ResolveSelfPath(test.path)
			testutil.AssertError(t, err)
			pathErr := err.(*syntax.Error)
			testutil.ExpectEq(t, test.code, pathErr.Code())
			testutil.ExpectEq(t, test.span, pathErr.Span())
		})
	}
}

func TestResolveSelfPathUnicodeIdentifier(t *testing.T) {
	path, err := syntax.ResolveSelfPath("self.größe")
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{"größe"}, path.Members())
}

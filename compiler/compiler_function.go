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

import "go/ast"

// Function describes a decorated function declaration. The declaration is
// never modified; compiling it produces a new one.
type Function struct {
	decl      *ast.FuncDecl
	pkgName   string
	directive *Directive
	pragmas   []pragma
}

// NewFunction inspects the doc comment of decl. It returns nil, nil when
// decl carries no decorator directive.
func NewFunction(pkgName string, decl *ast.FuncDecl) (*Function, *Error) {
	directive, pragmas, err := scanDoc(decl.Doc)
	if err != nil {
		return nil, err
	}
	if directive == nil {
		return nil, nil
	}
	return &Function{
		decl:      decl,
		pkgName:   pkgName,
		directive: directive,
		pragmas:   pragmas,
	}, nil
}

func (fn *Function) Decl() *ast.FuncDecl {
	return fn.decl
}

func (fn *Function) Directive() *Directive {
	return fn.directive
}

func (fn *Function) Async() bool {
	return fn.directive.async
}

// Name returns the function name, qualified by its receiver type for
// methods.
func (fn *Function) Name() string {
	if fn.decl.Recv == nil || len(fn.decl.Recv.List) == 0 {
		return fn.decl.Name.Name
	}
	return recvTypeName(fn.decl.Recv.List[0].Type) + "." + fn.decl.Name.Name
}

func recvTypeName(expr ast.Expr) string {
	switch expr := expr.(type) {
	case *ast.StarExpr:
		return recvTypeName(expr.X)
	case *ast.IndexExpr:
		return recvTypeName(expr.X)
	case *ast.IndexListExpr:
		return recvTypeName(expr.X)
	case *ast.Ident:
		return expr.Name
	default:
		return "?"
	}
}

// Receiver returns the name bound to the method receiver. It is empty for
// functions and for methods with an unnamed or blank receiver.
func (fn *Function) Receiver() string {
	if fn.decl.Recv == nil || len(fn.decl.Recv.List) == 0 {
		return ""
	}
	names := fn.decl.Recv.List[0].Names
	if len(names) == 0 || names[0].Name == "_" {
		return ""
	}
	return names[0].Name
}

func (fn *Function) Results() *ast.FieldList {
	return fn.decl.Type.Results
}

func (fn *Function) HasResults() bool {
	return fn.decl.Type.Results.NumFields() > 0
}

// pinnedPragmas are compiler directives that fix a function's stack or
// calling contract. Moving the body into closures breaks that contract.
var pinnedPragmas = map[string]struct{}{
	"//go:nosplit":            {},
	"//go:noescape":           {},
	"//go:systemstack":        {},
	"//go:nowritebarrier":     {},
	"//go:nowritebarrierrec":  {},
	"//go:yeswritebarrierrec": {},
	"//go:uintptrkeepalive":   {},
	"//go:uintptrescapes":     {},
	"//go:cgo_unsafe_args":    {},
	"//go:linkname":           {},
}

// Validate rejects function shapes that cannot be wrapped.
func Validate(fn *Function) *Error {
	for _, p := range fn.pragmas {
		if _, pinned := pinnedPragmas[p.name]; pinned {
			return errConstFunction(p.name, p.comment.Pos(), p.comment.End())
		}
	}

	decl := fn.decl
	namePos, nameEnd := decl.Name.Pos(), decl.Name.End()
	if decl.Body == nil {
		return errFunctionWithoutBody(fn.Name(), namePos, nameEnd)
	}
	if decl.Recv == nil {
		switch {
		case decl.Name.Name == "init":
			return errReservedFunction("init", namePos, nameEnd)
		case decl.Name.Name == "main" && fn.pkgName == "main":
			return errReservedFunction("main.main", namePos, nameEnd)
		}
	}
	if fn.Async() {
		if _, _, ok := resultShape(decl.Type.Results); !ok {
			pos, end := namePos, nameEnd
			if decl.Type.Results != nil {
				pos, end = decl.Type.Results.Pos(), decl.Type.Results.End()
			}
			return errUnsupportedAsyncResults(fn.Name(), pos, end)
		}
	}
	return nil
}

type asyncShape uint8

const (
	shapeNone asyncShape = iota
	shapeValue
	shapeErr
	shapePair
)

// resultShape classifies the results of an async function and returns the
// type carried by its future.
func resultShape(results *ast.FieldList) (asyncShape, ast.Expr, bool) {
	var types []ast.Expr
	if results != nil {
		for _, field := range results.List {
			for range max(1, len(field.Names)) {
				types = append(types, field.Type)
			}
		}
	}
	switch len(types) {
	case 0:
		return shapeNone, emptyStruct(), true
	case 1:
		if isErrorType(types[0]) {
			return shapeErr, emptyStruct(), true
		}
		return shapeValue, types[0], true
	case 2:
		if isErrorType(types[1]) {
			return shapePair, types[0], true
		}
	}
	return 0, nil, false
}

func isErrorType(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && ident.Name == "error"
}

func emptyStruct() ast.Expr {
	return &ast.StructType{Fields: &ast.FieldList{}}
}

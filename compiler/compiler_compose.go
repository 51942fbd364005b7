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
	"strconv"

	"go.decorate-lang.org/decorate/internal/astpos"
	"go.decorate-lang.org/decorate/syntax"
)

type composer struct {
	fn         *Function
	list       *syntax.DecoratorList
	keyword    string
	futureName string

	recv     string
	anchor   token.Pos
	warnings []*Warning
}

func newComposer(fn *Function, list *syntax.DecoratorList, opts *CompileOptions, futureName string) *composer {
	return &composer{
		fn:         fn,
		list:       list,
		keyword:    opts.receiverKeyword(),
		futureName: futureName,
		recv:       fn.Receiver(),
		anchor:     fn.decl.Type.Func,
	}
}

// compose folds the decorator list onto the function body, innermost
// (last listed) decorator first.
func (c *composer) compose() (*ast.BlockStmt, error) {
	if c.fn.Async() {
		return c.composeAsync()
	}
	body := c.fn.decl.Body
	decorators := c.list.Decorators()
	for ii := len(decorators) - 1; ii >= 0; ii-- {
		decorator := decorators[ii]
		if config := decorator.Config(); config != nil {
			var err error
			if body, err = c.applyConfig(body, config); err != nil {
				return nil, err
			}
		}
		call, err := c.wrap(decorator, c.closure(body))
		if err != nil {
			return nil, err
		}
		body = c.resultBlock(call)
	}
	return body, nil
}

// composeAsync threads a future through every layer. The body is lifted
// into a future once, by the innermost layer; outer layers pass the inner
// future along without awaiting it unless their config needs the value.
func (c *composer) composeAsync() (*ast.BlockStmt, error) {
	shape, valueType, _ := resultShape(c.fn.Results())
	body := c.fn.decl.Body
	var future ast.Expr

	decorators := c.list.Decorators()
	for ii := len(decorators) - 1; ii >= 0; ii-- {
		decorator := decorators[ii]
		if config := decorator.Config(); config != nil {
			if future != nil {
				body = c.await(shape, future)
				future = nil
			}
			var err error
			if body, err = c.applyConfig(body, config); err != nil {
				return nil, err
			}
		}
		inner := future
		if inner == nil {
			inner = c.lift(shape, body)
		}
		closure := &ast.FuncLit{
			Type: &ast.FuncType{
				Params: &ast.FieldList{},
				Results: &ast.FieldList{List: []*ast.Field{
					{Type: c.futureType(valueType)},
				}},
			},
			Body: &ast.BlockStmt{List: []ast.Stmt{
				&ast.ReturnStmt{Results: []ast.Expr{inner}},
			}},
		}
		call, err := c.wrap(decorator, closure)
		if err != nil {
			return nil, err
		}
		future = call
	}
	return c.await(shape, future), nil
}

// wrap calls the decorator with its arguments followed by the deferred body.
func (c *composer) wrap(decorator *syntax.Decorator, body ast.Expr) (ast.Expr, error) {
	fun, err := c.reference(decorator.Reference())
	if err != nil {
		return nil, err
	}
	call := &ast.CallExpr{Fun: fun}
	for _, arg := range decorator.Args() {
		call.Args = append(call.Args, c.splice(arg.Node()))
	}
	call.Args = append(call.Args, body)
	return call, nil
}

func (c *composer) reference(ref *syntax.Reference) (ast.Expr, error) {
	switch ref.Kind() {
	case syntax.RefSelfPath:
		if c.recv == "" {
			pos, end := c.fn.directive.SpanPos(ref.Span())
			return nil, errSelfPathWithoutReceiver(ref.SelfPath().String(), pos, end)
		}
		return ref.SelfPath().Bind(c.recv), nil
	default:
		return c.splice(ref.StaticPath().Node()), nil
	}
}

// splice prepares a node parsed from directive text for insertion into the
// function. Uses of the receiver keyword are rebound to the receiver.
func (c *composer) splice(node ast.Expr) ast.Expr {
	c.rebind(node)
	astpos.Anchor(node, c.anchor)
	return node
}

func (c *composer) spliceStmts(stmts []ast.Stmt) []ast.Stmt {
	for _, stmt := range stmts {
		c.rebind(stmt)
		astpos.Anchor(stmt, c.anchor)
	}
	return stmts
}

func (c *composer) rebind(node ast.Node) {
	if c.recv == "" || c.recv == c.keyword {
		return
	}
	ast.Inspect(node, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.SelectorExpr:
			ast.Inspect(n.X, func(n ast.Node) bool {
				return c.rebindIdent(n)
			})
			return false
		default:
			return c.rebindIdent(n)
		}
	})
}

func (c *composer) rebindIdent(n ast.Node) bool {
	if ident, ok := n.(*ast.Ident); ok && ident.Name == c.keyword {
		ident.Name = c.recv
	}
	return true
}

// closure returns `func() R { body }` using the function's result list.
func (c *composer) closure(body *ast.BlockStmt) *ast.FuncLit {
	return &ast.FuncLit{
		Type: &ast.FuncType{
			Params:  &ast.FieldList{},
			Results: c.results(),
		},
		Body: body,
	}
}

func (c *composer) results() *ast.FieldList {
	results := c.fn.Results()
	if results == nil {
		return nil
	}
	return astpos.Clone(results)
}

func (c *composer) resultBlock(value ast.Expr) *ast.BlockStmt {
	if !c.fn.HasResults() {
		return &ast.BlockStmt{List: []ast.Stmt{&ast.ExprStmt{X: value}}}
	}
	return &ast.BlockStmt{List: []ast.Stmt{
		&ast.ReturnStmt{Results: []ast.Expr{value}},
	}}
}

// applyConfig nests the configured transforms around body: parameter
// transform, then pre hook, then post hook, then result transform.
func (c *composer) applyConfig(body *ast.BlockStmt, config *syntax.Config) (*ast.BlockStmt, error) {
	var value ast.Expr = &ast.CallExpr{Fun: c.closure(body)}
	if transform := config.TransformResult(); transform != nil {
		if !c.fn.HasResults() {
			span, _ := config.KeySpan(syntax.KeyTransformResult)
			pos, end := c.fn.directive.SpanPos(span)
			return nil, errTransformResultWithoutResults(c.fn.Name(), pos, end)
		}
		value = &ast.CallExpr{
			Fun:  c.splice(transform.Node()),
			Args: []ast.Expr{value},
		}
	}

	var rest []ast.Stmt
	post := config.Post()
	switch {
	case !c.fn.HasResults():
		rest = append(rest, &ast.ExprStmt{X: value})
		if post != nil {
			rest = append(rest, c.spliceStmts(post.Stmts())...)
		}
	case post != nil:
		names, tok := c.resultNames()
		rest = append(rest, &ast.AssignStmt{
			Lhs: identList(names),
			Tok: tok,
			Rhs: []ast.Expr{value},
		})
		rest = append(rest, c.spliceStmts(post.Stmts())...)
		rest = append(rest, &ast.ReturnStmt{Results: identList(names)})
	default:
		rest = append(rest, &ast.ReturnStmt{Results: []ast.Expr{value}})
	}

	var stmts []ast.Stmt
	if pre := config.Pre(); pre != nil {
		rest = append(c.spliceStmts(pre.Stmts()), rest...)
	}
	if transform := config.TransformParams(); transform != nil {
		if stmt := c.transformParams(transform, config, rest); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	stmts = append(stmts, rest...)
	return &ast.BlockStmt{List: stmts}, nil
}

// transformParams shadows the named parameters with the values returned by
// the transform:
//
//	x, ys := transform(x, ys...)
//
// Parameters that rest never reads are bound to the blank identifier.
// Blank parameters are left out, with a warning.
func (c *composer) transformParams(
	transform *syntax.Expr,
	config *syntax.Config,
	rest []ast.Stmt,
) ast.Stmt {
	type param struct {
		name     string
		variadic bool
	}
	var params []param
	var excluded []int
	index := 0
	for _, field := range c.fn.decl.Type.Params.List {
		_, variadic := field.Type.(*ast.Ellipsis)
		for _, name := range field.Names {
			index++
			if name.Name == "_" {
				excluded = append(excluded, index)
				continue
			}
			params = append(params, param{name.Name, variadic})
		}
	}
	span, _ := config.KeySpan(syntax.KeyTransformParams)
	pos, end := c.fn.directive.SpanPos(span)
	if len(params) == 0 {
		c.warnings = append(c.warnings, warnNoParamsToTransform(c.fn.Name(), pos, end))
		return nil
	}
	if len(excluded) > 0 {
		c.warnings = append(c.warnings, warnExcludedParams(c.fn.Name(), excluded, pos, end))
	}

	used := usedNames(rest)
	call := &ast.CallExpr{Fun: c.splice(transform.Node())}
	var lhs []ast.Expr
	tok := token.ASSIGN
	for _, p := range params {
		call.Args = append(call.Args, ast.NewIdent(p.name))
		if p.variadic {
			call.Ellipsis = c.anchor
		}
		if _, ok := used[p.name]; ok {
			lhs = append(lhs, ast.NewIdent(p.name))
			tok = token.DEFINE
		} else {
			lhs = append(lhs, ast.NewIdent("_"))
		}
	}
	return &ast.AssignStmt{
		Lhs: lhs,
		Tok: tok,
		Rhs: []ast.Expr{call},
	}
}

// usedNames collects identifiers that may refer to local variables.
func usedNames(stmts []ast.Stmt) map[string]struct{} {
	used := make(map[string]struct{})
	var visit func(n ast.Node) bool
	visit = func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.SelectorExpr:
			ast.Inspect(n.X, visit)
			return false
		case *ast.Ident:
			used[n.Name] = struct{}{}
		}
		return true
	}
	for _, stmt := range stmts {
		ast.Inspect(stmt, visit)
	}
	return used
}

// resultNames returns the names a post hook sees the results under. Named
// results keep their names; otherwise the first values are bound as
// result, result1, ... and a trailing error as err.
func (c *composer) resultNames() ([]string, token.Token) {
	results := c.fn.Results()
	var names []string
	named := true
	for _, field := range results.List {
		if len(field.Names) == 0 {
			named = false
			break
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				named = false
			}
			names = append(names, name.Name)
		}
	}
	if named {
		return names, token.ASSIGN
	}

	names = names[:0]
	count := results.NumFields()
	values := 0
	for _, field := range results.List {
		for range max(1, len(field.Names)) {
			if len(names) == count-1 && isErrorType(field.Type) {
				names = append(names, "err")
				continue
			}
			if values == 0 {
				names = append(names, "result")
			} else {
				names = append(names, "result"+strconv.Itoa(values))
			}
			values++
		}
	}
	return names, token.DEFINE
}

func identList(names []string) []ast.Expr {
	out := make([]ast.Expr, 0, len(names))
	for _, name := range names {
		out = append(out, ast.NewIdent(name))
	}
	return out
}

func (c *composer) futureSel(name string) ast.Expr {
	return &ast.SelectorExpr{
		X:   ast.NewIdent(c.futureName),
		Sel: ast.NewIdent(name),
	}
}

// futureType returns `*future.Future[T]`.
func (c *composer) futureType(valueType ast.Expr) ast.Expr {
	index := astpos.Clone(valueType)
	if st, ok := index.(*ast.StructType); ok && st.Fields.NumFields() == 0 {
		// Braces on one line print as struct{}.
		st.Struct = c.anchor
		st.Fields.Opening = c.anchor
		st.Fields.Closing = c.anchor
	}
	return &ast.StarExpr{X: &ast.IndexExpr{
		X:     c.futureSel("Future"),
		Index: index,
	}}
}

// lift starts body as a future.
func (c *composer) lift(shape asyncShape, body *ast.BlockStmt) ast.Expr {
	var ctor string
	switch shape {
	case shapePair:
		ctor = "Go"
	case shapeValue:
		ctor = "Value"
	case shapeErr:
		ctor = "Err"
	default:
		ctor = "Do"
	}
	return &ast.CallExpr{
		Fun:  c.futureSel(ctor),
		Args: []ast.Expr{c.closure(body)},
	}
}

// await resolves a future into the function's results.
func (c *composer) await(shape asyncShape, future ast.Expr) *ast.BlockStmt {
	var method string
	switch shape {
	case shapePair:
		method = "Get"
	case shapeValue:
		method = "Value"
	case shapeErr:
		method = "Err"
	default:
		method = "Wait"
	}
	call := &ast.CallExpr{Fun: &ast.SelectorExpr{
		X:   future,
		Sel: ast.NewIdent(method),
	}}
	return c.resultBlock(call)
}

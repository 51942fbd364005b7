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

package syntax

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"slices"
	"strconv"

	"go.decorate-lang.org/decorate/internal/astpos"
)

const DefaultReceiverKeyword = "self"

type ParseOption interface {
	apply(*ParseOptions)
}

type parseOption func(*ParseOptions)

func (f parseOption) apply(opts *ParseOptions) { f(opts) }

// WithReceiverKeyword sets the first segment required of self paths. The
// keyword must be a valid Go identifier.
func WithReceiverKeyword(keyword string) ParseOption {
	return parseOption(func(opts *ParseOptions) {
		opts.receiver = keyword
	})
}

// Parse parses the text of a decorator directive, for example
//
//	pre = hits.Add(1), measureTime, "self.cache.Memoize"(id), retry.With(3)
func Parse(src []byte, opts ...ParseOption) (*DecoratorList, error) {
	return NewParseOptions(opts...).Parse(src)
}

type ParseOptions struct {
	receiver string
}

func NewParseOptions(opts ...ParseOption) *ParseOptions {
	parseOpts := &ParseOptions{
		receiver: DefaultReceiverKeyword,
	}
	for _, opt := range opts {
		opt.apply(parseOpts)
	}
	return parseOpts
}

func (opts *ParseOptions) ReceiverKeyword() string {
	return opts.receiver
}

func (opts *ParseOptions) Parse(src []byte) (*DecoratorList, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	items, err := splitItems(tokens)
	if err != nil {
		return nil, err
	}
	ctx := &parseCtx{
		src:   src,
		opts:  opts,
		items: items,
	}
	return ctx.parseList()
}

type parseCtx struct {
	src   []byte
	opts  *ParseOptions
	items []*item

	pending      *Config
	pendingStart uint32
	pendingEnd   uint32
}

func (ctx *parseCtx) parseList() (*DecoratorList, error) {
	if len(ctx.items) == 0 {
		return nil, errNoDecorators(Span{0, uint32(len(ctx.src))})
	}

	list := &DecoratorList{}
	for _, it := range ctx.items {
		if len(it.tokens) == 0 {
			return nil, errEmptyDecoratorEntry(it.span())
		}
		if isConfigPair(it) {
			if err := ctx.configPair(it); err != nil {
				return nil, err
			}
			continue
		}
		decorator, err := ctx.decorator(it)
		if err != nil {
			return nil, err
		}
		list.decorators = append(list.decorators, decorator)
	}
	if ctx.pending != nil {
		return nil, errDanglingConfig(spanBetween(ctx.pendingStart, ctx.pendingEnd))
	}

	first := ctx.items[0]
	last := ctx.items[len(ctx.items)-1]
	list.span = spanBetween(first.start, last.end)
	return list, nil
}

func isConfigPair(it *item) bool {
	return len(it.tokens) >= 2 &&
		it.tokens[0].Kind == token.IDENT &&
		it.tokens[1].Kind == token.ASSIGN
}

func (ctx *parseCtx) text(span Span) string {
	return string(ctx.src[span.Start():span.End()])
}

func (ctx *parseCtx) configPair(it *item) error {
	keyTok := it.tokens[0]
	keySpan := keyTok.Span()
	key := ctx.text(keySpan)
	if !slices.Contains(ConfigKeys, key) {
		return errUnknownConfigOption(key, keySpan)
	}
	if ctx.pending == nil {
		ctx.pending = &Config{keySpans: make(map[string]Span)}
		ctx.pendingStart = it.start
	}
	if _, dup := ctx.pending.keySpans[key]; dup {
		return errDuplicateConfigOption(key, keySpan)
	}
	if len(it.tokens) == 2 {
		return errExpectedConfigValue(key, it.tokens[1].Span())
	}
	ctx.pending.keySpans[key] = keySpan
	ctx.pendingEnd = it.end

	valueSpan := spanBetween(it.tokens[2].Start, it.end)
	switch key {
	case KeyPre, KeyPost:
		hook, err := ctx.hook(key, it.tokens[2:], valueSpan)
		if err != nil {
			return err
		}
		if key == KeyPre {
			ctx.pending.pre = hook
		} else {
			ctx.pending.post = hook
		}
	case KeyTransformParams, KeyTransformResult:
		expr, _, err := ctx.expr(valueSpan)
		if err != nil {
			return err
		}
		astpos.Strip(expr.node)
		if key == KeyTransformParams {
			ctx.pending.transformParams = expr
		} else {
			ctx.pending.transformResult = expr
		}
	}
	return nil
}

func (ctx *parseCtx) decorator(it *item) (*Decorator, error) {
	span := it.span()
	expr, file, err := ctx.expr(span)
	if err != nil {
		return nil, err
	}

	decorator := &Decorator{
		config: ctx.pending,
	}
	if ctx.pending != nil {
		decorator.span = spanBetween(ctx.pendingStart, it.end)
	} else {
		decorator.span = span
	}
	ctx.pending = nil

	refNode := expr.node
	refSpan := span
	if call, ok := refNode.(*ast.CallExpr); ok {
		if call.Ellipsis.IsValid() {
			return nil, errVariadicDecoratorArgs(Span{
				start: span.Start() + uint32(file.Offset(call.Ellipsis)),
				len:   3,
			})
		}
		refNode = call.Fun
		refSpan = nodeSpan(file, span.Start(), call.Fun)
		decorator.hasArgs = true
		decorator.args = make([]*Expr, 0, len(call.Args))
		for _, arg := range call.Args {
			argSpan := nodeSpan(file, span.Start(), arg)
			decorator.args = append(decorator.args, &Expr{
				raw:  ctx.text(argSpan),
				span: argSpan,
				node: arg,
			})
		}
	}

	ref, err := ctx.reference(refNode, refSpan)
	if err != nil {
		return nil, err
	}
	decorator.ref = ref

	astpos.Strip(expr.node)
	return decorator, nil
}

func (ctx *parseCtx) reference(node ast.Expr, span Span) (*Reference, error) {
	raw := ctx.text(span)
	if lit, ok := node.(*ast.BasicLit); ok && lit.Kind == token.STRING {
		value, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, errInvalidDecoratorRef(raw, span)
		}
		path, err := ctx.opts.ResolveSelfPath(value)
		if err != nil {
			return nil, withOffset(err, span.Start()+1)
		}
		return &Reference{
			kind: RefSelfPath,
			raw:  raw,
			span: span,
			self: path,
		}, nil
	}
	if !isStaticPath(node) {
		return nil, errInvalidDecoratorRef(raw, span)
	}
	return &Reference{
		kind: RefStaticPath,
		raw:  raw,
		span: span,
		path: &Expr{
			raw:  raw,
			span: span,
			node: node,
		},
	}, nil
}

// isStaticPath reports whether node is an identifier or selector chain,
// optionally instantiated with type arguments.
func isStaticPath(node ast.Expr) bool {
	switch node := node.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		return isSelectorChain(node.X)
	case *ast.IndexExpr:
		return isSelectorChain(node.X)
	case *ast.IndexListExpr:
		return isSelectorChain(node.X)
	default:
		return false
	}
}

func isSelectorChain(node ast.Expr) bool {
	switch node := node.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		return isSelectorChain(node.X)
	default:
		return false
	}
}

// expr parses the Go expression at span. The returned file maps positions
// in the unstripped expression back to offsets relative to span.
func (ctx *parseCtx) expr(span Span) (*Expr, *token.File, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseExprFrom(
		fset, "", ctx.src[span.Start():span.End()], parser.SkipObjectResolution,
	)
	if err != nil {
		return nil, nil, exprError(err, span)
	}
	expr := &Expr{
		raw:  ctx.text(span),
		span: span,
		node: node,
	}
	return expr, fset.File(node.Pos()), nil
}

func exprError(err error, span Span) error {
	if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
		off := min(uint32(list[0].Pos.Offset), span.Len())
		return errInvalidExpression(list[0].Msg, Span{span.Start() + off, 1})
	}
	return errInvalidExpression(err.Error(), span)
}

func nodeSpan(file *token.File, base uint32, node ast.Node) Span {
	start := uint32(file.Offset(node.Pos()))
	end := uint32(file.Offset(node.End()))
	return Span{base + start, end - start}
}

const hookFuncPrefix = "package p; func _() {"

func (ctx *parseCtx) hook(key string, tokens []Token, span Span) (*Hook, error) {
	raw := ctx.text(span)
	if len(tokens) == 1 && tokens[0].Kind == token.STRING {
		content, err := strconv.Unquote(raw)
		if err != nil {
			return nil, errInvalidHookStatements(key, err.Error(), span)
		}
		fset := token.NewFileSet()
		file, err := parser.ParseFile(
			fset, "", hookFuncPrefix+content+"\n}", parser.SkipObjectResolution,
		)
		if err != nil {
			msg := err.Error()
			if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
				msg = list[0].Msg
			}
			return nil, errInvalidHookStatements(key, msg, span)
		}
		body := file.Decls[0].(*ast.FuncDecl).Body
		astpos.Strip(body)
		return &Hook{
			raw:   raw,
			span:  span,
			stmts: body.List,
		}, nil
	}

	expr, _, err := ctx.expr(span)
	if err != nil {
		return nil, err
	}
	astpos.Strip(expr.node)
	return &Hook{
		raw:   raw,
		span:  span,
		stmts: []ast.Stmt{exprStmt(expr.node)},
	}, nil
}

// exprStmt turns a hook expression into a statement. Calls and receives are
// valid expression statements; other values are assigned to the blank
// identifier.
func exprStmt(expr ast.Expr) ast.Stmt {
	switch expr := expr.(type) {
	case *ast.CallExpr:
		return &ast.ExprStmt{X: expr}
	case *ast.UnaryExpr:
		if expr.Op == token.ARROW {
			return &ast.ExprStmt{X: expr}
		}
	}
	return &ast.AssignStmt{
		Lhs: []ast.Expr{ast.NewIdent("_")},
		Tok: token.ASSIGN,
		Rhs: []ast.Expr{expr},
	}
}

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

	"go.decorate-lang.org/decorate/internal/astpos"
)

type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s *Span) Start() uint32 {
	return s.start
}

func (s *Span) End() uint32 {
	return s.start + s.len
}

func (s *Span) Len() uint32 {
	return s.len
}

func spanBetween(start, end uint32) Span {
	return Span{start, end - start}
}

// DecoratorList is the parsed form of one directive: an ordered, non-empty
// sequence of decorators. The first decorator is the outermost wrapper.
type DecoratorList struct {
	span       Span
	decorators []*Decorator
}

func (l *DecoratorList) Span() Span {
	return l.span
}

func (l *DecoratorList) Len() int {
	return len(l.decorators)
}

func (l *DecoratorList) Decorators() []*Decorator {
	return l.decorators
}

type Decorator struct {
	span    Span
	config  *Config
	ref     *Reference
	args    []*Expr
	hasArgs bool
}

func (d *Decorator) Span() Span {
	return d.span
}

// Config returns nil when the decorator has no configuration pairs.
func (d *Decorator) Config() *Config {
	return d.config
}

func (d *Decorator) Reference() *Reference {
	return d.ref
}

func (d *Decorator) Args() []*Expr {
	return d.args
}

// HasArgs reports whether the reference was followed by a parenthesized
// argument list, which may be empty.
func (d *Decorator) HasArgs() bool {
	return d.hasArgs
}

type ReferenceKind uint8

const (
	RefStaticPath ReferenceKind = iota + 1
	RefSelfPath
)

func (k ReferenceKind) String() string {
	switch k {
	case RefStaticPath:
		return "static"
	case RefSelfPath:
		return "self"
	default:
		return "unknown"
	}
}

// Reference names the decorator function. It is either a static path
// (`retry.With`, `measure[int]`) or a receiver-rooted self path written
// as a string literal (`"self.cache.Memoize"`).
type Reference struct {
	kind ReferenceKind
	raw  string
	span Span
	path *Expr
	self *SelfPath
}

func (r *Reference) Kind() ReferenceKind {
	return r.kind
}

func (r *Reference) Raw() string {
	return r.raw
}

func (r *Reference) Span() Span {
	return r.span
}

// StaticPath returns the path expression of a RefStaticPath reference.
func (r *Reference) StaticPath() *Expr {
	return r.path
}

// SelfPath returns the resolved path of a RefSelfPath reference.
func (r *Reference) SelfPath() *SelfPath {
	return r.self
}

const (
	KeyPre             = "pre"
	KeyPost            = "post"
	KeyTransformParams = "transform_params"
	KeyTransformResult = "transform_result"
)

// ConfigKeys lists the valid configuration keys in application order.
var ConfigKeys = []string{
	KeyPre,
	KeyPost,
	KeyTransformParams,
	KeyTransformResult,
}

type Config struct {
	pre             *Hook
	post            *Hook
	transformParams *Expr
	transformResult *Expr
	keySpans        map[string]Span
}

func (c *Config) Pre() *Hook {
	return c.pre
}

func (c *Config) Post() *Hook {
	return c.post
}

func (c *Config) TransformParams() *Expr {
	return c.transformParams
}

func (c *Config) TransformResult() *Expr {
	return c.transformResult
}

// KeySpan returns the location of the key in a `key = value` pair.
func (c *Config) KeySpan(key string) (Span, bool) {
	span, ok := c.keySpans[key]
	return span, ok
}

// Hook is the code run by a pre or post configuration pair. A string
// literal value holds Go statements; any other value is an expression
// evaluated for its side effects.
type Hook struct {
	raw   string
	span  Span
	stmts []ast.Stmt
}

func (h *Hook) Raw() string {
	return h.raw
}

func (h *Hook) Span() Span {
	return h.span
}

// Stmts returns a fresh copy of the hook's statements.
func (h *Hook) Stmts() []ast.Stmt {
	out := make([]ast.Stmt, 0, len(h.stmts))
	for _, stmt := range h.stmts {
		out = append(out, astpos.Clone(stmt))
	}
	return out
}

func (h *Hook) Len() int {
	return len(h.stmts)
}

// Expr is a Go expression preserved verbatim from the directive text.
type Expr struct {
	raw  string
	span Span
	node ast.Expr
}

func (e *Expr) Raw() string {
	return e.raw
}

func (e *Expr) Span() Span {
	return e.span
}

// Node returns a fresh copy of the expression without source positions.
func (e *Expr) Node() ast.Expr {
	return astpos.Clone(e.node)
}

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
	"go/token"
	"strings"
)

// SelfPath is a member access chain rooted at the method receiver, such as
// `self.cache.Memoize`.
type SelfPath struct {
	raw      string
	segments []string
}

func (p *SelfPath) String() string {
	return p.raw
}

// Segments returns every segment of the path, starting with the receiver
// keyword.
func (p *SelfPath) Segments() []string {
	return p.segments
}

// Members returns the segments following the receiver keyword.
func (p *SelfPath) Members() []string {
	return p.segments[1:]
}

// Expr returns the path as a selector chain rooted at the receiver keyword.
func (p *SelfPath) Expr() ast.Expr {
	return p.Bind(p.segments[0])
}

// Bind returns the path as a selector chain rooted at recv.
func (p *SelfPath) Bind(recv string) ast.Expr {
	var expr ast.Expr = ast.NewIdent(recv)
	for _, member := range p.Members() {
		expr = &ast.SelectorExpr{
			X:   expr,
			Sel: ast.NewIdent(member),
		}
	}
	return expr
}

func ResolveSelfPath(path string, opts ...ParseOption) (*SelfPath, error) {
	return NewParseOptions(opts...).ResolveSelfPath(path)
}

// ResolveSelfPath validates a dotted self path. Error spans are byte offsets
// into path.
func (opts *ParseOptions) ResolveSelfPath(path string) (*SelfPath, error) {
	receiver := opts.receiver
	if path == "" {
		return nil, errMalformedSelfPath(path, receiver, Span{0, 0})
	}

	segments := strings.Split(path, ".")
	var off uint32
	for ii, segment := range segments {
		span := Span{off, uint32(len(segment))}
		off += uint32(len(segment)) + 1

		if ii == 0 {
			if segment != receiver {
				if segment == "" {
					return nil, errEmptyPathSegment(path, span)
				}
				return nil, errMalformedSelfPath(path, receiver, span)
			}
			continue
		}
		if segment == "" {
			return nil, errEmptyPathSegment(path, span)
		}
		if !token.IsIdentifier(segment) {
			return nil, errInvalidIdentifierSegment(path, segment, span)
		}
	}
	return &SelfPath{
		raw:      path,
		segments: segments,
	}, nil
}

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
	"strings"

	"go.decorate-lang.org/decorate/syntax"
)

const (
	DirectiveWith  = "//decorate:with"
	DirectiveAsync = "//decorate:async"
)

// Directive is the decorator list attached to one function, joined from
// one or more directive comment lines.
type Directive struct {
	async    bool
	text     []byte
	segments []segment
	comments []*ast.Comment
}

// segment maps the start of one directive line in the joined text to its
// position in the file.
type segment struct {
	off uint32
	pos token.Pos
	len uint32
}

func (d *Directive) Async() bool {
	return d.async
}

// Text returns the joined directive text, one line per comment.
func (d *Directive) Text() []byte {
	return d.text
}

func (d *Directive) Comments() []*ast.Comment {
	return d.comments
}

// Pos maps a byte offset into Text to a file position.
func (d *Directive) Pos(off uint32) token.Pos {
	seg := d.segments[0]
	for _, next := range d.segments[1:] {
		if next.off > off {
			break
		}
		seg = next
	}
	return seg.pos + token.Pos(min(off-seg.off, seg.len))
}

func (d *Directive) SpanPos(span syntax.Span) (token.Pos, token.Pos) {
	return d.Pos(span.Start()), d.Pos(span.End())
}

// directiveVerb returns the directive prefix of a comment, if it has one.
func directiveVerb(text string) (string, bool) {
	for _, verb := range []string{DirectiveWith, DirectiveAsync} {
		rest, ok := strings.CutPrefix(text, verb)
		if !ok {
			continue
		}
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			return verb, true
		}
	}
	return "", false
}

// pragma is a //go: compiler directive attached to a function.
type pragma struct {
	name    string
	comment *ast.Comment
}

// scanDoc extracts the decorator directive and the compiler directives of
// a doc comment. It returns a nil directive when the function is not
// decorated.
func scanDoc(doc *ast.CommentGroup) (*Directive, []pragma, *Error) {
	if doc == nil {
		return nil, nil, nil
	}
	var directive *Directive
	var pragmas []pragma
	var buf strings.Builder
	for _, c := range doc.List {
		if strings.HasPrefix(c.Text, "//go:") {
			name, _, _ := strings.Cut(c.Text, " ")
			pragmas = append(pragmas, pragma{name: name, comment: c})
			continue
		}
		verb, ok := directiveVerb(c.Text)
		if !ok {
			continue
		}
		async := verb == DirectiveAsync
		if directive == nil {
			directive = &Directive{async: async}
		} else if directive.async != async {
			return nil, nil, errMixedDirectives(c.Pos(), c.End())
		} else {
			buf.WriteByte('\n')
		}
		line := c.Text[len(verb):]
		directive.segments = append(directive.segments, segment{
			off: uint32(buf.Len()),
			pos: c.Pos() + token.Pos(len(verb)),
			len: uint32(len(line)),
		})
		directive.comments = append(directive.comments, c)
		buf.WriteString(line)
	}
	if directive != nil {
		directive.text = []byte(buf.String())
	}
	return directive, pragmas, nil
}

// stripDirectives returns a copy of doc without decorator directives or
// the blank comment lines that separated them, or nil when nothing else
// remains.
func stripDirectives(doc *ast.CommentGroup, directive *Directive) *ast.CommentGroup {
	var kept []*ast.Comment
	for _, c := range doc.List {
		consumed := false
		for _, dc := range directive.comments {
			if c == dc {
				consumed = true
				break
			}
		}
		if !consumed {
			kept = append(kept, c)
		}
	}
	for len(kept) > 0 && kept[len(kept)-1].Text == "//" {
		kept = kept[:len(kept)-1]
	}
	if len(kept) == 0 {
		return nil
	}
	return &ast.CommentGroup{List: kept}
}

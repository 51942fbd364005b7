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
	"go/scanner"
	"go/token"
	"unicode/utf8"
)

type Token struct {
	Kind  token.Token
	Start uint32
	Len   uint32
}

func (t Token) Span() Span {
	return Span{t.Start, t.Len}
}

// Tokenize splits directive text into Go tokens. Comments and newlines are
// dropped.
func Tokenize(src []byte) ([]Token, error) {
	if !utf8.Valid(src) {
		return nil, errInvalidUtf8(src)
	}

	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var scanErr error
	var s scanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) {
		if scanErr == nil {
			scanErr = errUnexpectedToken(msg, Span{uint32(pos.Offset), 1})
		}
	}, 0)

	var tokens []Token
	for {
		pos, tok, lit := s.Scan()
		if scanErr != nil {
			return nil, scanErr
		}
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		start := uint32(file.Offset(pos))
		tokenLen := uint32(len(lit))
		if tokenLen == 0 {
			tokenLen = uint32(len(tok.String()))
		}
		tokens = append(tokens, Token{
			Kind:  tok,
			Start: start,
			Len:   tokenLen,
		})
	}
	return tokens, nil
}

type item struct {
	tokens []Token
	start  uint32
	end    uint32
}

func (it *item) span() Span {
	return spanBetween(it.start, it.end)
}

// splitItems groups tokens into the comma-separated items of a directive,
// ignoring commas nested in brackets, braces, or parentheses. A trailing
// comma produces no item; an empty item elsewhere is kept so the parser can
// report it.
func splitItems(tokens []Token) ([]*item, error) {
	var items []*item
	var stack []Token
	current := &item{}
	for _, tok := range tokens {
		switch tok.Kind {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			stack = append(stack, tok)
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if len(stack) == 0 || closerOf(stack[len(stack)-1].Kind) != tok.Kind {
				return nil, errUnclosedDelimiter(tok.Kind, tok.Span())
			}
			stack = stack[:len(stack)-1]
		case token.COMMA:
			if len(stack) == 0 {
				if len(current.tokens) == 0 {
					current.start = tok.Start
					current.end = tok.Start + tok.Len
				}
				items = append(items, current)
				current = &item{}
				continue
			}
		case token.SEMICOLON:
			if len(stack) == 0 {
				return nil, errUnexpectedToken("';' outside of braces", tok.Span())
			}
		}
		if len(current.tokens) == 0 {
			current.start = tok.Start
		}
		current.tokens = append(current.tokens, tok)
		current.end = tok.Start + tok.Len
	}
	if len(stack) > 0 {
		open := stack[len(stack)-1]
		return nil, errUnclosedDelimiter(open.Kind, open.Span())
	}
	if len(current.tokens) > 0 {
		items = append(items, current)
	}
	return items, nil
}

func closerOf(open token.Token) token.Token {
	switch open {
	case token.LPAREN:
		return token.RPAREN
	case token.LBRACK:
		return token.RBRACK
	default:
		return token.RBRACE
	}
}

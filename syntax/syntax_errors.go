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
	"fmt"
	"go/token"
	"strings"
	"unicode/utf8"
)

type Error struct {
	code    uint32
	message string
	hint    string
	span    Span
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

// Hint suggests a fix. It may be empty.
func (err *Error) Hint() string {
	return err.hint
}

func (err *Error) Span() Span {
	return err.span
}

func errInvalidUtf8(src []byte) error {
	var off uint32
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError && size <= 1 {
			break
		}
		off += uint32(size)
		src = src[size:]
	}
	return &Error{
		code:    1001,
		message: "Directive contains invalid UTF-8",
		span:    Span{off, 1},
	}
}

func errUnexpectedToken(msg string, span Span) error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Unexpected token: %s", msg),
		span:    span,
	}
}

func errUnclosedDelimiter(tok token.Token, span Span) error {
	return &Error{
		code:    1003,
		message: fmt.Sprintf("Unbalanced delimiter '%s'", tok),
		span:    span,
	}
}

func errNoDecorators(span Span) error {
	return &Error{
		code:    2000,
		message: "No decorators provided",
		hint:    "Expected at least one decorator function",
		span:    span,
	}
}

func errUnknownConfigOption(key string, span Span) error {
	return &Error{
		code:    2001,
		message: fmt.Sprintf("Unknown config option %q", key),
		hint:    "Valid options are: " + strings.Join(ConfigKeys, ", "),
		span:    span,
	}
}

func errDuplicateConfigOption(key string, span Span) error {
	return &Error{
		code:    2002,
		message: fmt.Sprintf("Config option %q is set more than once", key),
		hint:    "Remove all but one of the assignments",
		span:    span,
	}
}

func errExpectedConfigValue(key string, span Span) error {
	return &Error{
		code:    2003,
		message: fmt.Sprintf("Expected a value for config option %q", key),
		span:    span,
	}
}

func errDanglingConfig(span Span) error {
	return &Error{
		code:    2004,
		message: "Config options must be followed by a decorator",
		hint:    "Add the decorator the options apply to after them",
		span:    span,
	}
}

func errEmptyDecoratorEntry(span Span) error {
	return &Error{
		code:    2005,
		message: "Empty decorator entry",
		hint:    "Remove the extra comma",
		span:    span,
	}
}

func errInvalidDecoratorRef(raw string, span Span) error {
	return &Error{
		code:    2006,
		message: fmt.Sprintf("Invalid decorator reference %q", raw),
		hint:    `Expected a function path such as "pkg.Func" or a self path such as "self.field.Method"`,
		span:    span,
	}
}

func errInvalidExpression(msg string, span Span) error {
	return &Error{
		code:    2007,
		message: fmt.Sprintf("Invalid expression: %s", msg),
		span:    span,
	}
}

func errVariadicDecoratorArgs(span Span) error {
	return &Error{
		code:    2008,
		message: "Decorator arguments cannot be variadic",
		hint:    "The wrapped function body is always the last argument",
		span:    span,
	}
}

func errInvalidHookStatements(key, msg string, span Span) error {
	return &Error{
		code:    2009,
		message: fmt.Sprintf("Invalid statements in config option %q: %s", key, msg),
		span:    span,
	}
}

func errMalformedSelfPath(path, receiver string, span Span) error {
	return &Error{
		code:    2100,
		message: fmt.Sprintf("Malformed self path %q", path),
		hint:    fmt.Sprintf("Self paths must start with %q", receiver+"."),
		span:    span,
	}
}

func errEmptyPathSegment(path string, span Span) error {
	return &Error{
		code:    2101,
		message: fmt.Sprintf("Empty segment in self path %q", path),
		span:    span,
	}
}

func errInvalidIdentifierSegment(path, segment string, span Span) error {
	return &Error{
		code:    2102,
		message: fmt.Sprintf("Invalid identifier %q in self path %q", segment, path),
		hint:    "Path segments must be Go identifiers",
		span:    span,
	}
}

// withOffset rebases the span of a syntax error by off bytes.
func withOffset(err error, off uint32) error {
	if synErr, ok := err.(*Error); ok {
		rebased := *synErr
		rebased.span.start += off
		return &rebased
	}
	return err
}

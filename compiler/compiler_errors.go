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
	"errors"
	"fmt"
	"go/token"

	"go.decorate-lang.org/decorate/syntax"
)

type Error struct {
	code    uint32
	message string
	hint    string
	pos     token.Pos
	end     token.Pos
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

func (err *Error) Pos() token.Pos {
	return err.pos
}

func (err *Error) End() token.Pos {
	return err.end
}

// errSyntax places a directive parse error at its position in the file.
func errSyntax(err error, directive *Directive) *Error {
	var synErr *syntax.Error
	if !errors.As(err, &synErr) {
		return &Error{
			code:    2007,
			message: err.Error(),
			pos:     directive.Pos(0),
			end:     directive.Pos(0),
		}
	}
	pos, end := directive.SpanPos(synErr.Span())
	return &Error{
		code:    synErr.Code(),
		message: synErr.Message(),
		hint:    synErr.Hint(),
		pos:     pos,
		end:     end,
	}
}

func errConstFunction(directive string, pos, end token.Pos) *Error {
	return &Error{
		code:    3000,
		message: fmt.Sprintf("Cannot decorate function marked %s", directive),
		hint:    fmt.Sprintf("Remove the %s directive", directive),
		pos:     pos,
		end:     end,
	}
}

func errFunctionWithoutBody(name string, pos, end token.Pos) *Error {
	return &Error{
		code:    3001,
		message: fmt.Sprintf("Cannot decorate function %s without a body", name),
		hint:    "Functions implemented in assembly or provided by //go:linkname cannot be wrapped",
		pos:     pos,
		end:     end,
	}
}

func errReservedFunction(name string, pos, end token.Pos) *Error {
	return &Error{
		code:    3002,
		message: fmt.Sprintf("Cannot decorate %s", name),
		hint:    "Move the body into a separate function and decorate that instead",
		pos:     pos,
		end:     end,
	}
}

func errUnsupportedAsyncResults(name string, pos, end token.Pos) *Error {
	return &Error{
		code:    3003,
		message: fmt.Sprintf("Async function %s has unsupported results", name),
		hint:    "Async functions must return (), (T), (error), or (T, error)",
		pos:     pos,
		end:     end,
	}
}

func errSelfPathWithoutReceiver(path string, pos, end token.Pos) *Error {
	return &Error{
		code:    3004,
		message: fmt.Sprintf("Self path %q requires a method with a named receiver", path),
		hint:    "Name the receiver, or use a static decorator path",
		pos:     pos,
		end:     end,
	}
}

func errTransformResultWithoutResults(name string, pos, end token.Pos) *Error {
	return &Error{
		code:    3005,
		message: fmt.Sprintf("transform_result requires %s to return a value", name),
		hint:    "Remove the transform_result option",
		pos:     pos,
		end:     end,
	}
}

func errMixedDirectives(pos, end token.Pos) *Error {
	return &Error{
		code:    3006,
		message: "Cannot mix //decorate:with and //decorate:async on one function",
		hint:    "Use //decorate:async on every directive line of an async function",
		pos:     pos,
		end:     end,
	}
}

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

package decorate

import (
	"cmp"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"go.decorate-lang.org/decorate/compiler"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a positioned error or warning about one decorated function.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Hint     string   `json:"hint,omitempty"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
}

// String formats the diagnostic as "file:line:col: E2001: message (hint)".
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s: %s", d.File, d.Line, d.Column, d.Code, d.Message)
	if d.Hint != "" {
		fmt.Fprintf(&b, " (%s)", d.Hint)
	}
	return b.String()
}

// DiagnosticsError is returned by Generate when some decorated function
// could not be compiled.
type DiagnosticsError struct {
	Diagnostics []Diagnostic
}

func (err *DiagnosticsError) Error() string {
	var errs []string
	for _, diag := range err.Diagnostics {
		if diag.Severity == SeverityError {
			errs = append(errs, diag.String())
		}
	}
	return strings.Join(errs, "\n")
}

func newDiagnostic(fset *token.FileSet, severity Severity, code string, pos token.Pos) Diagnostic {
	position := fset.Position(pos)
	return Diagnostic{
		Severity: severity,
		Code:     code,
		File:     position.Filename,
		Line:     position.Line,
		Column:   position.Column,
	}
}

// fileDiagnostics lists the errors and warnings of a file in source order.
func fileDiagnostics(fset *token.FileSet, result compiler.FileResult) []Diagnostic {
	var out []Diagnostic
	for _, err := range result.Errors {
		diag := newDiagnostic(fset, SeverityError, fmt.Sprintf("E%d", err.Code()), err.Pos())
		diag.Message = err.Message()
		diag.Hint = err.Hint()
		out = append(out, diag)
	}
	for _, warn := range result.Warnings {
		diag := newDiagnostic(fset, SeverityWarning, fmt.Sprintf("W%d", warn.Code()), warn.Pos())
		diag.Message = warn.Message()
		out = append(out, diag)
	}
	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		if x := cmp.Compare(a.Line, b.Line); x != 0 {
			return x
		}
		return cmp.Compare(a.Column, b.Column)
	})
	return out
}

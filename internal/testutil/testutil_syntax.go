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

package testutil

import (
	"bytes"
	"encoding/json"
	"go/ast"
	"go/printer"
	"go/token"

	"go.decorate-lang.org/decorate/syntax"
)

type dumpSpan struct {
	Start uint32 `json:"start"`
	Len   uint32 `json:"len"`
}

type dumpHook struct {
	Raw   string   `json:"raw"`
	Stmts []string `json:"stmts"`
}

type dumpConfig struct {
	Pre             *dumpHook `json:"pre,omitempty"`
	Post            *dumpHook `json:"post,omitempty"`
	TransformParams *string   `json:"transform_params,omitempty"`
	TransformResult *string   `json:"transform_result,omitempty"`
}

type dumpReference struct {
	Kind     string   `json:"kind"`
	Raw      string   `json:"raw"`
	Segments []string `json:"segments,omitempty"`
}

type dumpDecorator struct {
	Span      dumpSpan      `json:"span"`
	Config    *dumpConfig   `json:"config,omitempty"`
	Reference dumpReference `json:"reference"`
	Args      *[]string     `json:"args,omitempty"`
}

type dumpList struct {
	Span       dumpSpan        `json:"span"`
	Decorators []dumpDecorator `json:"decorators"`
}

// DumpJSON renders a parsed decorator list as indented JSON for golden
// comparisons.
func DumpJSON(list *syntax.DecoratorList) []byte {
	out := dumpList{
		Span:       newDumpSpan(list.Span()),
		Decorators: []dumpDecorator{},
	}
	for _, decorator := range list.Decorators() {
		out.Decorators = append(out.Decorators, dumpOne(decorator))
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(out); err != nil {
		panic(err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}

func newDumpSpan(span syntax.Span) dumpSpan {
	return dumpSpan{Start: span.Start(), Len: span.Len()}
}

func dumpOne(decorator *syntax.Decorator) dumpDecorator {
	ref := decorator.Reference()
	out := dumpDecorator{
		Span: newDumpSpan(decorator.Span()),
		Reference: dumpReference{
			Kind: ref.Kind().String(),
			Raw:  ref.Raw(),
		},
	}
	if self := ref.SelfPath(); self != nil {
		out.Reference.Segments = self.Segments()
	}
	if decorator.HasArgs() {
		args := []string{}
		for _, arg := range decorator.Args() {
			args = append(args, arg.Raw())
		}
		out.Args = &args
	}
	if config := decorator.Config(); config != nil {
		out.Config = &dumpConfig{
			Pre:  dumpHookOf(config.Pre()),
			Post: dumpHookOf(config.Post()),
		}
		if expr := config.TransformParams(); expr != nil {
			raw := expr.Raw()
			out.Config.TransformParams = &raw
		}
		if expr := config.TransformResult(); expr != nil {
			raw := expr.Raw()
			out.Config.TransformResult = &raw
		}
	}
	return out
}

func dumpHookOf(hook *syntax.Hook) *dumpHook {
	if hook == nil {
		return nil
	}
	out := &dumpHook{
		Raw:   hook.Raw(),
		Stmts: []string{},
	}
	for _, stmt := range hook.Stmts() {
		out.Stmts = append(out.Stmts, PrintNode(stmt))
	}
	return out
}

// PrintNode prints a position-free node on a single line where possible.
func PrintNode(node ast.Node) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), node); err != nil {
		panic(err)
	}
	return buf.String()
}

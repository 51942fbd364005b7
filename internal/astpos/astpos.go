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

// Package astpos copies and repositions go/ast trees so that nodes parsed
// from one token.FileSet can be spliced into a file from another.
package astpos

import (
	"go/ast"
	"go/token"
	"reflect"
)

// Placeholder is the position given to fields whose validity changes how a
// node prints, such as the ellipsis of a variadic call.
const Placeholder = token.Pos(1)

var (
	posType    = reflect.TypeFor[token.Pos]()
	objectType = reflect.TypeFor[*ast.Object]()
	scopeType  = reflect.TypeFor[*ast.Scope]()
)

// Clone returns a deep copy of node. Object and scope links are dropped.
func Clone[T ast.Node](node T) T {
	v := reflect.ValueOf(node)
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return node
	}
	return cloneValue(v).Interface().(T)
}

func cloneValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() || v.Type() == objectType || v.Type() == scopeType {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneValue(v.Elem()))
		return out
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(cloneValue(v.Elem()))
		return out
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for ii := range v.Len() {
			out.Index(ii).Set(cloneValue(v.Index(ii)))
		}
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		for ii := range v.NumField() {
			out.Field(ii).Set(cloneValue(v.Field(ii)))
		}
		return out
	default:
		return v
	}
}

// Anchor moves every valid position in node to pos.
func Anchor(node ast.Node, pos token.Pos) {
	if node == nil {
		return
	}
	setPositions(reflect.ValueOf(node), pos)
}

// Strip clears every position in node. Positions that decide how a node
// prints are set to Placeholder instead.
func Strip(node ast.Node) {
	if node == nil {
		return
	}
	var calls []*ast.CallExpr
	var decls []*ast.GenDecl
	ast.Inspect(node, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.CallExpr:
			if n.Ellipsis.IsValid() {
				calls = append(calls, n)
			}
		case *ast.GenDecl:
			if n.Lparen.IsValid() {
				decls = append(decls, n)
			}
		}
		return true
	})
	setPositions(reflect.ValueOf(node), token.NoPos)
	for _, call := range calls {
		call.Ellipsis = Placeholder
	}
	for _, decl := range decls {
		decl.Lparen = Placeholder
		decl.Rparen = Placeholder
	}
}

func setPositions(v reflect.Value, pos token.Pos) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() || v.Type() == objectType || v.Type() == scopeType {
			return
		}
		setPositions(v.Elem(), pos)
	case reflect.Slice:
		for ii := range v.Len() {
			setPositions(v.Index(ii), pos)
		}
	case reflect.Struct:
		for ii := range v.NumField() {
			field := v.Field(ii)
			if field.Type() == posType {
				if token.Pos(field.Int()).IsValid() && field.CanSet() {
					field.SetInt(int64(pos))
				}
				continue
			}
			setPositions(field, pos)
		}
	}
}

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
	"errors"
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/token"
)

var (
	ErrMissingBuildTag   = errors.New("missing build tag")
	ErrAmbiguousBuildTag = errors.New("build tag is one alternative of ||")
)

// invertConstraint rewrites the //go:build line of file so that the
// generated file builds exactly when the input does not. The input must
// name tag in its constraint, and not as an alternative of ||: with
// "decorate || foo" both files would build whenever foo is set. Legacy
// // +build lines are dropped.
func invertConstraint(fset *token.FileSet, file *ast.File, tag string) error {
	var build *ast.Comment
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}
		for _, c := range group.List {
			if constraint.IsGoBuild(c.Text) {
				build = c
			}
		}
	}

	filename := fset.Position(file.Package).Filename
	if build == nil {
		return fmt.Errorf(
			"%s: %w: add //go:build %s so the input is excluded from decorated builds",
			filename, ErrMissingBuildTag, tag,
		)
	}
	expr, err := constraint.Parse(build.Text)
	if err != nil {
		return fmt.Errorf("%s: %w", fset.Position(build.Pos()), err)
	}
	if tagInDisjunction(expr, tag, false, false) {
		return fmt.Errorf(
			"%s: %w: %q must be required by every build of the input",
			fset.Position(build.Pos()), ErrAmbiguousBuildTag, tag,
		)
	}
	inverted, found := negateTag(expr, tag)
	if !found {
		return fmt.Errorf(
			"%s: %w: //go:build line does not mention %q",
			fset.Position(build.Pos()), ErrMissingBuildTag, tag,
		)
	}
	build.Text = "//go:build " + inverted.String()

	groups := file.Comments[:0]
	for _, group := range file.Comments {
		kept := group.List[:0]
		for _, c := range group.List {
			if !constraint.IsPlusBuild(c.Text) {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			group.List = kept
			groups = append(groups, group)
		}
	}
	file.Comments = groups
	return nil
}

// negateTag negates every occurrence of tag in expr.
func negateTag(expr constraint.Expr, tag string) (constraint.Expr, bool) {
	switch expr := expr.(type) {
	case *constraint.TagExpr:
		if expr.Tag == tag {
			return &constraint.NotExpr{X: expr}, true
		}
		return expr, false
	case *constraint.NotExpr:
		if x, ok := expr.X.(*constraint.TagExpr); ok && x.Tag == tag {
			return x, true
		}
		x, found := negateTag(expr.X, tag)
		return &constraint.NotExpr{X: x}, found
	case *constraint.AndExpr:
		x, foundX := negateTag(expr.X, tag)
		y, foundY := negateTag(expr.Y, tag)
		return &constraint.AndExpr{X: x, Y: y}, foundX || foundY
	case *constraint.OrExpr:
		x, foundX := negateTag(expr.X, tag)
		y, foundY := negateTag(expr.Y, tag)
		return &constraint.OrExpr{X: x, Y: y}, foundX || foundY
	default:
		return expr, false
	}
}

// tagInDisjunction reports whether tag is one alternative of an || once
// negations are pushed down to the tags.
func tagInDisjunction(expr constraint.Expr, tag string, negated, disjunct bool) bool {
	switch expr := expr.(type) {
	case *constraint.TagExpr:
		return disjunct && expr.Tag == tag
	case *constraint.NotExpr:
		return tagInDisjunction(expr.X, tag, !negated, disjunct)
	case *constraint.AndExpr:
		disjunct = disjunct || negated
		return tagInDisjunction(expr.X, tag, negated, disjunct) ||
			tagInDisjunction(expr.Y, tag, negated, disjunct)
	case *constraint.OrExpr:
		disjunct = disjunct || !negated
		return tagInDisjunction(expr.X, tag, negated, disjunct) ||
			tagInDisjunction(expr.Y, tag, negated, disjunct)
	default:
		return false
	}
}

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
	"fmt"
	"go/token"
	"strings"
)

type Warning struct {
	code    uint32
	message string
	pos     token.Pos
	end     token.Pos
}

func (w *Warning) String() string {
	return fmt.Sprintf("W%d: %s", w.code, w.message)
}

func (w *Warning) Code() uint32 {
	return w.code
}

func (w *Warning) Message() string {
	return w.message
}

func (w *Warning) Pos() token.Pos {
	return w.pos
}

func (w *Warning) End() token.Pos {
	return w.end
}

func warnNoParamsToTransform(name string, pos, end token.Pos) *Warning {
	return &Warning{
		code:    4000,
		message: fmt.Sprintf("transform_params skipped: %s has no named parameters", name),
		pos:     pos,
		end:     end,
	}
}

// warnExcludedParams reports blank parameters left out of a parameter
// transform. excluded holds their 1-based positions.
func warnExcludedParams(name string, excluded []int, pos, end token.Pos) *Warning {
	parts := make([]string, 0, len(excluded))
	for _, index := range excluded {
		parts = append(parts, fmt.Sprintf("parameter %d (_)", index))
	}
	return &Warning{
		code:    4001,
		message: fmt.Sprintf("transform_params on %s excludes %s", name, strings.Join(parts, ", ")),
		pos:     pos,
		end:     end,
	}
}

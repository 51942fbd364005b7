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

package decorators

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// AttrCallID is the span attribute holding a unique id per traced call.
const AttrCallID = "decorate.call_id"

// Throttle waits for limiter before calling fn. A wait cancelled by ctx is
// returned as the error.
func Throttle[T any](ctx context.Context, limiter *rate.Limiter, fn func() (T, error)) (T, error) {
	if err := limiter.Wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	return fn()
}

// Traced records a span named name around fn, as a child of any span in
// ctx. Errors returned by fn are recorded on the span.
func Traced[T any](ctx context.Context, tracer trace.Tracer, name string, fn func() (T, error)) (T, error) {
	_, span := tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String(AttrCallID, uuid.NewString()),
	))
	defer span.End()

	value, err := fn()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return value, err
}

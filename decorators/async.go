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
	"errors"
	"fmt"
	"time"

	"go.decorate-lang.org/decorate/future"
)

var ErrTimeout = errors.New("call timed out")

// Timeout fails the call with ErrTimeout if it has not completed within d.
// The body keeps running in the background.
//
// Functions without an error result cannot return the timeout, so awaiting
// them panics with a *future.Error instead.
func Timeout[T any](d time.Duration, fn func() *future.Future[T]) *future.Future[T] {
	inner := fn()
	return future.Go(func() (T, error) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-inner.Done():
			return inner.Get()
		case <-timer.C:
			var zero T
			return zero, fmt.Errorf("after %s: %w", d, ErrTimeout)
		}
	})
}

// Logged logs when an async call completes, with its duration and error.
func Logged[T any](name string, fn func() *future.Future[T]) *future.Future[T] {
	start := time.Now()
	inner := fn()
	return future.Go(func() (T, error) {
		value, err := inner.Get()
		args := []any{
			LogAttrDecorator, "logged",
			LogAttrName, name,
			LogAttrDurationMS, durationMS(time.Since(start)),
		}
		if err != nil {
			log().Error("async call failed", append(args, LogAttrError, err)...)
		} else {
			log().Info("async call finished", args...)
		}
		return value, err
	})
}

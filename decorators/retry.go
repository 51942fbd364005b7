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
	"math/rand/v2"
	"time"
)

const defaultJitterFactor = 0.3

// Permanent marks an error that Retry and Backoff must not retry.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	return e.err.Error()
}

func (e *permanentError) Unwrap() error {
	return e.err
}

func isPermanent(err error) bool {
	var permanent *permanentError
	return errors.As(err, &permanent)
}

// Retry calls fn until it succeeds, up to attempts times, and returns the
// last result.
func Retry[T any](attempts int, fn func() (T, error)) (T, error) {
	return retry(attempts, nil, fn)
}

// Backoff is Retry with an exponential delay between attempts: base,
// 2*base, 4*base, and so on, each extended by up to 30% random jitter.
func Backoff[T any](attempts int, base time.Duration, fn func() (T, error)) (T, error) {
	return retry(attempts, func(attempt int) time.Duration {
		delay := base * time.Duration(1<<(attempt-1))
		jitter := rand.Float64() * float64(delay) * defaultJitterFactor
		return delay + time.Duration(jitter)
	}, fn)
}

func retry[T any](attempts int, delay func(attempt int) time.Duration, fn func() (T, error)) (T, error) {
	attempts = max(attempts, 1)

	var value T
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && delay != nil {
			time.Sleep(delay(attempt))
		}
		value, err = fn()
		if err == nil || isPermanent(err) {
			return value, err
		}
		if attempt < attempts-1 {
			log().Warn("retrying after error",
				LogAttrDecorator, "retry",
				LogAttrAttempt, attempt+1,
				LogAttrError, err,
			)
		}
	}
	return value, err
}

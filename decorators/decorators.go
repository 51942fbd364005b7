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

// Package decorators is a library of ready-made decorators.
//
// Every decorator takes its configuration arguments first and the deferred
// function body last, so it can be named directly in a directive:
//
//	//decorate:with decorators.LogErrors("load user"), decorators.Retry(3)
//	func LoadUser(id string) (User, error) { ... }
//
// Async functions use the decorators whose body argument returns a
// *future.Future.
package decorators

import (
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	LogAttrDecorator  = "decorator"
	LogAttrName       = "name"
	LogAttrDurationMS = "duration_ms"
	LogAttrError      = "error"
	LogAttrAttempt    = "attempt"
	LogAttrPanic      = "panic"
	LogAttrKey        = "key"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used by every decorator in this package.
// A nil logger restores slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func log() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

func durationMS(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// MeasureTime logs how long fn took.
func MeasureTime[R any](name string, fn func() R) R {
	start := time.Now()
	defer func() {
		log().Info("call finished",
			LogAttrDecorator, "measure_time",
			LogAttrName, name,
			LogAttrDurationMS, durationMS(time.Since(start)),
		)
	}()
	return fn()
}

// LogErrors logs the error returned by fn, if any.
func LogErrors[T any](name string, fn func() (T, error)) (T, error) {
	value, err := fn()
	if err != nil {
		log().Error("call failed",
			LogAttrDecorator, "log_errors",
			LogAttrName, name,
			LogAttrError, err,
		)
	}
	return value, err
}

// Recover logs a panic raised by fn and then re-raises it.
func Recover[R any](name string, fn func() R) R {
	defer func() {
		if r := recover(); r != nil {
			log().Error("call panicked",
				LogAttrDecorator, "recover",
				LogAttrName, name,
				LogAttrPanic, r,
			)
			panic(r)
		}
	}()
	return fn()
}

// Validate runs check before fn and returns its error without calling fn.
func Validate[T any](check func() error, fn func() (T, error)) (T, error) {
	if err := check(); err != nil {
		var zero T
		return zero, err
	}
	return fn()
}

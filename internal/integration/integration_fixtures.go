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

//go:build decorate

package integration

import (
	"strings"
	"time"

	"go.decorate-lang.org/decorate/decorators"
)

// Layered records its decorators entering and leaving around the body.
//
//decorate:with traced("A"), traced("B"), traced("C")
func Layered() string {
	events.add("body")
	return "done"
}

//decorate:with transform_params = incrementBoth, transform_result = double, countCall
func compute(x, y int) int {
	return x + y
}

//decorate:with transform_result = double, countCall
func addDoubled(x, y int) int {
	return x + y
}

//decorate:with pre = events.add("pre"), post = record(result), traced("outer")
func Hooked(n int) int {
	events.add("body")
	return n * 3
}

//decorate:with post = record(n), traced("count")
func Count(words ...string) (n int) {
	n = len(words)
	return
}

//decorate:with transform_params = trimAll, traced("join")
func Join(sep string, parts ...string) string {
	return strings.Join(parts, sep)
}

//decorate:with traced[T]("first")
func First[T any](items []T) T {
	return items[0]
}

//decorate:with decorators.Retry(attempts)
func Flaky(attempts int, failures *int) (int, error) {
	if *failures > 0 {
		*failures--
		return 0, errFlaky
	}
	return 42, nil
}

// Lookup upper-cases key, caching the result per key.
//
//decorate:with "self.cache.Memoize"(decorators.Key("lookup", key)),
//decorate:with "self.count"
func (s *Store) Lookup(key string) (string, error) {
	s.loads++
	return strings.ToUpper(key), nil
}

//decorate:async decorators.Logged("fetch"), decorators.Timeout(timeout)
func Fetch(timeout, delay time.Duration) (string, error) {
	time.Sleep(delay)
	return "fetched", nil
}

//decorate:async transform_result = double, asyncTrace("outer"), asyncTrace("inner")
func Sum(a, b int) int {
	return a + b
}

//decorate:async decorators.Timeout(time.Second)
func Ping(fail bool) error {
	if fail {
		return decorators.Permanent(errPing)
	}
	return nil
}

//decorate:async asyncTrace("background")
func Background(done chan<- struct{}) {
	close(done)
}

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

// Package integration runs decorated functions end to end. The
// decorated forms in integration_fixtures_decorated.go are generated from
// integration_fixtures.go and checked in.
package integration

//go:generate go run go.decorate-lang.org/decorate/bin/decorate generate integration_fixtures.go

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.decorate-lang.org/decorate/decorators"
	"go.decorate-lang.org/decorate/future"
)

var (
	errFlaky = errors.New("flaky")
	errPing  = errors.New("ping failed")
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

var events = &recorder{}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// take returns the recorded events and clears them.
func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

var calls atomic.Int64

func traced[R any](name string, fn func() R) R {
	events.add(name + "_start")
	defer events.add(name + "_end")
	return fn()
}

func countCall[R any](fn func() R) R {
	calls.Add(1)
	return fn()
}

func asyncTrace[T any](name string, fn func() *future.Future[T]) *future.Future[T] {
	events.add(name)
	return fn()
}

func incrementBoth(x, y int) (int, int) {
	return x + 1, y + 1
}

func double(x int) int {
	return x * 2
}

func trimAll(sep string, parts ...string) (string, []string) {
	trimmed := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed = append(trimmed, strings.TrimSpace(part))
	}
	return sep, trimmed
}

func record(value any) {
	events.add(fmt.Sprint("post:", value))
}

type Store struct {
	cache   *decorators.Cache[string, string]
	loads   int
	counted int
}

func NewStore() *Store {
	return &Store{cache: decorators.NewCache[string, string](time.Minute)}
}

func (s *Store) count(fn func() (string, error)) (string, error) {
	s.counted++
	return fn()
}

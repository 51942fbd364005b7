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

// Package future provides the result cell that async decorated functions
// pass between their decorators.
//
// A decorated async function hands each decorator a func returning a
// *Future. The innermost decorator receives a future running the original
// body; outer decorators may observe, replace, or race it, and the function
// finally resolves the outermost future into its own results.
package future

import (
	"context"
	"errors"
	"fmt"
)

// Future is a one-shot result cell filled by a single goroutine. All
// methods are safe for concurrent use, and the result may be read any
// number of times.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error

	panicked   bool
	panicValue any
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Go runs fn in a new goroutine.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	go f.run(fn)
	return f
}

// Value runs fn in a new goroutine. The future never holds an error unless
// a decorator replaces it.
func Value[T any](fn func() T) *Future[T] {
	return Go(func() (T, error) {
		return fn(), nil
	})
}

// Err runs fn in a new goroutine.
func Err(fn func() error) *Future[struct{}] {
	return Go(func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// Do runs fn in a new goroutine.
func Do(fn func()) *Future[struct{}] {
	return Go(func() (struct{}, error) {
		fn()
		return struct{}{}, nil
	})
}

// Resolved returns a completed future holding value.
func Resolved[T any](value T) *Future[T] {
	f := newFuture[T]()
	f.value = value
	close(f.done)
	return f
}

// Failed returns a completed future holding err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	f.err = err
	close(f.done)
	return f
}

func (f *Future[T]) run(fn func() (T, error)) {
	defer close(f.done)
	defer func() {
		if r := recover(); r != nil {
			f.panicked = true
			f.panicValue = r
		}
	}()
	f.value, f.err = fn()
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get blocks until the result is available. If the goroutine panicked, Get
// panics with the same value.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	if f.panicked {
		panic(f.panicValue)
	}
	return f.value, f.err
}

// Await is Get with cancellation. It returns ctx.Err() if ctx is done
// before the result is available; the goroutine keeps running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.Get()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Value resolves a future whose function has no error result. An error
// placed in the future by a decorator is raised as a panic wrapped in
// *Error.
func (f *Future[T]) Value() T {
	value, err := f.Get()
	if err != nil {
		panic(&Error{err: err})
	}
	return value
}

// Wait resolves a future whose function has no results. Errors are raised
// as by Value.
func (f *Future[T]) Wait() {
	f.Value()
}

// Err resolves a future whose function returns only an error.
func (f *Future[T]) Err() error {
	_, err := f.Get()
	return err
}

// Error is the panic value used when a future resolved by Value or Wait
// holds an error.
type Error struct {
	err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("future: unhandled error: %v", e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// IsUnhandled reports whether a recovered panic value came from Value or
// Wait, returning the error it carried.
func IsUnhandled(recovered any) (error, bool) {
	err, ok := recovered.(error)
	if !ok {
		return nil, false
	}
	var futureErr *Error
	if errors.As(err, &futureErr) {
		return futureErr.err, true
	}
	return nil, false
}

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
	"sync"
	"time"
)

type debouncer struct {
	now func() time.Time

	mu   sync.Mutex
	last map[string]time.Time
}

var debounces = &debouncer{
	now:  time.Now,
	last: make(map[string]time.Time),
}

// admit records a call for key and reports whether it is outside the
// window of the previous admitted call.
func (d *debouncer) admit(key string, window time.Duration) (time.Duration, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	if last, ok := d.last[key]; ok {
		if elapsed := now.Sub(last); elapsed < window {
			return window - elapsed, false
		}
	}
	d.last[key] = now
	return 0, true
}

// Debounce calls fn unless a call with the same key ran less than window
// ago. Skipped calls return the zero value and false.
//
// Debounced calls share state by key across the whole process.
func Debounce[T any](key string, window time.Duration, fn func() T) (T, bool) {
	remaining, ok := debounces.admit(key, window)
	if !ok {
		log().Warn("call debounced",
			LogAttrDecorator, "debounce",
			LogAttrKey, key,
			"remaining_ms", durationMS(remaining),
		)
		var zero T
		return zero, false
	}
	log().Debug("debounced call admitted", LogAttrDecorator, "debounce", LogAttrKey, key)
	return fn(), true
}

// DebounceDefault is Debounce returning def for skipped calls. Unlike
// Debounce it has the shape of a plain decorator:
//
//	//decorate:with decorators.DebounceDefault("save", time.Second, false)
//	func Save() bool { ... }
func DebounceDefault[T any](key string, window time.Duration, def T, fn func() T) T {
	if value, ok := Debounce(key, window, fn); ok {
		return value
	}
	return def
}

// ResetDebounce forgets the last call for key, so the next call runs.
func ResetDebounce(key string) {
	debounces.mu.Lock()
	defer debounces.mu.Unlock()
	delete(debounces.last, key)
}

// ClearDebounce forgets the last call for every key.
func ClearDebounce() {
	debounces.mu.Lock()
	defer debounces.mu.Unlock()
	clear(debounces.last)
}

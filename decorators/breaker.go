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
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type BreakerState uint8

const (
	// Calls pass through.
	BreakerClosed BreakerState = iota
	// Calls are rejected until the timeout elapses.
	BreakerOpen
	// Calls pass through on trial; a failure reopens the breaker.
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return fmt.Sprintf("BreakerState(%d)", uint8(s))
	}
}

// Breaker is a circuit breaker shared by every call decorated with it.
type Breaker struct {
	name             string
	failureThreshold int
	successThreshold int
	timeout          time.Duration
	now              func() time.Time

	mu          sync.Mutex
	state       BreakerState
	failures    int
	successes   int
	lastFailure time.Time
}

// NewBreaker returns a closed breaker that opens after failureThreshold
// consecutive failures, and closes again after successThreshold successful
// trial calls once timeout has passed.
func NewBreaker(name string, failureThreshold, successThreshold int, timeout time.Duration) *Breaker {
	return &Breaker{
		name:             name,
		failureThreshold: max(failureThreshold, 1),
		successThreshold: max(successThreshold, 1),
		timeout:          timeout,
		now:              time.Now,
	}
}

func (b *Breaker) Name() string {
	return b.name
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset closes the breaker and clears its counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = BreakerClosed
	b.failures = 0
	b.successes = 0
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != BreakerOpen {
		return true
	}
	if b.now().Sub(b.lastFailure) < b.timeout {
		return false
	}
	b.state = BreakerHalfOpen
	b.successes = 0
	log().Info("circuit breaker half-open", LogAttrDecorator, "breaker", LogAttrName, b.name)
	return true
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		switch b.state {
		case BreakerHalfOpen:
			b.successes++
			if b.successes >= b.successThreshold {
				b.state = BreakerClosed
				b.failures = 0
				b.successes = 0
				log().Info("circuit breaker closed", LogAttrDecorator, "breaker", LogAttrName, b.name)
			}
		case BreakerClosed:
			b.failures = 0
		}
		return
	}

	b.failures++
	b.lastFailure = b.now()
	switch b.state {
	case BreakerClosed:
		if b.failures >= b.failureThreshold {
			b.state = BreakerOpen
			log().Error("circuit breaker opened",
				LogAttrDecorator, "breaker",
				LogAttrName, b.name,
				LogAttrError, err,
			)
		}
	case BreakerHalfOpen:
		b.state = BreakerOpen
		b.successes = 0
		log().Warn("circuit breaker reopened", LogAttrDecorator, "breaker", LogAttrName, b.name)
	}
}

// Guard calls fn unless b is open, in which case it returns an error
// wrapping ErrCircuitOpen.
func Guard[T any](b *Breaker, fn func() (T, error)) (T, error) {
	if !b.allow() {
		var zero T
		return zero, fmt.Errorf("%s: %w", b.name, ErrCircuitOpen)
	}
	value, err := fn()
	b.record(err)
	return value, err
}

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

package future_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.decorate-lang.org/decorate/future"
)

var errBoom = errors.New("boom")

func Test_Go_Value(t *testing.T) {
	f := future.Go(func() (int, error) {
		return 42, nil
	})

	value, err := f.Get()

	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func Test_Go_Error(t *testing.T) {
	f := future.Go(func() (string, error) {
		return "", errBoom
	})

	_, err := f.Get()

	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, f.Err(), errBoom)
}

func Test_Get_Repeatable(t *testing.T) {
	calls := 0
	f := future.Value(func() int {
		calls++
		return calls
	})

	assert.Equal(t, 1, f.Value())
	assert.Equal(t, 1, f.Value())
	assert.Equal(t, 1, calls)
}

func Test_Get_ConcurrentReaders(t *testing.T) {
	release := make(chan struct{})
	f := future.Value(func() string {
		<-release
		return "ready"
	})

	var wg sync.WaitGroup
	results := make([]string, 8)
	for ii := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[ii] = f.Value()
		}()
	}
	close(release)
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, "ready", got)
	}
}

func Test_Err_And_Do(t *testing.T) {
	ran := false
	done := future.Do(func() {
		ran = true
	})
	done.Wait()
	assert.True(t, ran)

	failed := future.Err(func() error {
		return errBoom
	})
	assert.ErrorIs(t, failed.Err(), errBoom)
}

func Test_Resolved_And_Failed(t *testing.T) {
	resolved := future.Resolved("cached")
	select {
	case <-resolved.Done():
	default:
		t.Fatal("Resolved future should be done")
	}
	assert.Equal(t, "cached", resolved.Value())

	failed := future.Failed[int](errBoom)
	value, err := failed.Get()
	assert.Zero(t, value)
	assert.ErrorIs(t, err, errBoom)
}

func Test_Value_PanicsOnError(t *testing.T) {
	f := future.Failed[int](errBoom)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := future.IsUnhandled(r)
		require.True(t, ok)
		assert.ErrorIs(t, err, errBoom)
	}()
	f.Value()
	t.Fatal("Value should have panicked")
}

func Test_IsUnhandled_OtherPanics(t *testing.T) {
	_, ok := future.IsUnhandled("plain string")
	assert.False(t, ok)

	_, ok = future.IsUnhandled(errBoom)
	assert.False(t, ok)
}

func Test_Get_RepanicsInAwaiter(t *testing.T) {
	f := future.Go(func() (int, error) {
		panic("exploded")
	})

	assert.PanicsWithValue(t, "exploded", func() {
		_, _ = f.Get()
	})
}

func Test_Await_Cancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	f := future.Value(func() int {
		<-release
		return 1
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func Test_Await_Completed(t *testing.T) {
	f := future.Resolved(7)

	value, err := f.Await(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, value)
}

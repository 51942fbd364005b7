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

package decorators_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/time/rate"

	"go.decorate-lang.org/decorate/decorators"
	"go.decorate-lang.org/decorate/future"
)

var errBoom = errors.New("boom")

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	decorators.SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() {
		decorators.SetLogger(nil)
	})
	return &buf
}

func Test_MeasureTime_LogsDuration(t *testing.T) {
	logs := captureLogs(t)

	got := decorators.MeasureTime("sum", func() int {
		return 1 + 2
	})

	assert.Equal(t, 3, got)
	assert.Contains(t, logs.String(), `"decorator":"measure_time"`)
	assert.Contains(t, logs.String(), `"name":"sum"`)
	assert.Contains(t, logs.String(), `"duration_ms":`)
}

func Test_LogErrors(t *testing.T) {
	logs := captureLogs(t)

	_, err := decorators.LogErrors("ok", func() (int, error) {
		return 1, nil
	})
	require.NoError(t, err)
	assert.Empty(t, logs.String())

	_, err = decorators.LogErrors("fail", func() (int, error) {
		return 0, errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, logs.String(), `"error":"boom"`)
}

func Test_Recover_LogsAndRepanics(t *testing.T) {
	logs := captureLogs(t)

	assert.PanicsWithValue(t, "exploded", func() {
		decorators.Recover("risky", func() int {
			panic("exploded")
		})
	})
	assert.Contains(t, logs.String(), `"panic":"exploded"`)
}

func Test_Validate(t *testing.T) {
	calls := 0
	body := func() (string, error) {
		calls++
		return "done", nil
	}

	_, err := decorators.Validate(func() error { return errBoom }, body)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, calls)

	got, err := decorators.Validate(func() error { return nil }, body)
	require.NoError(t, err)
	assert.Equal(t, "done", got)
	assert.Equal(t, 1, calls)
}

func Test_Retry_SucceedsAfterFailures(t *testing.T) {
	captureLogs(t)
	calls := 0

	got, err := decorators.Retry(3, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errBoom
		}
		return calls, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Equal(t, 3, calls)
}

func Test_Retry_GivesUp(t *testing.T) {
	captureLogs(t)
	calls := 0

	_, err := decorators.Retry(2, func() (int, error) {
		calls++
		return 0, errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, calls)
}

func Test_Retry_AtLeastOnce(t *testing.T) {
	calls := 0

	_, err := decorators.Retry(0, func() (int, error) {
		calls++
		return 0, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func Test_Retry_PermanentError(t *testing.T) {
	calls := 0

	_, err := decorators.Retry(5, func() (int, error) {
		calls++
		return 0, decorators.Permanent(errBoom)
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
	assert.Nil(t, decorators.Permanent(nil))
}

func Test_Backoff_Delays(t *testing.T) {
	captureLogs(t)
	calls := 0
	start := time.Now()

	_, err := decorators.Backoff(3, 5*time.Millisecond, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errBoom
		}
		return calls, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func Test_Key(t *testing.T) {
	assert.Equal(t, `["user",42]`, decorators.Key("user", 42))
	assert.Equal(t, decorators.Key("a", 1), decorators.Key("a", 1))
	assert.NotEqual(t, decorators.Key("a", 1), decorators.Key("a", "1"))
}

func Test_Key_Unencodable(t *testing.T) {
	ch := make(chan int)

	assert.NotEmpty(t, decorators.Key(ch))
}

func Test_Throttle(t *testing.T) {
	limiter := rate.NewLimiter(rate.Inf, 1)

	got, err := decorators.Throttle(context.Background(), limiter, func() (string, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func Test_Throttle_Cancelled(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0

	_, err := decorators.Throttle(ctx, limiter, func() (int, error) {
		calls++
		return 0, nil
	})

	assert.Error(t, err)
	assert.Equal(t, 0, calls)
}

func Test_Traced(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := provider.Tracer("test")

	_, err := decorators.Traced(context.Background(), tracer, "load", func() (int, error) {
		return 1, nil
	})
	require.NoError(t, err)
	_, err = decorators.Traced(context.Background(), tracer, "load", func() (int, error) {
		return 0, errBoom
	})
	require.ErrorIs(t, err, errBoom)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "load", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)

	var ids []string
	for _, span := range spans {
		for _, attr := range span.Attributes {
			if string(attr.Key) == decorators.AttrCallID {
				ids = append(ids, attr.Value.AsString())
			}
		}
	}
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func Test_Timeout_Expires(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	f := decorators.Timeout(10*time.Millisecond, func() *future.Future[int] {
		return future.Value(func() int {
			<-release
			return 1
		})
	})

	_, err := f.Get()
	assert.ErrorIs(t, err, decorators.ErrTimeout)
}

func Test_Timeout_Completes(t *testing.T) {
	f := decorators.Timeout(time.Second, func() *future.Future[int] {
		return future.Resolved(5)
	})

	assert.Equal(t, 5, f.Value())
}

func Test_Logged(t *testing.T) {
	logs := captureLogs(t)

	f := decorators.Logged("fetch", func() *future.Future[struct{}] {
		return future.Err(func() error {
			return errBoom
		})
	})

	assert.ErrorIs(t, f.Err(), errBoom)
	assert.Contains(t, logs.String(), `"msg":"async call failed"`)
	assert.Contains(t, logs.String(), `"name":"fetch"`)
}

package a

import "time"

func measure[R any](name string, fn func() R) R { return fn() }

func retry[T any](n int, d time.Duration, fn func() (T, error)) (T, error) {
	var value T
	var err error
	for range n {
		if value, err = fn(); err == nil {
			break
		}
		time.Sleep(d)
	}
	return value, err
}

type Service struct{ name string }

func (s *Service) wrap(fn func() string) string { return fn() }

//decorate:with measure("ok"), retry(3, time.Millisecond)
func Good() (int, error) {
	return 1, nil
}

//decorate:with "self.wrap"
func (s *Service) Name() string {
	return s.name
}

//decorate:with measure("fast")
//go:nosplit // want `E3000: Cannot decorate function marked //go:nosplit`
func Fast() int {
	return 1
}

//decorate:with "self.wrap" // want `E3004: Self path "self.wrap" requires a method with a named receiver`
func Plain() string {
	return ""
}

//decorate:with bogus = 1, measure("x") // want `E2001: Unknown config option "bogus"`
func Bogus() int {
	return 1
}

//decorate:with transform_params = shift, measure("y") // want `W4000: transform_params skipped: NoParams has no named parameters`
func NoParams() int {
	return 1
}

//decorate:with transform_params = shift, measure("z") // want `W4001: transform_params on Blank excludes parameter 2 \(_\)`
func Blank(x int, _ int) int {
	return x
}

//decorate:with measure("a"),
//decorate:with measure("b"(] // want `E1003: Unbalanced delimiter`
func Unbalanced() int {
	return 1
}

//decorate:with measure("init")
func init() {} // want `E3002: Cannot decorate init`

//decorate:async measure("async")
func Pair() (int, string) { // want `E3003: Async function Pair has unsupported results`
	return 0, ""
}

package example

import fut "go.decorate-lang.org/decorate/future"

var _ = fut.Resolved[int]

//decorate:async wrap
func Get() int {
	return 1
}

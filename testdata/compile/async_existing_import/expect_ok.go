package example

import fut "go.decorate-lang.org/decorate/future"

var _ = fut.Resolved[int]

func Get() int {
	return wrap(func() *fut.Future[int] {
		return fut.Value(func() int {
			return 1
		})
	}).Value()
}

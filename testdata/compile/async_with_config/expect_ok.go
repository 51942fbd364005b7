package example

import "go.decorate-lang.org/decorate/future"

func Sum(a, b int) int {
	return traced(func() *future.Future[int] {
		return future.Value(func() int {
			result := func() int {
				return timeout(d, func() *future.Future[int] {
					return future.Value(func() int {
						return a + b
					})
				}).Value()
			}()
			done(result)
			return result
		})
	}).Value()
}

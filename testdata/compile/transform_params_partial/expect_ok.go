package example

func Scale(x int, _ int, factors ...int) int {
	return deco(func() int {
		x, factors := tp(x, factors...)
		return func() int {
			return x * len(factors)
		}()
	})
}

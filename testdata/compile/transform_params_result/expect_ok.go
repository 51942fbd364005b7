package example

func compute(x, y int) int {
	return logExecution(func() int {
		x, y := shift(x, y)
		return double(func() int {
			return x + y
		}())
	})
}

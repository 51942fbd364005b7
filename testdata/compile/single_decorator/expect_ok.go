package example

// Add returns the sum of x and y.
func Add(x, y int) int {
	return measure(func() int {
		return x + y
	})
}

func Plain() int {
	return 0
}

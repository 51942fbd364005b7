package example

// Add returns the sum of x and y.
//
//decorate:with measure
func Add(x, y int) int {
	return x + y
}

func Plain() int {
	return 0
}

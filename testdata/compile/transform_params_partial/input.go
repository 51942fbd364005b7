package example

//decorate:with transform_params = tp, deco
func Scale(x int, _ int, factors ...int) int {
	return x * len(factors)
}

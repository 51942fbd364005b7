package example

//decorate:with transform_params = shift, transform_result = double, logExecution
func compute(x, y int) int {
	return x + y
}

package example

//decorate:async post = "done(result)", traced, timeout(d)
func Sum(a, b int) int {
	return a + b
}

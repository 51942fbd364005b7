package example

//decorate:with measure
//go:nosplit
func Fast() int {
	return 1
}

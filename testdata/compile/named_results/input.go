package example

//decorate:with post = "record(n, err)", trace
func Count(path string) (n int, err error) {
	n, err = scan(path)
	return
}

package example

//decorate:with post = "audit(result, result1, err)", trace
func Split(s string) (string, string, error) {
	return cut(s)
}

package example

//decorate:with transform_params = shift, log
func Now() int {
	return 1
}

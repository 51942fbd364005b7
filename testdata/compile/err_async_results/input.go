package example

//decorate:async a
func F() (int, string) {
	return 0, ""
}

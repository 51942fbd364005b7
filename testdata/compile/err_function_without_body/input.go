package example

//decorate:with a
func F() int

package example

//decorate:with before = setup(), measure
func F() {}

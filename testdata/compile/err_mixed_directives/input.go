package example

//decorate:with a
//decorate:async b
func F() {}

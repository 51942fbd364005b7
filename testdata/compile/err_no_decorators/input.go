package example

//decorate:with
func Empty() {}

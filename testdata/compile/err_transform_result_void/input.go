package example

//decorate:with transform_result = double, a
func F() {}

package example

//decorate:with "self.cache"
func F() {}

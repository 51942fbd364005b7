package example

//decorate:with a, b, c
func Run() {
	work()
}

package example

//decorate:async background
func Flush() {
	sync()
}

//decorate:async retry(3)
func Ping() error {
	return dial()
}

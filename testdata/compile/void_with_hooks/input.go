package example

//decorate:with pre = "started = true", post = <-done, run
func Tick() {
	step()
}

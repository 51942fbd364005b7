package example

// Work does the work.
//
//decorate:with first, // outermost
//decorate:with second(1),
//decorate:with third
func Work() {
	do()
}

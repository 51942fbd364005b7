package example

// Work does the work.
func Work() {
	first(func() {
		second(1, func() {
			third(func() {
				do()
			})
		})
	})
}

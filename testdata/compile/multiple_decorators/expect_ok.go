package example

func Run() {
	a(func() {
		b(func() {
			c(func() {
				work()
			})
		})
	})
}

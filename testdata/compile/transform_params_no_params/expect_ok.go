package example

func Now() int {
	return log(func() int {
		return func() int {
			return 1
		}()
	})
}

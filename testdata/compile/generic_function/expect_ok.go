package example

func Identity[T any](v T) T {
	return measure[T](func() T {
		return pair[T, string]("id", func() T {
			return v
		})
	})
}

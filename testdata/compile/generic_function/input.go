package example

//decorate:with measure[T], pair[T, string]("id")
func Identity[T any](v T) T {
	return v
}

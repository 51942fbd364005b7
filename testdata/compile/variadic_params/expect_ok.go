package example

func Join(sep string, parts ...string) string {
	return log(func() string {
		sep, parts := normalize(sep, parts...)
		return func() string {
			return strings.Join(parts, sep)
		}()
	})
}

package example

func Split(s string) (string, string, error) {
	return trace(func() (string, string, error) {
		result, result1, err := func() (string, string, error) {
			return cut(s)
		}()
		audit(result, result1, err)
		return result, result1, err
	})
}

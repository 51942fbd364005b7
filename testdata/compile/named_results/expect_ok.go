package example

func Count(path string) (n int, err error) {
	return trace(func() (n int, err error) {
		n, err = func() (n int, err error) {
			n, err = scan(path)
			return
		}()
		record(n, err)
		return n, err
	})
}

package example

func (c *Counter) Inc() int {
	return c.guard(func() int {
		c.hits.Add(1)
		return func() int {
			c.n++
			return c.n
		}()
	})
}

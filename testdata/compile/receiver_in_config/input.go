package example

//decorate:with pre = self.hits.Add(1), "self.guard"
func (c *Counter) Inc() int {
	c.n++
	return c.n
}

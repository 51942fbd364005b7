package example

//decorate:with "self.cache.Memoize"(id), "self.limiter.Throttle"
func (s *Service) Get(id string) (string, error) {
	return s.load(id)
}

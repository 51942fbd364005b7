package example

func (s *Service) Get(id string) (string, error) {
	return s.cache.Memoize(id, func() (string, error) {
		return s.limiter.Throttle(func() (string, error) {
			return s.load(id)
		})
	})
}

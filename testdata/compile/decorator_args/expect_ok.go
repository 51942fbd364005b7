package example

func Load(id string) (User, error) {
	return retry.With(3, time.Second, func() (User, error) {
		return cache.Key("user", id, func() (User, error) {
			return noArgs(func() (User, error) {
				return fetch(id)
			})
		})
	})
}

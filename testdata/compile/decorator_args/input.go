package example

//decorate:with retry.With(3, time.Second), cache.Key("user", id), noArgs()
func Load(id string) (User, error) {
	return fetch(id)
}

package example

//decorate:async logCall, timeout(time.Second)
func Load(id string) (Item, error) {
	return fetch(id)
}

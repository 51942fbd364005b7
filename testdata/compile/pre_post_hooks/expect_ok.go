package example

func Fetch(id string) (Item, error) {
	return logCall(func() (Item, error) {
		hits.Add(1)
		result, err := func() (Item, error) {
			return load(id)
		}()
		log.Println(result, err)
		return result, err
	})
}

package example

//decorate:with pre = hits.Add(1), post = "log.Println(result, err)", logCall
func Fetch(id string) (Item, error) {
	return load(id)
}

package example

// Load loads the item with the given id.
//
//decorate:with logged
func Load(id string) string {
	return id
}

// Save stores an item.
//
// Saving is idempotent.
//
//decorate:with first,
//decorate:with second
func Save(item string) {
	store(item)
}

//decorate:with logged
func Undocumented() int {
	return 1
}

// Ping is async.
//
//decorate:async check
func Ping() error {
	return nil
}

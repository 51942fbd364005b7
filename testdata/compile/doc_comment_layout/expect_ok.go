package example

import "go.decorate-lang.org/decorate/future"

// Load loads the item with the given id.
func Load(id string) string {
	return logged(func() string {
		return id
	})
}

// Save stores an item.
//
// Saving is idempotent.
func Save(item string) {
	first(func() {
		second(func() {
			store(item)
		})
	})
}

func Undocumented() int {
	return logged(func() int {
		return 1
	})
}

// Ping is async.
func Ping() error {
	return check(func() *future.Future[struct{}] {
		return future.Err(func() error {
			return nil
		})
	}).Err()
}

package example

import "go.decorate-lang.org/decorate/future"

func Flush() {
	background(func() *future.Future[struct{}] {
		return future.Do(func() {
			sync()
		})
	}).Wait()
}

func Ping() error {
	return retry(3, func() *future.Future[struct{}] {
		return future.Err(func() error {
			return dial()
		})
	}).Err()
}

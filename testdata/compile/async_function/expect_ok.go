package example

import "go.decorate-lang.org/decorate/future"

func Load(id string) (Item, error) {
	return logCall(func() *future.Future[Item] {
		return timeout(time.Second, func() *future.Future[Item] {
			return future.Go(func() (Item, error) {
				return fetch(id)
			})
		})
	}).Get()
}

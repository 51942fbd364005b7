package example

func Tick() {
	run(func() {
		started = true
		func() {
			step()
		}()
		<-done
	})
}

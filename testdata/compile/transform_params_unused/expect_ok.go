package example

func Scale(factor float64, _ int, unused string) float64 {
	return log(func() float64 {
		factor, _ := clamp(factor, unused)
		return func() float64 {
			return factor * 2
		}()
	})
}

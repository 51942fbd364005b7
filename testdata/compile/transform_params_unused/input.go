package example

//decorate:with transform_params = clamp, log
func Scale(factor float64, _ int, unused string) float64 {
	return factor * 2
}

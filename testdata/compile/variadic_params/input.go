package example

//decorate:with transform_params = normalize, log
func Join(sep string, parts ...string) string {
	return strings.Join(parts, sep)
}

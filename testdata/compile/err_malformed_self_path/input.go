package example

//decorate:with "other.field"
func (s *S) F() {}

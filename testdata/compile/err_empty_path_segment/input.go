package example

//decorate:with measure,
//decorate:with "self..field"
func (s *S) F() {}

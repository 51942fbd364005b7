package main

//decorate:with measure
func main() {}

//decorate:with measure
func init() {}

//decorate:with measure
func helper() {}

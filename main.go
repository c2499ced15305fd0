package main

import "github.com/gaurav-prasanna/articlescore/cmd"

func main() {
	cmd.Execute()
}

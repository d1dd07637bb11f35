package main

import "github.com/pelicanml/pelican/cmd"

func main() {
	cmd.Execute()
}

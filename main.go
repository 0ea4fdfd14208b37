package main

import "github.com/gocfd2d/fvm2d/cmd"

func main() {
	cmd.Execute()
}

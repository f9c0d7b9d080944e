package main

import "github.com/zizip/droid-cli/cmd"

func main() {
	cmd.Execute()
}

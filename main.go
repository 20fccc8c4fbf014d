package main

import "github.com/notargets/godive/cmd"

func main() {
	cmd.Execute()
}

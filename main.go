package main

import "github.com/tacusci/rawforge/cmd"

func main() {
	cmd.Execute()
}

package main

import "mediaminder/cmd/cli/command"

func main() {
	command.Execute()
}

package main

import "github.com/K0NGR3SS/critfindings/commands"

func main() {
	commands.Execute()
}

package main

import "github.com/Conceptual-Machines/chordbook-api/internal/cli"

func main() {
	cli.Execute()
}

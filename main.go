package main

import "github.com/debemdeboas/msgboard/internal/cli"

func main() {
	cli.Execute()
}

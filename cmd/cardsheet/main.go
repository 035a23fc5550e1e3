package main

import "github.com/youruser/cardsheet/internal/cli"

func main() {
	cli.Execute()
}

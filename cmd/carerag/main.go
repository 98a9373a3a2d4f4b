package main

import "carerag/internal/cli"

func main() {
	cli.Execute()
}

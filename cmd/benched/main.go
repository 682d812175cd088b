package main

import "github.com/mcoot/benched/internal/cli"

func main() {
	cli.Execute()
}

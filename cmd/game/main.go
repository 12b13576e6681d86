package main

import "github.com/tatianab/researcher-life/internal/cli"

func main() {
	cli.Execute()
}

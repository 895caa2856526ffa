package main

import "github.com/aalvaropc/domscan/internal/cli"

func main() {
	cli.Execute()
}

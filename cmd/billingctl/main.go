package main

import "medibill/internal/cli"

func main() {
	cli.Execute()
}

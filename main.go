package main

import "echopaint/internal/cli"

func main() {
	cli.Execute()
}

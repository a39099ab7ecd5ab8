package main

import "paperflow/internal/cli"

func main() {
	cli.Execute()
}

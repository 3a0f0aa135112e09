package main

import "batch-sender/cmd/batch-cli/cmd"

func main() {
	cmd.Execute()
}

package main

import "scrivano/cmd/scrivano-cli/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/deploymenttheory/go-mbr/cmd"

func main() {
	cmd.Execute()
}

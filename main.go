package main

import "github.com/notargets/macflow/cmd"

func main() {
	cmd.Execute()
}

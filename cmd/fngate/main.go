package main

import "github.com/fn-gate/fngate/cmd/fngate/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/arl/go-cavemesh/cmd/cavemesh/cmd"

func main() {
	cmd.Execute()
}

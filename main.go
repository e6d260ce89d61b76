package main

import "github.com/hance08/payledger/cmd"

func main() {
	cmd.Execute()
}

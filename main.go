package main

import "github.com/Daniel-Anker-Hermansen/cpfuzz/cmd"

func main() {
	cmd.Execute()
}

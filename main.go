package main

import "github.com/Beastly713/matryoshka/cmd"

func main() {
	cmd.Execute()
}

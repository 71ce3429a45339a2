package main

import "github.com/LiterallyKirby/Magolor/cmd"

func main() {
	cmd.Execute()
}

package main

import (
	"os"
	"rolec/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

package main

import (
	"os"
)

func main() {
	cmd := newCmdRoot()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

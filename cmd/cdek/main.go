package main

import (
	"os"
)

func main() {
	cmd := newRootCmd(newApp(os.Stdout, os.Stderr))
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

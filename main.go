package main

import (
	"os"

	"github.com/abhisek/prepiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

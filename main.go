package main

import (
	"os"

	"github.com/Gurkenlor3nz/vokaba/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

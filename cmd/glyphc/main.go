package main

import (
	"os"

	"github.com/glyphlang/glyphc/cmd/glyphc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

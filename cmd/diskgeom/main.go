package main

import (
	"os"

	"github.com/diskfs/go-diskgeom/cmd/diskgeom/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

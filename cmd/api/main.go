package main

import (
	"os"

	"github.com/mhagyesh07/ITCC-System/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

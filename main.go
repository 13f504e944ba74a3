package main

import (
	"os"

	"github.com/getlawrence/hooklog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/vocabtreasury/vocabtreasury/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/skeinlab/skein/internal/skeinctl/cmd"
)

func main() {
	command := cmd.NewDefaultSkeinCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

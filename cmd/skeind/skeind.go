package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/skeinlab/skein/internal/skeind"
)

func main() {
	command := skeind.NewSkeindCommand("skeind")
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

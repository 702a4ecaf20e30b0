// Package skeind assembles and runs the skein daemon.
package skeind

import (
	"github.com/skeinlab/skein/internal/skeind/config"
)

// Run launches the configured API server and blocks until shutdown.
func Run(cfg *config.Config) error {
	server, err := createAPIServer(cfg)
	if err != nil {
		return err
	}

	return server.PrepareRun().Run()
}

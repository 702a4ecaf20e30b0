// Package server provides the generic gin-based HTTP API server used by skeind.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/skeinlab/skein/internal/pkg/core"
	"github.com/skeinlab/skein/pkg/logger"
	"github.com/skeinlab/skein/pkg/version"
)

// Config holds the settings of the generic API server.
type Config struct {
	Mode            string
	Addr            string
	Healthz         bool
	EnableProfiling bool
	Middlewares     []string
}

// CompletedConfig is a Config with defaults applied.
type CompletedConfig struct {
	*Config
}

// NewConfig returns a Config with sane defaults.
func NewConfig() *Config {
	return &Config{
		Mode:    gin.ReleaseMode,
		Addr:    "127.0.0.1:11810",
		Healthz: true,
	}
}

// Complete fills in any fields that can be derived and returns the result.
func (c *Config) Complete() CompletedConfig {
	if c.Mode == "" {
		c.Mode = gin.ReleaseMode
	}
	return CompletedConfig{c}
}

// New builds a GenericAPIServer from the completed config.
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	gin.SetMode(c.Mode)

	s := &GenericAPIServer{
		Engine:          gin.New(),
		addr:            c.Addr,
		healthz:         c.Healthz,
		enableProfiling: c.EnableProfiling,
	}
	s.installAPIs()

	return s, nil
}

// GenericAPIServer wraps a gin engine behind a net/http server.
type GenericAPIServer struct {
	*gin.Engine

	addr            string
	healthz         bool
	enableProfiling bool

	insecureServer *http.Server
}

func (s *GenericAPIServer) installAPIs() {
	if s.healthz {
		s.GET("/healthz", func(c *gin.Context) {
			core.WriteResponse(c, nil, map[string]string{"status": "ok"})
		})
	}

	s.GET("/version", func(c *gin.Context) {
		core.WriteResponse(c, nil, version.Get())
	})

	if s.enableProfiling {
		pprof.Register(s.Engine)
	}
}

// Run starts serving and blocks until the listener fails or is closed.
func (s *GenericAPIServer) Run() error {
	s.insecureServer = &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("[Server] start to listening on %s", s.addr)
	if err := s.insecureServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	logger.Info("[Server] server on %s stopped", s.addr)
	return nil
}

// Close gracefully drains in-flight requests, then shuts the server down.
func (s *GenericAPIServer) Close() {
	if s.insecureServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.insecureServer.Shutdown(ctx); err != nil {
		logger.Warn("[Server] shutdown failed: %v", err)
	}
}

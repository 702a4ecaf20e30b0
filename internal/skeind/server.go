package skeind

import (
	"context"
	"log"

	genericapiserver "github.com/skeinlab/skein/internal/pkg/server"
	"github.com/skeinlab/skein/internal/skeind/config"
	"github.com/skeinlab/skein/internal/skeind/handler/middleware"
	"github.com/skeinlab/skein/internal/skeind/notify"
	"github.com/skeinlab/skein/internal/skeind/service/threads"
	"github.com/skeinlab/skein/pkg/http/shutdown"
	"github.com/skeinlab/skein/pkg/http/shutdown/posixsignal"
	"github.com/skeinlab/skein/pkg/logger"
)

type apiServer struct {
	gs               *shutdown.GracefulShutdown
	genericAPIServer *genericapiserver.GenericAPIServer

	threadsModule *threads.Module
	hub           *notify.Hub
	authConfig    *middleware.AuthConfig
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	genericConfig := buildGenericConfig(cfg)

	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	// Invalidation hub first so the threads module can publish into it.
	hub := notify.NewHub()

	threadsCfg := &threads.Config{
		StoreType:  cfg.Store.Type,
		BoltDBPath: cfg.Store.BoltDBPath,
		HintTTL:    cfg.Misc.HintTTL,
	}
	threadsModule, err := threadsCfg.Complete().New(context.Background(), threads.Dependencies{
		Notifier: hub,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("[Skeind] Threads module initialized successfully (store=%s)", cfg.Store.Type)

	server := &apiServer{
		gs:               gs,
		genericAPIServer: genericServer,
		threadsModule:    threadsModule,
		hub:              hub,
		authConfig: &middleware.AuthConfig{
			Enabled: cfg.Auth.Enabled,
			Token:   cfg.Auth.Token,
		},
	}

	return server, nil
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	initRouter(s.genericAPIServer.Engine, &routerDeps{
		threadService: s.threadsModule.Service,
		hintStore:     s.threadsModule.Hints,
		hub:           s.hub,
		authConfig:    s.authConfig,
	})

	s.gs.AddShutdownCallback(shutdown.Func(func(string) error {
		// Close threads module (BoltDB handle if any).
		if s.threadsModule != nil {
			if err := s.threadsModule.Close(); err != nil {
				logger.Warn("[Skeind] threads module close failed: %v", err)
			}
		}
		s.genericAPIServer.Close()
		return nil
	}))
	return preparedAPIServer{s}
}

func (s preparedAPIServer) Run() error {
	// start shutdown managers
	if err := s.gs.Start(); err != nil {
		log.Fatalf("start shutdown manager failed: %s", err.Error())
	}

	return s.genericAPIServer.Run()
}

func buildGenericConfig(cfg *config.Config) *genericapiserver.Config {
	genericConfig := genericapiserver.NewConfig()
	genericConfig.Addr = cfg.Serving.Addr()
	genericConfig.EnableProfiling = cfg.Misc.EnablePprof
	return genericConfig
}

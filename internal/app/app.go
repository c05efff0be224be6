package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	httpHandler "github.com/anthanhphan/go-object-store/internal/adapter/inbound/http"
	"github.com/anthanhphan/go-object-store/internal/adapter/outbound/badgerkv"
	"github.com/anthanhphan/go-object-store/internal/adapter/outbound/heapgauge"
	"github.com/anthanhphan/go-object-store/internal/adapter/outbound/memkv"
	"github.com/anthanhphan/go-object-store/internal/adapter/outbound/rediskv"
	"github.com/anthanhphan/go-object-store/internal/config"
	"github.com/anthanhphan/go-object-store/internal/port"
	"github.com/anthanhphan/go-object-store/internal/service"
	"github.com/anthanhphan/gosdk/logger"
)

type App struct {
	cfg     *config.Config
	server  *httpHandler.Server
	backend port.KeyValueStore
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Backend adapter, selected by config. All three satisfy the same
	// capability contract, so the service is wired identically either way.
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}

	// 4. Services
	svc := service.NewStoreService(cfg, backend, heapgauge.New())

	// 5. HTTP Server
	httpServer := httpHandler.NewServer(cfg, svc)

	return &App{
		cfg:     cfg,
		server:  httpServer,
		backend: backend,
	}, nil
}

// newBackend constructs the configured key/value storage adapter.
func newBackend(cfg *config.Config) (port.KeyValueStore, error) {
	switch cfg.Backend.Type {
	case config.BackendMemory:
		return memkv.New(), nil
	case config.BackendBadger:
		backend, err := badgerkv.New(cfg.Backend.Badger)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger backend: %w", err)
		}
		return backend, nil
	case config.BackendRedis, "":
		backend, err := rediskv.New(context.Background(), cfg.Backend.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect redis backend: %w", err)
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Backend.Type)
	}
}

func (a *App) Run() error {
	logger.Infow("Object store starting", "addr", a.cfg.Server.Addr, "backend", a.cfg.Backend.Type)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("Server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down object store")
	if err := a.server.Stop(context.Background()); err != nil {
		logger.Errorw("Server shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	if closer, ok := a.backend.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Errorw("Backend close error", "error", err.Error())
		}
	}

	return runErr
}

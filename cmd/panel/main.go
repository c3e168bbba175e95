package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/led-remote/internal/config"
	"github.com/rickgao/led-remote/internal/connection"
	"github.com/rickgao/led-remote/internal/indicator"
	"github.com/rickgao/led-remote/internal/panel"
	"github.com/rickgao/led-remote/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/panel.yaml", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		config.LogConfig{}.NewLogger(os.Stderr).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up structured logging
	logger := cfg.Log.NewLogger(os.Stdout)
	logger = logger.With("service", "panel")
	logger.Info("starting panel",
		version.Attr(),
		"config", *configPath,
		"device_host", cfg.Device.Host,
	)

	gin.SetMode(gin.ReleaseMode)

	// Create context with cancellation
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	board := indicator.NewBoard(logger)

	bridge := connection.NewBridge(connection.BridgeConfig{
		Host: cfg.Device.Host,
		Client: connection.ClientConfig{
			HandshakeTimeout: cfg.Bridge.HandshakeTimeout,
			PingInterval:     cfg.Bridge.PingInterval,
			PingTimeout:      cfg.Bridge.PingTimeout,
			WriteTimeout:     cfg.Bridge.WriteTimeout,
			BufferSize:       cfg.Bridge.BufferSize,
		},
	}, board, connection.WithLogger(logger))

	srv, err := panel.NewServer(board, bridge, logger)
	if err != nil {
		logger.Error("failed to create panel server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.Panel.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end when the process is signalled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	if err := bridge.Start(ctx); err != nil {
		logger.Error("failed to start bridge", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting panel server", "addr", cfg.Panel.Listen)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := bridge.Stop(shutdownCtx); err != nil {
			logger.Warn("bridge stop", "error", err)
		}
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("panel stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("panel stopped")
}

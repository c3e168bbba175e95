package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/led-remote/internal/config"
	"github.com/rickgao/led-remote/internal/device"
	"github.com/rickgao/led-remote/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/panel.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err == nil {
		err = cfg.ValidateSimulator()
	}
	if err != nil {
		config.LogConfig{}.NewLogger(os.Stderr).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := cfg.Log.NewLogger(os.Stdout).With("service", "device")
	logger.Info("starting device simulator",
		version.Attr(),
		"listen", cfg.Simulator.Listen,
		"udp_listen", cfg.Simulator.UDPListen,
	)

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := device.NewServer(device.NewStrip(), logger)

	httpServer := &http.Server{
		Addr:              cfg.Simulator.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting websocket server", "addr", cfg.Simulator.Listen)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return srv.ListenUDP(gctx, cfg.Simulator.UDPListen)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Hijacked WebSocket connections are not tracked by Shutdown.
		srv.Close()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("device simulator stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("device simulator stopped")
}

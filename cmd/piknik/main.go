package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/piknikapp/piknik/internal/config"
	"github.com/piknikapp/piknik/internal/logging"
	"github.com/piknikapp/piknik/internal/registry"
	"github.com/piknikapp/piknik/internal/web"
	"github.com/piknikapp/piknik/internal/web/static"
	"github.com/piknikapp/piknik/internal/web/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	reg := registry.New(registry.SystemClock(), cfg.RoomTTL, logger)
	server := web.NewServer(reg, templates.FS, static.FS, logger, cfg.DefaultLang)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/snmishra/xcircuit-qt-sub002/internal/api"
	"github.com/snmishra/xcircuit-qt-sub002/internal/config"
	"github.com/snmishra/xcircuit-qt-sub002/internal/document"
	"github.com/snmishra/xcircuit-qt-sub002/internal/keybind"
	"github.com/snmishra/xcircuit-qt-sub002/internal/textmetrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	reg := document.NewRegistry()
	env := &document.Env{Objects: reg, Text: textmetrics.New(cfg.TextUnitsPerPixel)}
	sample, err := document.NewSample(reg, env)
	if err != nil {
		slog.Error("build sample library", "error", err)
		os.Exit(1)
	}
	slog.Info("sample loaded", "page", sample.Page.ID, "objects", reg.Len())

	keys := keybind.NewTable()
	n, err := keybind.LoadDefaults(keys)
	if err != nil {
		slog.Error("load key bindings", "error", err)
		os.Exit(1)
	}
	slog.Info("key bindings loaded", "count", n)

	server := api.NewServer(env, keys, api.Options{
		Snap:       cfg.Snap(),
		View:       cfg.View(),
		PinPointOn: cfg.PinPointOn,
		Origins:    cfg.Origins(),
		MaxUpload:  cfg.MaxUploadMB << 20,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

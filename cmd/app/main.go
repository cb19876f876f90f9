// Package main runs the local liftbook session: it loads the persisted
// log, serves the REST/WebSocket API for the UI and keeps the log
// reconciled with the remote slot in the background.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/liftbook/liftbook/cmd/app/handlers"
	"github.com/liftbook/liftbook/internal/config"
	"github.com/liftbook/liftbook/internal/localstore"
	"github.com/liftbook/liftbook/internal/logging"
	"github.com/liftbook/liftbook/internal/session"
	syncpkg "github.com/liftbook/liftbook/internal/sync"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadApp(*configPath)
	if err != nil {
		logging.Error("invalid configuration", err, nil)
		os.Exit(1)
	}
	logging.Init(os.Stdout, parseLevel(cfg.LogLevel))

	adapter, err := localstore.Open(cfg.DataDir)
	if err != nil {
		logging.Error("failed to open local store", err, logging.Fields{"data_dir": cfg.DataDir})
		os.Exit(1)
	}
	defer adapter.Close()

	store := session.NewStore(adapter)
	logging.Info("log store loaded", logging.Fields{"entries": store.Len(), "units": string(store.Units())})

	hub := NewWSHub()
	go hub.Run()
	defer hub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var orchestrator *syncpkg.Orchestrator
	if cfg.Remote.BaseURL != "" {
		client := syncpkg.NewHTTPClient(syncpkg.HTTPClientConfig{
			BaseURL: cfg.Remote.BaseURL,
			Timeout: cfg.Remote.Timeout.Std(),
		})
		orchestrator = syncpkg.NewOrchestrator(store, client, syncpkg.Config{
			Interval: cfg.Sync.Interval.Std(),
			Events:   hub,
		})
		orchestrator.Start(ctx)
		defer orchestrator.Stop()
	} else {
		logging.Info("no remote configured, running offline", nil)
	}

	mux := http.NewServeMux()
	handlers.NewLogHandler(store).Register(mux)
	handlers.NewStatsHandler(store).Register(mux)
	if orchestrator != nil {
		handlers.NewSyncHandler(orchestrator).Register(mux)
	} else {
		handlers.NewSyncHandler(nil).Register(mux)
	}
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"liftbook-app"}`))
	})

	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	logging.Info("liftbook app listening", logging.Fields{"addr": cfg.ListenAddr})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Error("server exited", err, nil)
		os.Exit(1)
	}
}

func parseLevel(level string) logging.Level {
	switch level {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

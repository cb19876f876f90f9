// Package main runs the remote sync endpoint: a single-slot snapshot
// server speaking the GET/POST /sync contract over a pluggable blob
// store.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/liftbook/liftbook/internal/config"
	"github.com/liftbook/liftbook/internal/logging"
	"github.com/liftbook/liftbook/internal/remote"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		logging.Error("invalid configuration", err, nil)
		os.Exit(1)
	}
	logging.Init(os.Stdout, parseLevel(cfg.LogLevel))

	store, err := buildStore(cfg)
	if err != nil {
		logging.Error("failed to build blob store", err, logging.Fields{"backend": cfg.Store.Backend})
		os.Exit(1)
	}
	defer store.Close()

	mux := http.NewServeMux()
	remote.NewHandler(store).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"liftbook-server"}`))
	})

	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	logging.Info("liftbook sync server listening", logging.Fields{
		"addr":    cfg.ListenAddr,
		"backend": cfg.Store.Backend,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Error("server exited", err, nil)
		os.Exit(1)
	}
}

func buildStore(cfg *config.ServerConfig) (remote.BlobStore, error) {
	switch cfg.Store.Backend {
	case "memory":
		return remote.NewMemoryBlobStore(), nil
	case "s3":
		return remote.NewS3BlobStore(context.Background(), remote.S3BlobStoreConfig{
			Bucket:          cfg.Store.S3.Bucket,
			Region:          cfg.Store.S3.Region,
			Endpoint:        cfg.Store.S3.Endpoint,
			AccessKeyID:     cfg.Store.S3.AccessKeyID,
			SecretAccessKey: cfg.Store.S3.SecretAccessKey,
			Prefix:          cfg.Store.S3.Prefix,
			UsePathStyle:    cfg.Store.S3.UsePathStyle,
		})
	default:
		return remote.NewFileBlobStore(cfg.Store.Path)
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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperjump/paperscope/internal/catalog"
	"github.com/hyperjump/paperscope/internal/server"
	"github.com/hyperjump/paperscope/internal/watcher"
	"github.com/hyperjump/paperscope/pkg/utils"
	"go.uber.org/zap"
)

func runStub(args []string) {
	fs := flag.NewFlagSet("stub", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	catalogPath := fs.String("catalog", "", "catalog YAML file (default: built-in catalog)")
	port := fs.Int("port", 0, "listen port")
	watch := fs.Bool("watch", false, "reload the catalog when the file changes")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *catalogPath != "" {
		cfg.Stub.CatalogPath = *catalogPath
	}
	if *port != 0 {
		cfg.Stub.Port = *port
	}
	watchMode := cfg.Stub.Watch || *watch

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("catalog", cfg.Stub.CatalogPath),
		zap.Bool("debug", debugMode),
	)

	store := catalog.NewStore(logger)
	if err := store.Load(cfg.Stub.CatalogPath); err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if watchMode {
		if cfg.Stub.CatalogPath == "" {
			logger.Warn("watch ignored: the built-in catalog has no file to watch")
		} else {
			watchSvc := watcher.NewWatcher(
				[]string{cfg.Stub.CatalogPath},
				func(path string) {
					if err := store.Reload(); err != nil {
						logger.Warn("catalog reload failed, keeping previous catalog", zap.String("path", path), zap.Error(err))
					}
				},
				watcher.WithLogger(logger),
			)
			if err := watchSvc.Start(watchCtx); err != nil {
				logger.Fatal("Failed to start watcher", zap.Error(err))
			}
			defer watchSvc.Stop()
		}
	}

	srv := server.NewServer(store, &cfg.Stub, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

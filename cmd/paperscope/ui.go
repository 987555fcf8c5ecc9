package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hyperjump/paperscope/internal/client"
	"github.com/hyperjump/paperscope/internal/controller"
	"github.com/hyperjump/paperscope/internal/models"
	"github.com/hyperjump/paperscope/internal/ui"
	"github.com/hyperjump/paperscope/pkg/utils"
	"go.uber.org/zap"
)

// runUI starts the interactive client. The terminal belongs to the UI, so logs
// only go to log.file from the config.
func runUI(args []string) {
	fs := flag.NewFlagSet("ui", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	backend := fs.String("backend", "", "backend base URL")
	debug := fs.Bool("debug", false, "enable debug logging to log.file")
	_ = fs.Parse(args)

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewFileLogger(cfg.Log.File, cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	baseURL := cfg.ResolveBaseURL(*backend)
	logger.Info("starting ui",
		zap.String("config_path", resolvedConfigPath),
		zap.String("backend", baseURL),
	)

	c := client.New(baseURL, client.WithLogger(logger))
	app := ui.NewApp(ui.AppConfig{
		Predict: controller.NewPrediction(c,
			models.PredictRequest{Text: cfg.UI.DefaultText, TopK: cfg.UI.DefaultTopK}, logger),
		Recommend: controller.NewRecommendation(c,
			models.RecommendRequest{Query: cfg.UI.DefaultQuery, K: cfg.UI.DefaultTopK}, logger),
		BaseURL:  baseURL,
		BarWidth: cfg.UI.BarWidth,
		Logger:   logger,
	})

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "UI failed: %v\n", err)
		os.Exit(1)
	}
}

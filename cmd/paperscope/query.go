package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hyperjump/paperscope/internal/cli"
	"github.com/hyperjump/paperscope/internal/client"
	"github.com/hyperjump/paperscope/internal/config"
	"github.com/hyperjump/paperscope/internal/controller"
	"github.com/hyperjump/paperscope/internal/extract"
	"github.com/hyperjump/paperscope/internal/models"
	"github.com/hyperjump/paperscope/pkg/utils"
	"go.uber.org/zap"
)

var (
	// errRequestFailed is returned after a failure has already been written to the output.
	errRequestFailed = errors.New("request failed")
	// errInputRejected is returned when the submit gate is closed; nothing is sent.
	errInputRejected = errors.New("input rejected")
)

const (
	predictUsage   = "Usage: paperscope predict [flags] <text...>"
	recommendUsage = "Usage: paperscope recommend [flags] <query...>"
)

// queryFlags are the flags shared by the one-shot commands.
type queryFlags struct {
	configPath *string
	backend    *string
	output     *string
	debug      *bool
}

func registerQueryFlags(fs *flag.FlagSet, cfgPath string) queryFlags {
	return queryFlags{
		configPath: fs.String("config", cfgPath, "Config file path"),
		backend:    fs.String("backend", "", "Backend base URL"),
		output:     fs.String("output", "text", "Output format: text, compact, json"),
		debug:      fs.Bool("debug", false, "Enable debug logging"),
	}
}

// setup loads config, builds the stderr logger and the backend client.
func (f queryFlags) setup() (*config.Config, *client.QueryClient, cli.Writer, *zap.Logger) {
	cfg, _, err := loadConfig(*f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*f.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *f.debug || cfg.Debug {
		if l, logErr := utils.NewLogger(true); logErr == nil {
			logger = l
		}
	}

	baseURL := cfg.ResolveBaseURL(*f.backend)
	c := client.New(baseURL, client.WithLogger(logger))
	return cfg, c, cli.Writer{Format: format, BarWidth: cfg.UI.BarWidth}, logger
}

func runPredict(args []string) {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	qf := registerQueryFlags(fs, configPathFromArgs(args, defaultConfigPath))
	topK := fs.Int("top-k", 0, "Number of labels, 1-30 (default from config)")
	file := fs.String("file", "", "Read the abstract from a document")
	_ = fs.Parse(argsReorder(fs, args))

	cfg, c, wr, logger := qf.setup()
	defer func() { _ = logger.Sync() }()

	text := joinArgs(fs.Args())
	if *file != "" {
		abstract, err := extract.NewExtractor().ExtractAbstract(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *file, err)
			os.Exit(1)
		}
		text = abstract
	}
	if text == "" {
		fmt.Fprintln(os.Stderr, predictUsage)
		os.Exit(1)
	}

	k := *topK
	if k == 0 {
		k = cfg.UI.DefaultTopK
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := models.PredictRequest{Text: text}.WithTopK(k)
	if err := runPrediction(ctx, os.Stdout, controller.NewPrediction(c, in, logger), wr); err != nil {
		exitOnQueryError("Prediction", predictUsage, err)
	}
}

func runRecommend(args []string) {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	qf := registerQueryFlags(fs, configPathFromArgs(args, defaultConfigPath))
	k := fs.Int("k", 0, "Number of titles, 1-30 (default from config)")
	_ = fs.Parse(argsReorder(fs, args))

	cfg, c, wr, logger := qf.setup()
	defer func() { _ = logger.Sync() }()

	query := joinArgs(fs.Args())
	if query == "" {
		fmt.Fprintln(os.Stderr, recommendUsage)
		os.Exit(1)
	}

	n := *k
	if n == 0 {
		n = cfg.UI.DefaultTopK
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := models.RecommendRequest{Query: query}.WithK(n)
	if err := runRecommendation(ctx, os.Stdout, controller.NewRecommendation(c, in, logger), wr); err != nil {
		exitOnQueryError("Recommendation", recommendUsage, err)
	}
}

func runHealth(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	qf := registerQueryFlags(fs, configPathFromArgs(args, defaultConfigPath))
	_ = fs.Parse(args)

	_, c, wr, logger := qf.setup()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		os.Exit(1)
	}
	if err := wr.WriteHealth(os.Stdout, h); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}
}

func exitOnQueryError(action, usage string, err error) {
	switch {
	case errors.Is(err, errInputRejected):
		fmt.Fprintln(os.Stderr, usage)
		fmt.Fprintln(os.Stderr, err)
	case !errors.Is(err, errRequestFailed):
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", action, err)
	}
	os.Exit(1)
}

// runPrediction runs a single prediction through p and writes the outcome.
// It returns errInputRejected when the submit gate is closed, and
// errRequestFailed when the request failed (the message is already written).
func runPrediction(ctx context.Context, w io.Writer, p *controller.Prediction, wr cli.Writer) error {
	if !p.Run(ctx) {
		return fmt.Errorf("%w: text must be at least %d characters", errInputRejected, models.MinTextLength)
	}
	state := p.State()
	if err := wr.WritePredictions(w, state); err != nil {
		return err
	}
	if state.Phase == controller.Failure {
		return errRequestFailed
	}
	return nil
}

// runRecommendation is runPrediction for title recommendations.
func runRecommendation(ctx context.Context, w io.Writer, r *controller.Recommendation, wr cli.Writer) error {
	if !r.Run(ctx) {
		return fmt.Errorf("%w: query must be at least %d characters", errInputRejected, models.MinQueryLength)
	}
	state := r.State()
	if err := wr.WriteRecommendations(w, state); err != nil {
		return err
	}
	if state.Phase == controller.Failure {
		return errRequestFailed
	}
	return nil
}

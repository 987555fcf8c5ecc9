// Package main is the paperscope CLI entry point.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/paperscope/internal/config"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/paperscope/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// A missing file at the default path yields the built-in defaults, while an
// explicit path must exist. Returns the config and the path that was loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		cfg, err := config.LoadOrDefault(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		runUI(nil)
		return
	}
	command := os.Args[1]
	args := os.Args[2:]
	switch command {
	case "ui":
		runUI(args)
	case "predict":
		runPredict(args)
	case "recommend":
		runRecommend(args)
	case "health":
		runHealth(args)
	case "stub":
		runStub(args)
	case "version", "--version", "-v":
		fmt.Printf("paperscope version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// argsReorder moves every flag, and the value of each non-boolean flag, in
// front of the positional arguments so that flags may appear anywhere:
// "recommend --k 3 graph nets --output json" parses as
// "--k 3 --output json graph nets". Arguments after "--" stay positional.
func argsReorder(fs *flag.FlagSet, args []string) []string {
	flags := make([]string, 0, len(args))
	var positional []string
	terminated := false
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			terminated = true
			break
		}
		if len(a) < 2 || a[0] != '-' {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") || isBoolFlag(fs, name) {
			continue
		}
		if i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	if terminated {
		flags = append(flags, "--")
	}
	return append(flags, positional...)
}

func isBoolFlag(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// joinArgs joins positional args with spaces so multi-word input works the same
// with or without shell quoting.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// configPathFromArgs returns the value of -config/--config from args if present, else defaultPath.
func configPathFromArgs(args []string, defaultPath string) string {
	for i, a := range args {
		if (a == "-config" || a == "--config") && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if v, ok := strings.CutPrefix(a, "-config="); ok {
			return v
		}
	}
	return defaultPath
}

func printUsage() {
	fmt.Println(`paperscope - Subject prediction and paper recommendation client

Usage:
  paperscope [ui] [flags]                 Start the interactive client (default)
  paperscope predict [flags] <text...>    Predict subject labels for an abstract
  paperscope recommend [flags] <query...> Recommend paper titles for a query
  paperscope health [flags]               Show backend health
  paperscope stub [flags]                 Run a local stub backend
  paperscope version                      Show version
  paperscope help                         Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/paperscope/config.yaml)
  --backend string   Backend base URL (overrides BACKEND_URL and backend.base_url)
  --debug            Enable debug logging

Predict Flags:
  --top-k int        Number of labels, 1-30 (default from config, or 5)
  --file string      Read the abstract from a PDF, DOCX, XLSX, LaTeX or text file
  --output string    text, compact or json (default: text)

Recommend Flags:
  --k int            Number of titles, 1-30 (default from config, or 5)
  --output string    text, compact or json (default: text)

Health Flags:
  --output string    text or json (default: text)

Stub Flags:
  --catalog string   Catalog YAML file (default: stub.catalog_path, or the built-in catalog)
  --port int         Listen port (default: stub.port, or 8000)
  --watch            Reload the catalog when the file changes

Examples:
  paperscope predict "We propose a transformer-based method for question answering."
  paperscope predict --file paper.pdf --top-k 3
  paperscope recommend transformer question answering --k 10
  BACKEND_URL=http://gpu-box:8000 paperscope
  paperscope stub --watch --catalog ./catalog.yaml`)
}

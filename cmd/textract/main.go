// Package main is the textract CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/docfox/textract/internal/analyze"
	"github.com/docfox/textract/internal/config"
	"github.com/docfox/textract/internal/extract"
	"github.com/docfox/textract/internal/models"
	"github.com/docfox/textract/internal/server"
	"github.com/docfox/textract/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/textract/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development) and
// then falls back to built-in defaults when neither file exists, so the
// tool works without any config at all.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "extract":
		runExtract()
	case "analyze":
		runAnalyze()
	case "version":
		fmt.Printf("textract %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// newExtractor wires the extraction core from config.
func newExtractor(cfg *config.Config, logger *zap.Logger) (*extract.Extractor, error) {
	return extract.NewExtractor(extract.Options{
		DomainPhrases:   cfg.Extract.DomainPhrases,
		NoiseWords:      cfg.Extract.NoiseWords,
		MinRunWords:     cfg.Extract.MinRunWords,
		MinWordLetters:  cfg.Extract.MinWordLetters,
		MinTextLen:      cfg.Extract.MinTextLen,
		FallbackWords:   cfg.Extract.FallbackWords,
		MaxRawScanBytes: cfg.Extract.MaxRawScanBytes,
	}, logger)
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-strategy bundle diagnostics, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
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
	defer logger.Sync()

	extractor, err := newExtractor(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize extractor", zap.Error(err))
	}
	analyzer := analyze.NewClient(cfg.Analysis, logger)

	srv := server.NewServer(extractor, analyzer, cfg, logger, version)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runExtract() {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	output := fs.String("output", "text", "output format: text or json")
	mimeType := fs.String("mime", "", "declared MIME type (informational)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: textract extract [flags] <file>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	extractor, err := newExtractor(cfg, zap.NewNop())
	if err != nil {
		fmt.Printf("Failed to initialize extractor: %v\n", err)
		os.Exit(1)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}
	result := extractor.Extract(content, filepath.Base(path), *mimeType)

	if *output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else if result.Success {
		fmt.Println(result.Text)
	}
	if !result.Success {
		if *output != "json" {
			fmt.Fprintf(os.Stderr, "Extraction failed: %s\n", result.Error)
		}
		os.Exit(1)
	}
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: textract analyze [flags] <file>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	extractor, err := newExtractor(cfg, zap.NewNop())
	if err != nil {
		fmt.Printf("Failed to initialize extractor: %v\n", err)
		os.Exit(1)
	}
	analyzer := analyze.NewClient(cfg.Analysis, zap.NewNop())

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}
	filename := filepath.Base(path)
	result := extractor.Extract(content, filename, "")
	if !result.Success {
		fmt.Fprintf(os.Stderr, "Extraction failed: %s\n", result.Error)
		os.Exit(1)
	}
	fmt.Printf("Extracted %d characters: %s\n\n", result.Length(), utils.Truncate(result.Text, 200))

	report, err := analyzer.Analyze(context.Background(), &models.AnalysisRequest{
		Filename: filename,
		Text:     result.Text,
		Tasks:    analyze.DefaultTasks(filename),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}

func printUsage() {
	fmt.Println(`textract - document text extraction service

Usage:
  textract server [flags]            Start the HTTP server
  textract extract [flags] <file>    Extract text from a document
  textract analyze [flags] <file>    Extract and send to the analysis backend
  textract version                   Show version
  textract help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/textract/config.yaml)
  --debug            Enable debug logging (per-strategy bundle diagnostics, etc.)

Extract Flags:
  --config string    Config file path
  --output string    Output format: text or json (default: text)
  --mime string      Declared MIME type (informational only)

Analyze Flags:
  --config string    Config file path

Examples:
  textract server
  textract extract contract.pages
  textract extract --output json report.pdf
  textract analyze smlouva.docx`)
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/taxfetch/internal/config"
	"github.com/user/taxfetch/internal/entrez"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "taxfetch",
	Short:        "Retrieve, filter and chart NCBI nucleotide records by taxonomic ID",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath,
		"config", filepath.Join(os.Getenv("HOME"), ".taxfetch", "config.json"), "config file path")
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// setupLogging configures the default slog logger from the config level.
func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// newClient builds an entrez client from the config plus the supplied
// credentials.
func newClient(cfg *config.Config, email, apiKey string) *entrez.Client {
	return entrez.New(email, apiKey,
		entrez.WithBaseURL(cfg.BaseURL),
		entrez.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

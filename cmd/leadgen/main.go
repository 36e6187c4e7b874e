// Package main provides the entry point for the lead generation assistant.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/config"
)

var (
	configPath string
	mdDir      string
	cacheFile  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "leadgen",
	Short: "Business lead generation assistant",
	Long:  "Leadgen loads a merchant corpus from markdown documents, discovers new merchants with an LLM, resolves LinkedIn pages, and drafts outreach emails via CLI or REST API.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&mdDir, "md-dir", "", "Directory of markdown corpus files")
	rootCmd.PersistentFlags().StringVar(&cacheFile, "cache-file", "", "Path to the corpus cache blob")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// loadAppConfig resolves the effective configuration: flags win over the
// config file, the config file wins over environment variables, and
// defaults fill the rest.
func loadAppConfig() (config.Config, error) {
	cfg := config.Config{
		MDDir:     mdDir,
		CacheFile: cacheFile,
		Verbose:   verbose,
	}

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/observability"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the corpus disk cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache status and city counts",
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cached corpus snapshot",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheInfo(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	loader := newLoader(cfg)
	if _, err := loader.LoadAll(); err != nil {
		return err
	}

	info := loader.CacheInfo()
	if info == nil {
		fmt.Println("No corpus loaded")
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintCorpusSummary(info)
	return nil
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	if err := newLoader(cfg).ClearCache(); err != nil {
		return err
	}
	fmt.Println("Cache cleared")
	return nil
}

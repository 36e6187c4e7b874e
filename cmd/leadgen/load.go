package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/observability"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the merchant corpus",
	Long:  `Load the merchant corpus from the markdown directory, using the disk cache when it is still fresh, and print a summary.`,
	RunE:  runLoad,
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Rebuild the merchant corpus from source",
	Long:  `Clear the disk cache and rebuild the merchant corpus from the markdown directory.`,
	RunE:  runReload,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(reloadCmd)
}

func runLoad(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	loader := newLoader(cfg)
	if _, err := loader.LoadAll(); err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintCorpusSummary(loader.CacheInfo())
	return nil
}

func runReload(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	loader := newLoader(cfg)
	snap, err := loader.Reload()
	if err != nil {
		return err
	}

	fmt.Printf("Corpus rebuilt: %d merchants across %d cities\n", snap.MerchantCount, snap.CityCount)
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/linkedin"
	"github.com/jonathan/leadgen/internal/observability"
	"github.com/jonathan/leadgen/internal/types"
)

var (
	enrichDelayMS int
	enrichOutput  string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <merchants.json>",
	Short: "Enrich merchants with LinkedIn URLs",
	Long:  `Read a JSON array of merchants, resolve company pages and founder profiles on LinkedIn through web search, and write the enriched array back out.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runEnrich,
}

func init() {
	enrichCmd.Flags().IntVar(&enrichDelayMS, "delay", 0, "Milliseconds to pause between merchants (overrides config)")
	enrichCmd.Flags().StringVarP(&enrichOutput, "output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(_ *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	provider, err := newSearchProvider(context.Background(), cfg)
	if err != nil {
		return err
	}
	if provider == nil {
		return fmt.Errorf("SERPER_API_KEY or GOOGLE_API_KEY+GOOGLE_CX is required for LinkedIn enrichment")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read merchants file: %w", err)
	}

	var merchants []types.Merchant
	if err := json.Unmarshal(data, &merchants); err != nil {
		return fmt.Errorf("failed to parse merchants JSON: %w", err)
	}
	if len(merchants) == 0 {
		return fmt.Errorf("no merchants in %s", args[0])
	}

	delay := cfg.SearchDelayMS
	if enrichDelayMS > 0 {
		delay = enrichDelayMS
	}

	resolver := linkedin.NewResolver(provider)
	enriched := resolver.BatchSearch(context.Background(), merchants, linkedin.BatchOptions{
		Delay: time.Duration(delay) * time.Millisecond,
		OnProgress: func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rEnriching %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		},
	})

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintBatchSummary(enriched)
	}

	out := os.Stdout
	if enrichOutput != "" {
		f, err := os.Create(enrichOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(enriched)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/discovery"
	"github.com/jonathan/leadgen/internal/llm"
	"github.com/jonathan/leadgen/internal/observability"
	"github.com/jonathan/leadgen/internal/prompts"
	"github.com/jonathan/leadgen/internal/types"
)

var (
	discoverCity      string
	discoverCategory  string
	discoverKeyword   string
	discoverMode      string
	discoverVerify    bool
	discoverOutput    string
	discoverListModes bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover merchants with the generative model",
	Long:  `Prompt the generative model for merchants in a city and category. Mode controls verification depth: strict drops unverified merchants, balanced annotates them, fast skips verification entirely.`,
	RunE:  runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverCity, "city", "", "Target city (required)")
	discoverCmd.Flags().StringVar(&discoverCategory, "category", "", "Target business category (required)")
	discoverCmd.Flags().StringVar(&discoverKeyword, "keyword", "", "Optional keyword focus")
	discoverCmd.Flags().StringVar(&discoverMode, "mode", string(discovery.DefaultMode), "Discovery mode: strict, balanced or fast")
	discoverCmd.Flags().BoolVar(&discoverVerify, "verify-links", false, "Re-check official links over HTTP after discovery")
	discoverCmd.Flags().StringVarP(&discoverOutput, "output", "o", "", "Output file; existing records in it are kept and deduplicated by name (default: stdout)")
	discoverCmd.Flags().BoolVar(&discoverListModes, "list-modes", false, "List the available discovery modes and exit")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(_ *cobra.Command, _ []string) error {
	if discoverListModes {
		modes, err := prompts.List("discovery.json")
		if err != nil {
			return err
		}
		for _, mode := range modes {
			fmt.Println(mode)
		}
		return nil
	}
	if discoverCity == "" || discoverCategory == "" {
		return fmt.Errorf("--city and --category are required")
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for merchant discovery")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	svc := discovery.NewService(client, cfg.Verbose)
	merchants, err := svc.GenerateMerchants(ctx, discovery.Request{
		City:     discoverCity,
		Category: discoverCategory,
		Keyword:  discoverKeyword,
		Mode:     discovery.Mode(discoverMode),
	})
	if err != nil {
		return err
	}

	if discoverVerify {
		merchants = svc.VerifyOfficialLinks(ctx, merchants, discovery.VerifyOptions{
			UseBrowser: cfg.UseBrowser,
		})
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintMerchants("DISCOVERED MERCHANTS", merchants)
	}

	out := os.Stdout
	if discoverOutput != "" {
		merchants = mergeWithExisting(discoverOutput, merchants)

		f, err := os.Create(discoverOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(merchants)
}

// mergeWithExisting folds newly discovered merchants into the records
// already saved at path, deduplicating by name with the saved records
// winning. A missing or unreadable file yields the discoveries unchanged.
func mergeWithExisting(path string, discovered []types.Merchant) []types.Merchant {
	data, err := os.ReadFile(path)
	if err != nil {
		return discovered
	}

	var existing []types.Merchant
	if err := json.Unmarshal(data, &existing); err != nil {
		fmt.Fprintf(os.Stderr, "ignoring unparseable output file %s: %v\n", path, err)
		return discovered
	}
	return types.MergeByName(existing, discovered)
}

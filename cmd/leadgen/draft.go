package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/email"
	"github.com/jonathan/leadgen/internal/llm"
	"github.com/jonathan/leadgen/internal/observability"
	"github.com/jonathan/leadgen/internal/types"
)

var draftLanguage string

var draftCmd = &cobra.Command{
	Use:   "draft <merchant.json>",
	Short: "Draft an outreach email for a merchant",
	Long:  `Read one merchant record from a JSON file and draft a localized partnership outreach email. The language is detected from the merchant address unless overridden.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDraft,
}

func init() {
	draftCmd.Flags().StringVar(&draftLanguage, "language", "", "Override the detected email language (e.g. en, fr)")
	rootCmd.AddCommand(draftCmd)
}

func runDraft(_ *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for email drafting")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read merchant file: %w", err)
	}

	var merchant types.Merchant
	if err := json.Unmarshal(data, &merchant); err != nil {
		return fmt.Errorf("failed to parse merchant JSON: %w", err)
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	draft, err := email.NewDrafter(client).Draft(ctx, merchant, draftLanguage)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintEmail(draft)
	return nil
}

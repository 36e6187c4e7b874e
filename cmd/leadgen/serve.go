package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/config"
	"github.com/jonathan/leadgen/internal/corpus"
	"github.com/jonathan/leadgen/internal/discovery"
	"github.com/jonathan/leadgen/internal/email"
	"github.com/jonathan/leadgen/internal/linkedin"
	"github.com/jonathan/leadgen/internal/llm"
	"github.com/jonathan/leadgen/internal/server"
	"github.com/jonathan/leadgen/internal/websearch"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes corpus search, merchant discovery, LinkedIn enrichment and email drafting as REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	loader := newLoader(cfg)

	var resolver *linkedin.Resolver
	provider, err := newSearchProvider(context.Background(), cfg)
	if err != nil {
		return err
	}
	if provider != nil {
		resolver = linkedin.NewResolver(provider)
	}

	var discoverySvc *discovery.Service
	var drafter *email.Drafter
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		discoverySvc = discovery.NewService(client, cfg.Verbose)
		drafter = email.NewDrafter(client)
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		Loader:      loader,
		Resolver:    resolver,
		Discovery:   discoverySvc,
		Drafter:     drafter,
		SearchDelay: time.Duration(cfg.SearchDelayMS) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// newLoader wires a corpus loader from the effective configuration.
func newLoader(cfg config.Config) *corpus.Loader {
	ttl := time.Duration(cfg.CacheTTLHours) * time.Hour
	return corpus.NewLoader(cfg.MDDir, corpus.NewCacheStore(cfg.CacheFile, ttl))
}

// newSearchProvider picks the configured web search backend: Serper when
// its key is set, Google Custom Search as the fallback, nil when neither
// is configured.
func newSearchProvider(ctx context.Context, cfg config.Config) (websearch.Provider, error) {
	if cfg.SerperAPIKey != "" {
		return websearch.NewSerperClient(cfg.SerperAPIKey), nil
	}
	if cfg.GoogleAPIKey != "" && cfg.GoogleCX != "" {
		return websearch.NewGoogleClient(ctx, cfg.GoogleAPIKey, cfg.GoogleCX)
	}
	return nil, nil
}

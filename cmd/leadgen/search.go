package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/corpus"
	"github.com/jonathan/leadgen/internal/observability"
)

var (
	searchCity     string
	searchCategory string
	searchKeyword  string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the loaded merchant corpus",
	Long:  `Fuzzy-search the merchant corpus by city, category and keyword. With no filters, the head of the corpus is returned.`,
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchCity, "city", "", "Filter by city")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Filter by business category")
	searchCmd.Flags().StringVar(&searchKeyword, "keyword", "", "Free-text keyword filter")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	loader := newLoader(cfg)
	if _, err := loader.LoadAll(); err != nil {
		return err
	}

	results := loader.Search(corpus.Filters{
		City:     searchCity,
		Category: searchCategory,
		Keyword:  searchKeyword,
	})

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	observability.NewPrinter(os.Stdout).PrintSearchResults(results)
	if len(results) > 0 {
		fmt.Printf("%d merchants matched\n", len(results))
	}
	return nil
}

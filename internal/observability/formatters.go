// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/leadgen/internal/corpus"
	"github.com/jonathan/leadgen/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCorpusSummary outputs a human-readable summary of the loaded corpus.
func (p *Printer) PrintCorpusSummary(info *corpus.CacheInfo) {
	if info == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Loaded:    %s\n", info.LoadTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Files:     %d (%d with merchants)\n", info.FileCount, info.SuccessCount))
	sb.WriteString(fmt.Sprintf("Merchants: %d\n", info.MerchantCount))
	sb.WriteString(fmt.Sprintf("Cities:    %d\n", info.CityCount))

	if len(info.Cities) > 0 {
		sb.WriteString("\nCities:\n")
		count := min(len(info.Cities), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", info.Cities[i]))
		}
		if len(info.Cities) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(info.Cities)-maxItemsToShow))
		}
	}

	p.printBox("MERCHANT CORPUS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSearchResults outputs the top scored matches for a corpus search.
func (p *Printer) PrintSearchResults(results []corpus.ScoredMerchant) {
	if len(results) == 0 {
		p.printBox("SEARCH RESULTS", "No matches found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.Name))
		sb.WriteString(fmt.Sprintf("    Score: %d (%s)\n", r.MatchScore, r.MatchMethod))
		if !types.IsNA(r.SourceCity) {
			sb.WriteString(fmt.Sprintf("    City:  %s\n", r.SourceCity))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(results)-maxItemsToShow))
	}

	p.printBox("SEARCH RESULTS", sb.String())
}

// PrintMerchants outputs a short listing of merchants, e.g. after discovery.
func (p *Printer) PrintMerchants(title string, merchants []types.Merchant) {
	if len(merchants) == 0 {
		p.printBox(title, "No merchants")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d\n\n", len(merchants)))

	count := min(len(merchants), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := merchants[i]
		sb.WriteString(fmt.Sprintf("• %s\n", m.Name))
		if !types.IsNA(m.Address) {
			addr := m.Address
			if len(addr) > 48 {
				addr = addr[:45] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s\n", addr))
		}
		if m.VerificationStatus != "" {
			sb.WriteString(fmt.Sprintf("  [%s]\n", m.VerificationStatus))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(merchants) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more merchants", len(merchants)-maxItemsToShow))
	}

	p.printBox(title, sb.String())
}

// PrintBatchSummary outputs the outcome of a LinkedIn enrichment batch.
func (p *Printer) PrintBatchSummary(merchants []types.Merchant) {
	var resolved, companyHits, founderHits int
	for _, m := range merchants {
		if m.LinkedInSource != "" {
			resolved++
		}
		if !types.IsNA(m.CompanyLinkedIn) {
			companyHits++
		}
		if !types.IsNA(m.FounderLinkedIn) {
			founderHits++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Merchants processed: %d\n", len(merchants)))
	sb.WriteString(fmt.Sprintf("Enriched:            %d\n", resolved))
	sb.WriteString(fmt.Sprintf("Company links:       %d\n", companyHits))
	sb.WriteString(fmt.Sprintf("Founder links:       %d", founderHits))

	p.printBox("LINKEDIN ENRICHMENT", sb.String())
}

// PrintEmail outputs a drafted outreach email section by section.
func (p *Printer) PrintEmail(email *types.Email) {
	if email == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Language: %s\n", email.Language))
	sb.WriteString(fmt.Sprintf("Subject:  %s\n\n", email.Subject))
	sb.WriteString(email.Salutation + "\n\n")
	sb.WriteString(email.Body + "\n\n")
	sb.WriteString(email.Closing + "\n")
	sb.WriteString(email.Signature)

	p.printBox("DRAFTED EMAIL", sb.String())
}

// Package discovery generates candidate merchant lists for a city and
// category using the generative model, with mode-dependent verification
// depth.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jonathan/leadgen/internal/llm"
	"github.com/jonathan/leadgen/internal/prompts"
	"github.com/jonathan/leadgen/internal/schemas"
	"github.com/jonathan/leadgen/internal/types"
)

// Mode selects the verification depth of a discovery run.
type Mode string

const (
	// ModeStrict drops every merchant that fails online verification.
	ModeStrict Mode = "strict"
	// ModeBalanced keeps unverified merchants but annotates their links.
	ModeBalanced Mode = "balanced"
	// ModeFast collects candidates without any verification.
	ModeFast Mode = "fast"
)

// DefaultMode is used when a request does not name a mode.
const DefaultMode = ModeBalanced

// Verification status values stamped on discovered merchants.
const (
	StatusVerified          = "verified"
	StatusPartiallyVerified = "partially verified"
	StatusUnverified        = "unverified"
)

// verifiedMarker is the annotation the model attaches to checked links.
const verifiedMarker = "(verified)"

// Valid reports whether m is a recognized discovery mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeStrict, ModeBalanced, ModeFast:
		return true
	}
	return false
}

// tier maps a discovery mode to a model tier. Strict mode pays for the
// strongest model; fast mode runs on the cheapest.
func (m Mode) tier() llm.ModelTier {
	switch m {
	case ModeStrict:
		return llm.TierAdvanced
	case ModeFast:
		return llm.TierLite
	default:
		return llm.TierStandard
	}
}

// Request describes a discovery run.
type Request struct {
	City     string
	Category string
	Keyword  string
	Mode     Mode
}

// Service runs merchant discovery against an LLM client.
type Service struct {
	client  llm.Client
	verbose bool
}

// NewService creates a discovery service.
func NewService(client llm.Client, verbose bool) *Service {
	return &Service{client: client, verbose: verbose}
}

// GenerateMerchants prompts the model for merchants matching the request
// and returns the parsed, post-processed list. An unparseable model
// response yields an empty list, not an error.
func (s *Service) GenerateMerchants(ctx context.Context, req Request) ([]types.Merchant, error) {
	if req.City == "" || req.Category == "" {
		return nil, fmt.Errorf("city and category are required")
	}
	mode := req.Mode
	if mode == "" {
		mode = DefaultMode
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown discovery mode %q", mode)
	}

	prompt, err := buildPrompt(req, mode)
	if err != nil {
		return nil, err
	}

	if s.verbose {
		log.Printf("[DISCOVERY] mode=%s city=%s category=%s", mode, req.City, req.Category)
	}

	raw, err := s.client.GenerateContent(ctx, prompt, mode.tier())
	if err != nil {
		return nil, fmt.Errorf("discovery generation failed: %w", err)
	}

	merchants := parseMerchants(raw)
	now := time.Now().Format(time.RFC3339)
	for i := range merchants {
		merchants[i] = merchants[i].WithDefaults()
		if merchants[i].CreatedAt == "" {
			merchants[i].CreatedAt = now
		}
		merchants[i].SourceCity = req.City
		merchants[i].VerificationStatus = verificationStatus(merchants[i], mode)
	}

	if s.verbose {
		log.Printf("[DISCOVERY] parsed %d merchants", len(merchants))
	}
	return merchants, nil
}

func buildPrompt(req Request, mode Mode) (string, error) {
	tmpl, err := prompts.Get("discovery.json", string(mode))
	if err != nil {
		return "", fmt.Errorf("failed to load discovery prompt: %w", err)
	}
	keywordLine := ""
	if req.Keyword != "" {
		keywordLine = "Keyword focus: " + req.Keyword
	}
	return prompts.Format(tmpl, map[string]string{
		"City":        req.City,
		"Category":    req.Category,
		"KeywordLine": keywordLine,
	}), nil
}

// parseMerchants extracts the first JSON array from the model's free-text
// response. Schema violations are logged but do not reject the batch.
func parseMerchants(raw string) []types.Merchant {
	arr := llm.FirstJSONArray(llm.CleanJSONBlock(raw))
	if arr == "" {
		log.Printf("[DISCOVERY] no JSON array found in model response")
		return nil
	}

	if err := schemas.ValidateMerchantList(arr); err != nil {
		log.Printf("[DISCOVERY] schema warning: %v", err)
	}

	var merchants []types.Merchant
	if err := json.Unmarshal([]byte(arr), &merchants); err != nil {
		log.Printf("[DISCOVERY] failed to parse merchant array: %v", err)
		return nil
	}
	return merchants
}

// verificationStatus derives the stored status from the run mode. Balanced
// mode trusts the model's per-link annotations.
func verificationStatus(m types.Merchant, mode Mode) string {
	switch mode {
	case ModeStrict:
		return StatusVerified
	case ModeFast:
		return StatusUnverified
	}
	for _, field := range []string{m.OfficialLink, m.CompanyLinkedIn, m.FounderLinkedIn} {
		if strings.Contains(field, verifiedMarker) {
			return StatusPartiallyVerified
		}
	}
	return StatusUnverified
}

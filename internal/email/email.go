// Package email drafts localized partnership outreach emails for
// merchants, detecting the target language from the merchant address.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/leadgen/internal/llm"
	"github.com/jonathan/leadgen/internal/prompts"
	"github.com/jonathan/leadgen/internal/types"
)

// Drafter generates outreach emails through an LLM client.
type Drafter struct {
	client llm.Client
}

// NewDrafter creates an email drafter.
func NewDrafter(client llm.Client) *Drafter {
	return &Drafter{client: client}
}

// Draft generates an outreach email for the merchant in the language
// detected from its address. A language override takes precedence over
// detection.
func (d *Drafter) Draft(ctx context.Context, m types.Merchant, languageOverride string) (*types.Email, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("merchant name is required")
	}

	lang := languageOverride
	if lang == "" {
		lang = DetectLanguage(m.Address)
	}

	prompt, err := buildPrompt(m, lang)
	if err != nil {
		return nil, err
	}

	raw, err := d.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("email generation failed: %w", err)
	}

	email := ParseResponse(raw)
	email.Language = lang
	return email, nil
}

func buildPrompt(m types.Merchant, lang string) (string, error) {
	tmpl, err := prompts.Get("email.json", "draft")
	if err != nil {
		return "", fmt.Errorf("failed to load email prompt: %w", err)
	}
	return prompts.Format(tmpl, map[string]string{
		"Name":         types.OrNA(m.Name),
		"Founder":      types.OrNA(m.Founder),
		"Highlights":   types.OrNA(m.Highlights),
		"Email":        types.OrNA(m.Email),
		"Address":      types.OrNA(m.Address),
		"OfficialLink": types.OrNA(m.OfficialLink),
		"Language":     LanguageName(lang),
	}), nil
}

// ParseResponse splits the model's labeled reply into email sections.
// Unlabeled leading text is ignored; body and signature accumulate
// until the next label.
func ParseResponse(text string) *types.Email {
	email := &types.Email{}
	section := ""
	var bodyLines, signatureLines []string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case hasLabel(trimmed, "Subject"):
			email.Subject = stripLabel(trimmed, "Subject")
			section = ""
		case hasLabel(trimmed, "Salutation"):
			email.Salutation = stripLabel(trimmed, "Salutation")
			section = ""
		case hasLabel(trimmed, "Body"):
			if rest := stripLabel(trimmed, "Body"); rest != "" {
				bodyLines = append(bodyLines, rest)
			}
			section = "body"
		case hasLabel(trimmed, "Closing"):
			email.Closing = stripLabel(trimmed, "Closing")
			section = ""
		case hasLabel(trimmed, "Signature"):
			if rest := stripLabel(trimmed, "Signature"); rest != "" {
				signatureLines = append(signatureLines, rest)
			}
			section = "signature"
		case section == "body" && trimmed != "":
			bodyLines = append(bodyLines, line)
		case section == "signature" && trimmed != "":
			signatureLines = append(signatureLines, trimmed)
		}
	}

	email.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	email.Signature = strings.TrimSpace(strings.Join(signatureLines, "\n"))
	return email
}

// hasLabel matches "Label:" with or without markdown bold markers.
func hasLabel(line, label string) bool {
	return strings.HasPrefix(line, label+":") ||
		strings.HasPrefix(line, "**"+label+":**") ||
		strings.HasPrefix(line, "**"+label+"**:")
}

func stripLabel(line, label string) string {
	for _, prefix := range []string{"**" + label + ":**", "**" + label + "**:", label + ":"} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}

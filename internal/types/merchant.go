// Package types provides type definitions for structured data used throughout the leadgen system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// NA is the sentinel value used in place of null/absent for merchant fields.
// Downstream consumers compare against it to decide whether to display a field,
// so it must never be replaced with fabricated data.
const NA = "N/A"

// Merchant represents one business lead. All string fields are optional;
// an absent field is rendered and persisted as the NA sentinel.
type Merchant struct {
	Name               string `json:"name"`
	Address            string `json:"address,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Email              string `json:"email,omitempty"`
	OfficialLink       string `json:"official_link,omitempty"`
	Founder            string `json:"founder,omitempty"`
	Highlights         string `json:"highlights,omitempty"`
	Country            string `json:"country,omitempty"`
	SourcingNeeds      string `json:"sourcing_needs,omitempty"`
	SourceCity         string `json:"source_city,omitempty"`
	Source             string `json:"source,omitempty"`
	Contacted          bool   `json:"contacted"`
	CreatedAt          string `json:"created_at,omitempty"` // RFC3339 format
	VerificationStatus string `json:"verification_status,omitempty"`

	CompanyLinkedIn           string `json:"company_linkedin,omitempty"`
	CompanyLinkedInConfidence int    `json:"company_linkedin_confidence,omitempty"`
	FounderLinkedIn           string `json:"founder_linkedin,omitempty"`
	FounderLinkedInConfidence int    `json:"founder_linkedin_confidence,omitempty"`
	LinkedInSource            string `json:"linkedin_source,omitempty"`

	// Extra preserves input fields the record type does not model,
	// for forward compatibility with unknown corpus columns.
	Extra map[string]string `json:"extra,omitempty"`
}

// knownMerchantKeys lists the JSON keys handled by the named fields above.
var knownMerchantKeys = map[string]bool{
	"name": true, "address": true, "phone": true, "email": true,
	"official_link": true, "founder": true, "highlights": true,
	"country": true, "sourcing_needs": true, "source_city": true,
	"source": true, "contacted": true, "created_at": true,
	"verification_status": true, "company_linkedin": true,
	"company_linkedin_confidence": true, "founder_linkedin": true,
	"founder_linkedin_confidence": true, "linkedin_source": true,
	"extra": true,
}

// UnmarshalJSON decodes a merchant object, routing unknown string-valued
// keys into the Extra bag instead of dropping them.
func (m *Merchant) UnmarshalJSON(data []byte) error {
	type alias Merchant
	var known alias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, val := range raw {
		if knownMerchantKeys[key] {
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			// Non-string extras are kept in their raw JSON form.
			s = string(val)
		}
		if known.Extra == nil {
			known.Extra = make(map[string]string)
		}
		known.Extra[key] = s
	}

	*m = Merchant(known)
	return nil
}

// OrNA returns s, or the NA sentinel if s is empty.
func OrNA(s string) string {
	if s == "" {
		return NA
	}
	return s
}

// IsNA reports whether s is empty or the NA sentinel.
func IsNA(s string) bool {
	return s == "" || s == NA
}

// WithDefaults returns a copy with empty display fields replaced by the NA
// sentinel. Boolean and numeric fields are left untouched.
func (m Merchant) WithDefaults() Merchant {
	m.Address = OrNA(m.Address)
	m.Phone = OrNA(m.Phone)
	m.Email = OrNA(m.Email)
	m.OfficialLink = OrNA(m.OfficialLink)
	m.Founder = OrNA(m.Founder)
	m.Highlights = OrNA(m.Highlights)
	m.CompanyLinkedIn = OrNA(m.CompanyLinkedIn)
	m.FounderLinkedIn = OrNA(m.FounderLinkedIn)
	return m
}

// MergeByName appends incoming merchants onto existing, skipping any whose
// name already appears. Matching is case-sensitive and exact; the first
// occurrence wins.
func MergeByName(existing, incoming []Merchant) []Merchant {
	seen := make(map[string]bool, len(existing))
	for _, m := range existing {
		seen[m.Name] = true
	}

	merged := existing
	for _, m := range incoming {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		merged = append(merged, m)
	}
	return merged
}

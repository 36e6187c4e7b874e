package types

// Email represents a drafted outreach email, parsed from labeled sections
// of a model response. Fields that cannot be located are left empty.
type Email struct {
	Subject    string `json:"subject"`
	Salutation string `json:"salutation"`
	Body       string `json:"body"`
	Closing    string `json:"closing"`
	Signature  string `json:"signature"`
	Language   string `json:"language,omitempty"` // ISO 639-1 code used for the draft
}

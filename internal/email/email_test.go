package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadgen/internal/llm"
	"github.com/jonathan/leadgen/internal/types"
)

const labeledResponse = `Subject: Partnership with Bakery Dupont
Salutation: Dear Mr. Dupont,
Body:
We have followed your sourdough program with great interest.

We would love to meet and discuss a partnership.
Closing: Best regards,
Signature: Alex Chen
Leadgen Partnerships`

func TestParseResponse(t *testing.T) {
	got := ParseResponse(labeledResponse)

	assert.Equal(t, "Partnership with Bakery Dupont", got.Subject)
	assert.Equal(t, "Dear Mr. Dupont,", got.Salutation)
	assert.Contains(t, got.Body, "sourdough program")
	assert.Contains(t, got.Body, "discuss a partnership")
	assert.Equal(t, "Best regards,", got.Closing)
	assert.Equal(t, "Alex Chen\nLeadgen Partnerships", got.Signature)
}

func TestParseResponse_MarkdownBoldLabels(t *testing.T) {
	got := ParseResponse("**Subject:** Hello\n**Salutation:** Hi,\n**Body:**\ntext\n**Closing:** Bye\n**Signature:**\nAlex")

	assert.Equal(t, "Hello", got.Subject)
	assert.Equal(t, "Hi,", got.Salutation)
	assert.Equal(t, "text", got.Body)
	assert.Equal(t, "Bye", got.Closing)
	assert.Equal(t, "Alex", got.Signature)
}

func TestParseResponse_MissingSectionsStayEmpty(t *testing.T) {
	got := ParseResponse("Subject: Only a subject line")

	assert.Equal(t, "Only a subject line", got.Subject)
	assert.Empty(t, got.Salutation)
	assert.Empty(t, got.Body)
	assert.Empty(t, got.Closing)
	assert.Empty(t, got.Signature)
}

func TestParseResponse_LeadingProseIgnored(t *testing.T) {
	got := ParseResponse("Here is your draft:\n\nSubject: Hello\nBody:\ncontent")
	assert.Equal(t, "Hello", got.Subject)
	assert.Equal(t, "content", got.Body)
}

// fakeClient returns a canned response and records the prompt.
type fakeClient struct {
	response string
	err      error
	prompt   string
	tier     llm.ModelTier
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompt = prompt
	f.tier = tier
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) Close() error { return nil }

func TestDraft_DetectsLanguageFromAddress(t *testing.T) {
	fake := &fakeClient{response: labeledResponse}
	d := NewDrafter(fake)

	merchant := types.Merchant{
		Name:    "Bakery Dupont",
		Address: "12 Rue de Rivoli, Paris",
	}

	draft, err := d.Draft(context.Background(), merchant, "")
	require.NoError(t, err)

	assert.Equal(t, "fr", draft.Language)
	assert.Equal(t, llm.TierStandard, fake.tier)
	assert.Contains(t, fake.prompt, "Bakery Dupont")
	assert.Contains(t, fake.prompt, "French")
}

func TestDraft_LanguageOverride(t *testing.T) {
	fake := &fakeClient{response: labeledResponse}
	d := NewDrafter(fake)

	draft, err := d.Draft(context.Background(), types.Merchant{Name: "Shop", Address: "Paris"}, "en")
	require.NoError(t, err)
	assert.Equal(t, "en", draft.Language)
	assert.Contains(t, fake.prompt, "English")
}

func TestDraft_EmptyFieldsBecomeNA(t *testing.T) {
	fake := &fakeClient{response: labeledResponse}
	d := NewDrafter(fake)

	_, err := d.Draft(context.Background(), types.Merchant{Name: "Shop"}, "en")
	require.NoError(t, err)
	assert.Contains(t, fake.prompt, "N/A")
}

func TestDraft_RequiresName(t *testing.T) {
	d := NewDrafter(&fakeClient{})
	_, err := d.Draft(context.Background(), types.Merchant{}, "")
	assert.Error(t, err)
}

package linkedin

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jonathan/leadgen/internal/types"
)

// SourceMarker tags records enriched through the search-based resolver.
const SourceMarker = "serper-search"

// VerifiedStatus marks records that went through AI verification plus
// search-based LinkedIn resolution.
const VerifiedStatus = "ai-verified+searched"

// BatchOptions configures a batch enrichment run.
type BatchOptions struct {
	// Delay is the pause inserted between merchants. The sequential loop
	// plus this delay is the sole pacing mechanism against the provider.
	Delay time.Duration

	// OnProgress, if set, is invoked after each merchant with the number
	// completed so far and the total.
	OnProgress func(done, total int)
}

// BatchSearch sequentially enriches each merchant with resolved LinkedIn
// data. A merchant whose resolution fails is appended unmodified; the batch
// itself never fails.
func (r *Resolver) BatchSearch(ctx context.Context, merchants []types.Merchant, opts BatchOptions) []types.Merchant {
	jobID := uuid.New()
	log.Printf("linkedin batch %s: %d merchants, delay %v", jobID, len(merchants), opts.Delay)

	results := make([]types.Merchant, 0, len(merchants))
	for _, merchant := range merchants {
		enriched, err := r.enrichOne(ctx, merchant)
		if err != nil {
			log.Printf("linkedin batch %s: search failed for %q: %v", jobID, merchant.Name, err)
			results = append(results, merchant)
		} else {
			results = append(results, enriched)
		}

		if opts.OnProgress != nil {
			opts.OnProgress(len(results), len(merchants))
		}
		if opts.Delay > 0 {
			select {
			case <-time.After(opts.Delay):
			case <-ctx.Done():
				log.Printf("linkedin batch %s: canceled after %d/%d", jobID, len(results), len(merchants))
				return results
			}
		}
	}

	log.Printf("linkedin batch %s: done, %d merchants", jobID, len(results))
	return results
}

// enrichOne resolves both URLs for one merchant and returns an augmented
// copy; the input record is never mutated.
func (r *Resolver) enrichOne(ctx context.Context, merchant types.Merchant) (types.Merchant, error) {
	city := merchant.SourceCity
	if types.IsNA(city) {
		city = merchant.Address
	}
	if types.IsNA(city) {
		city = ""
	}

	pair, err := r.SearchAll(ctx, merchant.Name, merchant.Founder, city)
	if err != nil {
		return types.Merchant{}, err
	}

	enriched := merchant
	enriched.CompanyLinkedIn = pair.Company.URL
	enriched.CompanyLinkedInConfidence = pair.Company.Confidence
	enriched.FounderLinkedIn = pair.Founder.URL
	enriched.FounderLinkedInConfidence = pair.Founder.Confidence
	enriched.LinkedInSource = SourceMarker
	enriched.VerificationStatus = VerifiedStatus
	return enriched, nil
}

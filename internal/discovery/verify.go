package discovery

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/leadgen/internal/fetch"
	"github.com/jonathan/leadgen/internal/types"
)

const unverifiedMarker = "(unverified)"

// VerifyOptions configures official-link verification.
type VerifyOptions struct {
	// Timeout applies per link. Zero means 10 seconds.
	Timeout time.Duration
	// UseBrowser falls back to headless rendering when the plain HTTP
	// fetch returns a near-empty page.
	UseBrowser bool
	// Concurrency bounds parallel fetches. Zero means 4.
	Concurrency int
}

// VerifyOfficialLinks checks each merchant's official link and annotates
// it verified or unverified. Merchants are never dropped; an unreachable
// site only changes the annotation.
func (s *Service) VerifyOfficialLinks(ctx context.Context, merchants []types.Merchant, opts VerifyOptions) []types.Merchant {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = 4
	}

	out := make([]types.Merchant, len(merchants))
	copy(out, merchants)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := range out {
		link := stripAnnotations(out[i].OfficialLink)
		if types.IsNA(link) {
			continue
		}
		i, link := i, link
		g.Go(func() error {
			reachable := s.linkReachable(gctx, link, opts)
			mu.Lock()
			if reachable {
				out[i].OfficialLink = link + " " + verifiedMarker
			} else {
				out[i].OfficialLink = link + " " + unverifiedMarker
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *Service) linkReachable(ctx context.Context, link string, opts VerifyOptions) bool {
	fetchOpts := fetch.DefaultOptions()
	fetchOpts.Timeout = opts.Timeout

	res, err := fetch.URL(ctx, link, fetchOpts)
	if err == nil {
		text, terr := fetch.ExtractMainText(res.HTML, fetch.DefaultTextSelectors())
		if terr == nil && !fetch.ShouldUseBrowser(text) {
			return true
		}
		if !opts.UseBrowser {
			// Thin page but the server answered; good enough without a browser.
			return true
		}
	} else if !opts.UseBrowser {
		if s.verbose {
			log.Printf("[VERIFY] %s unreachable: %v", link, err)
		}
		return false
	}

	html, berr := fetch.WithBrowser(ctx, link, opts.Timeout, s.verbose)
	if berr != nil {
		if s.verbose {
			log.Printf("[VERIFY] %s browser fetch failed: %v", link, berr)
		}
		return false
	}
	return len(strings.TrimSpace(html)) > 0
}

// stripAnnotations removes any verified/unverified suffix the model or a
// previous run attached to a link.
func stripAnnotations(link string) string {
	link = strings.ReplaceAll(link, verifiedMarker, "")
	link = strings.ReplaceAll(link, unverifiedMarker, "")
	return strings.TrimSpace(link)
}

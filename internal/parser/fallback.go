package parser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gpcaffidavit/internal/port"
)

// breaker holds a provider back after it reports a rate limit.
type breaker struct {
	mu        sync.Mutex
	openUntil time.Time
}

// blocked reports whether the breaker is still open at now, and until when.
func (b *breaker) blocked(now time.Time) (time.Time, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.openUntil, now.Before(b.openUntil)
}

func (b *breaker) trip(until time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.openUntil = until
}

type chainLink struct {
	name      string
	extractor port.CaseExtractor
	breaker   breaker
}

// FallbackParser asks each configured provider in turn for the GPC fields and
// returns the first answer. A rate-limited provider is skipped until its
// Retry-After passes. No provider is called twice for one claim.
type FallbackParser struct {
	chain []*chainLink
}

// NewFallbackParser creates a FallbackParser from an ordered list of parsers and their names.
func NewFallbackParser(parsers []port.CaseExtractor, names []string) *FallbackParser {
	chain := make([]*chainLink, len(parsers))
	for i, p := range parsers {
		chain[i] = &chainLink{name: names[i], extractor: p}
	}
	return &FallbackParser{chain: chain}
}

func (f *FallbackParser) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	now := time.Now()
	var (
		lastErr     error
		onlyLimits  = true
		soonestFree time.Time
	)
	noteLimit := func(until time.Time) {
		if soonestFree.IsZero() || until.Before(soonestFree) {
			soonestFree = until
		}
	}

	for pos, link := range f.chain {
		if until, open := link.breaker.blocked(now); open {
			log.Printf("parser.FallbackParser: %s held back until %s", link.name, until.Format(time.RFC3339))
			noteLimit(until)
			continue
		}

		out, err := link.extractor.Extract(ctx, input)
		if err == nil {
			if pos > 0 {
				log.Printf("parser.FallbackParser: %s answered for %s as fallback #%d", link.name, input.FileName, pos+1)
			}
			return out, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("parser.FallbackParser: %s failed for %s: %v", link.name, input.FileName, err)
		lastErr = err

		var rle *RateLimitError
		if !errors.As(err, &rle) {
			onlyLimits = false
			continue
		}
		until := now.Add(rle.RetryAfter)
		link.breaker.trip(until)
		noteLimit(until)
	}

	// Either every provider was held back or every one answered 429.
	if lastErr == nil || onlyLimits {
		wait := time.Until(soonestFree)
		if wait < time.Second {
			wait = time.Second
		}
		return nil, NewRateLimitError("all", errors.New("all parsers rate limited"), int(wait.Seconds()))
	}
	return nil, fmt.Errorf("all parsers failed: %w", lastErr)
}

package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"feedcurator/config"
	"feedcurator/ledger"
	"feedcurator/selection"
	"feedcurator/types"

	"golang.org/x/time/rate"
)

// Aggregator produces the candidate list for a run.
type Aggregator interface {
	Aggregate(ctx context.Context, sources []types.FeedSource, processed map[string]struct{}, maxAge time.Duration) ([]types.CandidateItem, int)
}

// Resolver extracts body text for one candidate.
type Resolver interface {
	Resolve(link, rssSummary string) (string, bool)
}

// Scorer rates extracted content and produces a short summary.
type Scorer interface {
	Score(ctx context.Context, content string) (int, string)
}

// Publisher writes selected items and reports how many succeeded.
type Publisher interface {
	Publish(ctx context.Context, items []types.EnrichedItem) int
}

// Deps wires the pipeline collaborators.
type Deps struct {
	Aggregator Aggregator
	Resolver   Resolver
	Scorer     Scorer
	Publisher  Publisher
	Ledger     ledger.Store
}

// Options carries per-run policy settings.
type Options struct {
	Sources     []types.FeedSource
	MaxAge      time.Duration
	MinRating   int
	MaxArticles int
}

// Pipeline sequences aggregation, enrichment, selection and
// publication for one batch run. Per-item failures degrade the run's
// yield, never its completion.
type Pipeline struct {
	aggregator Aggregator
	resolver   Resolver
	scorer     Scorer
	publisher  Publisher
	ledger     ledger.Store
	limiter    *rate.Limiter
}

// New builds a pipeline from its collaborators.
func New(deps Deps) *Pipeline {
	return &Pipeline{
		aggregator: deps.Aggregator,
		resolver:   deps.Resolver,
		scorer:     deps.Scorer,
		publisher:  deps.Publisher,
		ledger:     deps.Ledger,
		limiter:    rate.NewLimiter(rate.Every(config.ScoringInterval), 1),
	}
}

// Run executes one curation cycle and returns run-level counters. The
// only error it returns is a failure to load the ledger, without which
// dedup guarantees cannot hold.
func (p *Pipeline) Run(ctx context.Context, opts Options) (types.RunStats, error) {
	stats := types.RunStats{FeedsConfigured: len(opts.Sources)}

	processed, err := p.ledger.Load(ctx)
	if err != nil {
		return stats, fmt.Errorf("load ledger: %w", err)
	}
	log.Printf("%d link(s) already published", len(processed))

	log.Println("Fetching feeds...")
	candidates, failedFeeds := p.aggregator.Aggregate(ctx, opts.Sources, processed, opts.MaxAge)
	stats.FeedsFailed = failedFeeds
	stats.Candidates = len(candidates)
	log.Printf("%d new recent item(s) found", len(candidates))

	if len(candidates) == 0 {
		return stats, nil
	}

	log.Println("Extracting and scoring items...")
	enriched := make([]types.EnrichedItem, 0, len(candidates))
	for i, candidate := range candidates {
		log.Printf("[%d/%d]%s %.55s", i+1, len(candidates), ageLabel(candidate.Recency), candidate.Title)

		item := types.EnrichedItem{CandidateItem: candidate}
		if content, ok := p.resolver.Resolve(candidate.Link, candidate.RSSSummary); ok {
			item.Content = content
			item.HasContent = true

			if err := p.limiter.Wait(ctx); err != nil {
				log.Printf("scoring interrupted: %v", err)
				enriched = append(enriched, item)
				break
			}
			item.Rating, item.Summary = p.scorer.Score(ctx, content)
			stats.Scored++
			log.Printf("  rating: %d/%d", item.Rating, config.MaxRating)
		} else {
			log.Printf("  no content, rating 0/%d", config.MaxRating)
		}

		enriched = append(enriched, item)
	}

	selected := selection.Select(enriched, opts.MinRating, opts.MaxArticles)
	stats.Selected = len(selected)
	log.Printf("%d item(s) rated >= %d, publishing top %d", stats.Selected, opts.MinRating, len(selected))

	stats.Published = p.publisher.Publish(ctx, selected)
	return stats, nil
}

// ageLabel formats a known age as a compact suffix for progress lines.
func ageLabel(r types.Recency) string {
	if !r.Known {
		return ""
	}
	hours := int(r.Age.Hours())
	minutes := int(r.Age.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf(" [%dh%02d]", hours, minutes)
	}
	return fmt.Sprintf(" [%dmin]", minutes)
}

package publish

import (
	"context"
	"log"

	"feedcurator/config"
	"feedcurator/ledger"
	"feedcurator/types"

	"golang.org/x/time/rate"
)

// Record is the typed payload created in the structured store for one
// published item. An empty Summary means the field is omitted entirely.
type Record struct {
	Title   string
	URL     string
	Rating  int
	Summary string
}

// Store abstracts the remote structured store.
type Store interface {
	CreateRecord(ctx context.Context, rec Record) error
}

// Publisher writes selected items to the store in ranked order and
// commits each link to the ledger only after its write succeeds.
type Publisher struct {
	store   Store
	ledger  ledger.Store
	limiter *rate.Limiter
}

// NewPublisher wires the store and ledger. Writes are paced to respect
// the store's rate limits; pacing all attempts uniformly is equivalent
// to delaying only after successes since failures are not retried
// within a run.
func NewPublisher(store Store, ledgerStore ledger.Store) *Publisher {
	return &Publisher{
		store:   store,
		ledger:  ledgerStore,
		limiter: rate.NewLimiter(rate.Every(config.PublishInterval), 1),
	}
}

// Publish attempts every item and returns the success count. One item's
// failure never blocks the next, and a failed item is not recorded in
// the ledger, so it stays eligible for a future run.
func (p *Publisher) Publish(ctx context.Context, items []types.EnrichedItem) int {
	published := 0
	for i, item := range items {
		if err := p.limiter.Wait(ctx); err != nil {
			log.Printf("publishing interrupted: %v", err)
			return published
		}

		rec := Record{
			Title:   truncate(item.Title, config.MaxFieldLength),
			URL:     item.Link,
			Rating:  item.Rating,
			Summary: truncate(item.Summary, config.MaxFieldLength),
		}

		if err := p.store.CreateRecord(ctx, rec); err != nil {
			log.Printf("  [%d/%d] publish failed for %.60q: %v", i+1, len(items), item.Title, err)
			continue
		}

		if err := p.ledger.Append(ctx, item.Link); err != nil {
			// The record exists but the link is not committed; the item
			// may be re-published on a future run.
			log.Printf("  [%d/%d] ledger append failed for %s: %v", i+1, len(items), item.Link, err)
		}

		published++
		log.Printf("  [%d/%d] published %.60q (rating %d/%d)", i+1, len(items), item.Title, item.Rating, config.MaxRating)
	}
	return published
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

package feeds

import (
	"context"
	"log"
	"time"

	"feedcurator/config"
	"feedcurator/types"

	"github.com/mmcdole/gofeed"
)

// userAgent mirrors a desktop browser; several feed hosts reject the
// default Go client string.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Aggregator merges entries from multiple feeds into one deduplicated
// candidate list. It only reads the ledger exclusion set; it never
// mutates it.
type Aggregator struct {
	parser *gofeed.Parser
}

// NewAggregator builds an aggregator with a shared feed parser.
func NewAggregator() *Aggregator {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	return &Aggregator{parser: parser}
}

// Aggregate fetches every source and returns candidates that are new
// (absent from processed and not yet seen this run) and recent enough.
// A failing source is logged and skipped; it never aborts the run.
// The second return value counts sources that failed or were invalid.
func (a *Aggregator) Aggregate(ctx context.Context, sources []types.FeedSource, processed map[string]struct{}, maxAge time.Duration) ([]types.CandidateItem, int) {
	candidates := make([]types.CandidateItem, 0)
	seen := make(map[string]struct{}, len(processed))
	for link := range processed {
		seen[link] = struct{}{}
	}

	failed := 0
	for _, source := range sources {
		log.Printf("Reading: %.50s", source.Title)

		items, outcome, err := a.fetchSource(ctx, source.URL)
		if outcome != types.FetchOK {
			if err != nil {
				log.Printf("  feed %s: %v", outcome, err)
			} else {
				log.Printf("  feed %s", outcome)
			}
			if outcome == types.FetchInvalid {
				failed++
			}
			continue
		}

		recentCount := 0
		for _, item := range items {
			if item.Link == "" {
				continue
			}
			if _, dup := seen[item.Link]; dup {
				continue
			}

			recent, recency := entryRecency(item, maxAge, time.Now())
			if !recent {
				continue
			}

			seen[item.Link] = struct{}{}
			recentCount++
			candidates = append(candidates, types.CandidateItem{
				Title:       entryTitle(item),
				Link:        item.Link,
				RSSSummary:  entrySummary(item),
				Recency:     recency,
				SourceTitle: source.Title,
			})
		}

		if recentCount > 0 {
			log.Printf("  %d recent item(s) (< %s)", recentCount, maxAge)
		}
	}

	return candidates, failed
}

// fetchSource retrieves one feed and classifies the result. Feeds are
// assumed reverse-chronological, so only the first MaxEntriesPerFeed
// entries are considered.
func (a *Aggregator) fetchSource(ctx context.Context, feedURL string) ([]*gofeed.Item, types.FetchOutcome, error) {
	feed, err := a.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, types.FetchInvalid, err
	}
	if len(feed.Items) == 0 {
		return nil, types.FetchEmpty, nil
	}

	count := min(len(feed.Items), config.MaxEntriesPerFeed)
	return feed.Items[:count], types.FetchOK, nil
}

// entryRecency determines whether an entry falls inside the age window.
// Timestamp fields are checked in priority order (published, then
// updated); an entry with no usable timestamp is kept and marked
// unknown rather than dropped, so a feed with sparse metadata is not
// silently lost.
func entryRecency(item *gofeed.Item, maxAge time.Duration, now time.Time) (bool, types.Recency) {
	var published *time.Time
	switch {
	case item.PublishedParsed != nil:
		published = item.PublishedParsed
	case item.UpdatedParsed != nil:
		published = item.UpdatedParsed
	default:
		return true, types.UnknownAge()
	}

	age := now.Sub(*published)
	if age < 0 {
		age = 0
	}
	return age <= maxAge, types.KnownAge(age)
}

func entryTitle(item *gofeed.Item) string {
	if item.Title == "" {
		return "Untitled"
	}
	return item.Title
}

// entrySummary carries the inline description forward; it is the
// fallback text source when page extraction fails.
func entrySummary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

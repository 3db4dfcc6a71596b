package config

import "time"

// Aggregation Constants
const (
	// MaxEntriesPerFeed bounds how many entries are read from a single
	// feed; feeds are assumed reverse-chronological.
	MaxEntriesPerFeed = 50

	// DefaultMaxAgeHours filters out entries older than this many hours.
	DefaultMaxAgeHours = 24
)

// Extraction Constants
const (
	// MinContentLength is the minimum trimmed length accepted from either
	// the readability extractor or the feed-summary fallback. Shorter
	// output usually means a paywall or boilerplate page.
	MinContentLength = 100

	// ExtractorTimeout bounds a single readability fetch.
	ExtractorTimeout = 30 * time.Second
)

// Scoring Constants
const (
	// MaxRating is the upper bound of the weighted rating scale.
	MaxRating = 20

	// MaxPromptContentChars is how much article text is sent to the
	// scoring backend per call.
	MaxPromptContentChars = 5000

	// ScoringInterval throttles calls to the scoring backend.
	ScoringInterval = time.Second
)

// Selection Constants
const (
	// DefaultMinRating is the minimum rating required for publication.
	DefaultMinRating = 15

	// DefaultMaxArticles caps how many items are published per run.
	DefaultMaxArticles = 20
)

// Publication Constants
const (
	// MaxFieldLength truncates title and summary fields sent to the store.
	MaxFieldLength = 2000

	// PublishInterval throttles record creation against the store API.
	PublishInterval = 500 * time.Millisecond
)

// Ledger Constants
const (
	// DefaultLedgerFile is the newline-delimited file of published links.
	DefaultLedgerFile = "processed_articles.txt"

	// DefaultRedisLedgerKey names the redis set used by the redis backend.
	DefaultRedisLedgerKey = "curator:published"
)

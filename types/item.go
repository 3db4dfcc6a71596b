package types

import "time"

// FeedSource identifies one configured syndication feed.
type FeedSource struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Recency is the age of a feed entry relative to the run. Entries without
// any usable timestamp are kept (fail-open) and marked unknown so callers
// cannot confuse "no date" with "zero age".
type Recency struct {
	Known bool          `json:"known"`
	Age   time.Duration `json:"age,omitempty"`
}

// KnownAge builds a Recency for an entry with a parseable timestamp.
func KnownAge(age time.Duration) Recency {
	return Recency{Known: true, Age: age}
}

// UnknownAge marks an entry whose timestamp could not be determined.
func UnknownAge() Recency {
	return Recency{}
}

// CandidateItem is a feed entry that survived dedup and recency filtering
// and is awaiting enrichment. Link is the canonical identity and is kept
// verbatim: normalizing it would drift against the ledger built from
// earlier runs.
type CandidateItem struct {
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	RSSSummary  string  `json:"rss_summary,omitempty"`
	Recency     Recency `json:"recency"`
	SourceTitle string  `json:"source"`
}

// EnrichedItem is a candidate plus extracted content and model scoring.
// HasContent false means extraction failed; such items always carry
// rating 0 and never reach publication under a positive threshold.
type EnrichedItem struct {
	CandidateItem
	Content    string `json:"content,omitempty"`
	HasContent bool   `json:"has_content"`
	Rating     int    `json:"rating"`
	Summary    string `json:"summary,omitempty"`
}

// FetchOutcome classifies a single feed fetch.
type FetchOutcome int

const (
	FetchOK FetchOutcome = iota
	FetchEmpty
	FetchInvalid
)

func (o FetchOutcome) String() string {
	switch o {
	case FetchOK:
		return "ok"
	case FetchEmpty:
		return "empty"
	default:
		return "invalid"
	}
}

// RunStats aggregates counters reported at the end of a curation run.
type RunStats struct {
	FeedsConfigured int `json:"feeds_configured"`
	FeedsFailed     int `json:"feeds_failed"`
	Candidates      int `json:"candidates"`
	Scored          int `json:"scored"`
	Selected        int `json:"selected"`
	Published       int `json:"published"`
}

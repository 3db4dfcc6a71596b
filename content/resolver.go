package content

import (
	"log"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"feedcurator/config"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// aggregatorHosts lists feed aggregators whose entry links point at
// interstitial pages that readability cannot extract; for these the
// feed summary is the only usable text source.
var aggregatorHosts = []string{"news.google.com"}

// ExtractFunc fetches a page and returns its readable body text.
type ExtractFunc func(pageURL string, timeout time.Duration) (string, error)

// Resolver turns a candidate link into body text using a fallback
// chain: readability extraction first, then the HTML-stripped feed
// summary. Absence of content is a normal outcome, never an error.
type Resolver struct {
	extract ExtractFunc
	timeout time.Duration
}

// NewResolver builds a resolver backed by the readability extractor.
func NewResolver() *Resolver {
	return &Resolver{extract: readabilityText, timeout: config.ExtractorTimeout}
}

func readabilityText(pageURL string, timeout time.Duration) (string, error) {
	article, err := readability.FromURL(pageURL, timeout)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

// Resolve returns the extracted body text and whether any was found.
func (r *Resolver) Resolve(link, rssSummary string) (string, bool) {
	if !isAggregatorLink(link) {
		text, err := r.extract(link, r.timeout)
		if err != nil {
			log.Printf("  extraction error: %.60v", err)
		} else if trimmed := strings.TrimSpace(text); contentLongEnough(trimmed) {
			log.Printf("  extracted %d characters", utf8.RuneCountInString(trimmed))
			return trimmed, true
		} else {
			log.Printf("  extracted content too short (%d characters)", utf8.RuneCountInString(trimmed))
		}
	}

	if rssSummary != "" {
		if text, ok := summaryText(rssSummary); ok {
			log.Printf("  using feed summary (%d characters)", utf8.RuneCountInString(text))
			return text, true
		}
	}

	log.Printf("  no usable content")
	return "", false
}

// summaryText strips markup from an inline feed summary and accepts it
// under the same minimum-length rule as primary extraction.
func summaryText(rssSummary string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rssSummary))
	if err != nil {
		return "", false
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if !contentLongEnough(text) {
		return "", false
	}
	return text, true
}

func contentLongEnough(text string) bool {
	return utf8.RuneCountInString(text) >= config.MinContentLength
}

func isAggregatorLink(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range aggregatorHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

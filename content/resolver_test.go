package content

import (
	"errors"
	"strings"
	"testing"
	"time"

	"feedcurator/config"
)

func fixedExtract(text string, err error) (ExtractFunc, *int) {
	calls := 0
	return func(pageURL string, timeout time.Duration) (string, error) {
		calls++
		return text, err
	}, &calls
}

func longText(n int) string {
	return strings.Repeat("a", n)
}

func TestResolvePrimaryExtraction(t *testing.T) {
	extract, _ := fixedExtract("  "+longText(300)+"  ", nil)
	r := &Resolver{extract: extract, timeout: config.ExtractorTimeout}

	text, ok := r.Resolve("https://example.com/article", "")
	if !ok {
		t.Fatalf("expected content")
	}
	if text != longText(300) {
		t.Fatalf("expected trimmed extractor output, got %d chars", len(text))
	}
}

func TestResolveShortExtractionFallsBackToSummary(t *testing.T) {
	extract, _ := fixedExtract(longText(40), nil)
	r := &Resolver{extract: extract, timeout: config.ExtractorTimeout}

	summary := "<p>" + longText(180) + "</p>"
	text, ok := r.Resolve("https://example.com/article", summary)
	if !ok {
		t.Fatalf("expected summary fallback to be accepted")
	}
	if text != longText(180) {
		t.Fatalf("expected 180 chars of stripped summary, got %d", len(text))
	}
}

func TestResolveExtractionErrorFallsBackToSummary(t *testing.T) {
	extract, _ := fixedExtract("", errors.New("connection refused"))
	r := &Resolver{extract: extract, timeout: config.ExtractorTimeout}

	summary := "<div><b>" + longText(150) + "</b></div>"
	text, ok := r.Resolve("https://example.com/article", summary)
	if !ok {
		t.Fatalf("expected summary fallback after extraction error")
	}
	if strings.Contains(text, "<") {
		t.Fatalf("markup not stripped: %q", text)
	}
}

func TestResolveAggregatorLinkSkipsExtraction(t *testing.T) {
	extract, calls := fixedExtract(longText(500), nil)
	r := &Resolver{extract: extract, timeout: config.ExtractorTimeout}

	summary := "<p>" + longText(200) + "</p>"
	if _, ok := r.Resolve("https://news.google.com/rss/articles/abc123", summary); !ok {
		t.Fatalf("expected summary to resolve aggregator link")
	}
	if *calls != 0 {
		t.Fatalf("extractor called %d times for aggregator link", *calls)
	}
}

func TestResolveNothingUsable(t *testing.T) {
	extract, _ := fixedExtract(longText(40), nil)
	r := &Resolver{extract: extract, timeout: config.ExtractorTimeout}

	if _, ok := r.Resolve("https://example.com/article", "<p>too short</p>"); ok {
		t.Fatalf("expected absent content when both paths are too short")
	}
	if _, ok := r.Resolve("https://example.com/article", ""); ok {
		t.Fatalf("expected absent content with no summary")
	}
}

func TestSummaryTextCollapsesWhitespace(t *testing.T) {
	html := "<p>" + longText(120) + "</p>\n\n<p>  second   paragraph  </p>"
	text, ok := summaryText(html)
	if !ok {
		t.Fatalf("expected summary to be accepted")
	}
	if strings.Contains(text, "  ") || strings.Contains(text, "\n") {
		t.Fatalf("whitespace not collapsed: %q", text)
	}
}

func TestIsAggregatorLink(t *testing.T) {
	cases := map[string]bool{
		"https://news.google.com/rss/articles/xyz": true,
		"https://example.com/news.google.com":      false,
		"https://sub.news.google.com/page":         true,
		"https://example.com/article":              false,
	}
	for link, want := range cases {
		if got := isAggregatorLink(link); got != want {
			t.Fatalf("isAggregatorLink(%q) = %v, want %v", link, got, want)
		}
	}
}

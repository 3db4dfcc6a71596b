package feeds

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleOPML = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>Subscriptions</title></head>
  <body>
    <outline text="Tech News" title="Tech News">
      <outline text="Example Blog" type="rss" xmlUrl="https://example.com/feed.xml"/>
      <outline title="No Text Attr" type="rss" xmlUrl="https://example.org/rss"/>
    </outline>
    <outline type="rss" xmlUrl="https://untitled.example/feed"/>
    <outline text="Folder Without Feeds"/>
  </body>
</opml>`

func TestLoadOPML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.opml")
	if err := os.WriteFile(path, []byte(sampleOPML), 0o644); err != nil {
		t.Fatalf("write opml: %v", err)
	}

	sources, err := LoadOPML(path)
	if err != nil {
		t.Fatalf("LoadOPML returned error: %v", err)
	}

	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
	if sources[0].URL != "https://example.com/feed.xml" || sources[0].Title != "Example Blog" {
		t.Fatalf("unexpected first source: %+v", sources[0])
	}
	if sources[1].Title != "No Text Attr" {
		t.Fatalf("title attribute fallback not applied: %+v", sources[1])
	}
	if sources[2].Title != "Untitled" {
		t.Fatalf("expected Untitled fallback, got %q", sources[2].Title)
	}
}

func TestLoadOPMLMissingFile(t *testing.T) {
	if _, err := LoadOPML(filepath.Join(t.TempDir(), "absent.opml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadOPMLMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.opml")
	if err := os.WriteFile(path, []byte("<opml><body>"), 0o644); err != nil {
		t.Fatalf("write opml: %v", err)
	}

	if _, err := LoadOPML(path); err == nil {
		t.Fatalf("expected error for malformed OPML")
	}
}

func TestSourcesFromURLs(t *testing.T) {
	sources := SourcesFromURLs([]string{"https://a.example/feed", "https://b.example/feed"})
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].Title != sources[0].URL {
		t.Fatalf("manual source should use URL as title: %+v", sources[0])
	}
}

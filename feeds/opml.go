package feeds

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"feedcurator/types"
)

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr"`
	XMLURL   string        `xml:"xmlUrl,attr"`
	Outlines []opmlOutline `xml:"outline"`
}

type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Body    struct {
		Outlines []opmlOutline `xml:"outline"`
	} `xml:"body"`
}

// LoadOPML reads feed sources from an OPML outline file. Outlines may be
// nested under folder outlines; every outline carrying an xmlUrl becomes
// a source. A missing file yields an empty list and an error the caller
// can log without aborting.
func LoadOPML(path string) ([]types.FeedSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read OPML file: %w", err)
	}

	var doc opmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse OPML file: %w", err)
	}

	var sources []types.FeedSource
	var walk func(outlines []opmlOutline)
	walk = func(outlines []opmlOutline) {
		for _, o := range outlines {
			if url := strings.TrimSpace(o.XMLURL); url != "" {
				sources = append(sources, types.FeedSource{URL: url, Title: outlineTitle(o)})
			}
			walk(o.Outlines)
		}
	}
	walk(doc.Body.Outlines)

	return sources, nil
}

func outlineTitle(o opmlOutline) string {
	if o.Text != "" {
		return o.Text
	}
	if o.Title != "" {
		return o.Title
	}
	return "Untitled"
}

// SourcesFromURLs converts a manual URL list into sources, using the URL
// itself as the display title.
func SourcesFromURLs(urls []string) []types.FeedSource {
	sources := make([]types.FeedSource, 0, len(urls))
	for _, url := range urls {
		sources = append(sources, types.FeedSource{URL: url, Title: url})
	}
	return sources
}

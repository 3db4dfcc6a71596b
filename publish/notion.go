package publish

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
)

// Database property names the curation database is expected to define.
const (
	propTitle   = "Title"
	propURL     = "URL"
	propRating  = "Rating"
	propSummary = "Summary"
)

// NotionStore implements Store by creating one page per record in a
// Notion database.
type NotionStore struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
}

// NewNotionStore builds a client for the given integration token and
// destination database.
func NewNotionStore(apiKey, databaseID string) *NotionStore {
	return &NotionStore{
		client:     notionapi.NewClient(notionapi.Token(apiKey)),
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

func (n *NotionStore) CreateRecord(ctx context.Context, rec Record) error {
	properties := notionapi.Properties{
		propTitle: notionapi.TitleProperty{
			Type:  notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: rec.Title}}},
		},
		propURL: notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  rec.URL,
		},
		propRating: notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: float64(rec.Rating),
		},
	}

	if rec.Summary != "" {
		properties[propSummary] = notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: rec.Summary}}},
		}
	}

	_, err := n.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: n.databaseID,
		},
		Properties: properties,
	})
	if err != nil {
		return fmt.Errorf("create notion page: %w", err)
	}
	return nil
}

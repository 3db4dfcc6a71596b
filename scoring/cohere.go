package scoring

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

const (
	// preamble frames every scoring call; the strict output format is
	// restated so the model does not wrap the reply in prose.
	preamble = "You are an expert assistant that rates and summarizes AI/tech news articles. Return only the rating and the summary in the requested format."

	// scoringTemperature stays low to keep ratings repeatable.
	scoringTemperature = 0.3

	// maxResponseTokens bounds the reply; two short lines fit easily.
	maxResponseTokens = 150

	chatTimeout = 60 * time.Second
)

// CohereBackend implements Backend using the Cohere Chat API.
type CohereBackend struct {
	client *cohereclient.Client
	model  string
}

// NewCohereBackend builds a chat client. The custom HTTP client forces
// HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere endpoint.
func NewCohereBackend(apiKey, model string) *CohereBackend {
	httpClient := &http.Client{
		Timeout: chatTimeout,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereBackend{client: client, model: model}
}

// Complete issues one chat call and returns the raw response text.
func (c *CohereBackend) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	model := c.model
	framing := preamble
	temperature := float64(scoringTemperature)
	maxTokens := maxResponseTokens

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:     prompt,
		Model:       &model,
		Preamble:    &framing,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil {
		return "", errors.New("cohere chat returned empty response")
	}
	return strings.TrimSpace(resp.Text), nil
}

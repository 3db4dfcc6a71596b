package scoring

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"feedcurator/config"
)

// Backend abstracts the text-completion service. Implementations return
// the raw response text for a single prompt.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// promptTemplate fixes the instruction framing and the line-oriented
// response contract. The NOTE/RÉSUMÉ labels are part of the wire format
// the parser depends on; do not localize them.
const promptTemplate = `You must perform two tasks for this article:

1. RATING: rate the article out of 20 using these weighted criteria:
   - Relevance for an AI advisory business (business, regulatory or strategic impact for non-technical decision makers) - weight 4
   - Financial or political impact (funding round above $1B, national/EU/US law, government adoption) - weight 3
   - Originality (fresh news versus a rehash) - weight 2
   - Source clarity (official or institutional) - weight 1

2. SUMMARY: write a very concise summary, at most 2 lines (around 150-200 characters).

Article content:
---
%s
---

Reply EXACTLY in this format (no other text):
NOTE: [number between 0 and 20]
RÉSUMÉ: [your summary, 2 lines maximum]`

var digitRun = regexp.MustCompile(`\d+`)

// Engine scores extracted article text with the language-model backend
// and parses the bounded rating plus short summary out of the reply.
type Engine struct {
	backend Backend
}

// NewEngine wires a scoring backend.
func NewEngine(backend Backend) *Engine {
	return &Engine{backend: backend}
}

// Score rates content on the 0-20 scale and returns a short summary.
// Empty content never reaches the backend and scores 0. Backend and
// parse failures degrade to (0, "") so a single bad call costs one
// item, not the run.
func (e *Engine) Score(ctx context.Context, content string) (int, string) {
	if strings.TrimSpace(content) == "" {
		return 0, ""
	}

	prompt := fmt.Sprintf(promptTemplate, truncateRunes(content, config.MaxPromptContentChars))
	response, err := e.backend.Complete(ctx, prompt)
	if err != nil {
		log.Printf("  scoring error: %v", err)
		return 0, ""
	}

	rating, summary, err := ParseResponse(response)
	if err != nil {
		log.Printf("  unparseable scoring response: %v", err)
		return 0, ""
	}
	return rating, summary
}

// ParseResponse extracts the rating and summary from the backend's
// line-oriented reply. The first digit run on the NOTE line becomes the
// rating, clamped to the scale maximum; the summary line accepts both
// the accented and plain label spellings. A reply without a usable NOTE
// line is an error, which callers turn into a zero score.
func ParseResponse(response string) (int, string, error) {
	rating := -1
	summary := ""

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "NOTE:"):
			digits := digitRun.FindString(strings.TrimPrefix(line, "NOTE:"))
			if digits == "" {
				continue
			}
			n, err := strconv.Atoi(digits)
			if err != nil {
				continue
			}
			if n > config.MaxRating {
				n = config.MaxRating
			}
			rating = n
		case strings.HasPrefix(line, "RÉSUMÉ:"):
			summary = strings.TrimSpace(strings.TrimPrefix(line, "RÉSUMÉ:"))
		case strings.HasPrefix(line, "RESUME:"):
			summary = strings.TrimSpace(strings.TrimPrefix(line, "RESUME:"))
		}
	}

	if rating < 0 {
		return 0, "", fmt.Errorf("no rating line in response %.60q", response)
	}
	return rating, summary, nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

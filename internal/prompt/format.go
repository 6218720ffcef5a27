package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spacesedan/stocksage/internal/models"
)

// FormatQuote renders a quote as two-space indented JSON. A decoded quote
// is rendered from the provider object as received. The output is stable:
// the same quote always yields the same bytes.
func FormatQuote(q *models.Quote) (string, error) {
	if q == nil {
		return "", fmt.Errorf("[Prompt] cannot format nil quote")
	}

	var buf bytes.Buffer
	if len(q.Raw) > 0 {
		var compact bytes.Buffer
		if err := json.Compact(&compact, q.Raw); err != nil {
			return "", fmt.Errorf("[Prompt] failed to format quote: %w", err)
		}
		if err := json.Indent(&buf, compact.Bytes(), "", "  "); err != nil {
			return "", fmt.Errorf("[Prompt] failed to format quote: %w", err)
		}
		return buf.String(), nil
	}

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(q); err != nil {
		return "", fmt.Errorf("[Prompt] failed to format quote: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// FormatNews joins news items into "{title}: {summary}" lines.
func FormatNews(items []models.NewsItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s: %s", item.Title, item.Summary))
	}
	return strings.Join(lines, "\n")
}

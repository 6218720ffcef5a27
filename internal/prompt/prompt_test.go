package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spacesedan/stocksage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatQuoteIsStable(t *testing.T) {
	q := &models.Quote{
		Symbol:            "PLTR",
		Name:              "Palantir Technologies Inc.",
		Price:             24.5,
		ChangesPercentage: 3.2,
		Volume:            51234567,
		Timestamp:         1714560000,
	}

	first, err := FormatQuote(q)
	require.NoError(t, err)
	second, err := FormatQuote(q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "\n  \"symbol\": \"PLTR\",")
	assert.Contains(t, first, "\"price\": 24.5")
}

func TestFormatQuoteKeepsProviderObject(t *testing.T) {
	var quotes []models.Quote
	raw := `[{"symbol":"T","name":"AT&T Inc.","price":17.2,"pe":null,"eps":null,"earningsAnnouncement":null,"dividendYield":6.5}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &quotes))
	require.Len(t, quotes, 1)
	assert.Equal(t, "AT&T Inc.", quotes[0].Name)

	text, err := FormatQuote(&quotes[0])
	require.NoError(t, err)

	assert.Equal(t, `{
  "symbol": "T",
  "name": "AT&T Inc.",
  "price": 17.2,
  "pe": null,
  "eps": null,
  "earningsAnnouncement": null,
  "dividendYield": 6.5
}`, text)

	again, err := FormatQuote(&quotes[0])
	require.NoError(t, err)
	assert.Equal(t, text, again)
}

func TestFormatQuoteBuiltInCodeDoesNotEscapeHTML(t *testing.T) {
	text, err := FormatQuote(&models.Quote{Symbol: "T", Name: "AT&T Inc."})
	require.NoError(t, err)

	assert.Contains(t, text, `"name": "AT&T Inc."`)
	assert.NotContains(t, text, `\u0026`)
	assert.False(t, strings.HasSuffix(text, "\n"))
}

func TestFormatQuoteNil(t *testing.T) {
	_, err := FormatQuote(nil)
	require.Error(t, err)
}

func TestFormatNews(t *testing.T) {
	items := []models.NewsItem{
		{Title: "Palantir wins contract", Summary: "A new defense deal."},
		{Title: "Analysts upgrade PLTR", Summary: "Price target raised."},
	}

	assert.Equal(t,
		"Palantir wins contract: A new defense deal.\nAnalysts upgrade PLTR: Price target raised.",
		FormatNews(items))
	assert.Equal(t, "", FormatNews(nil))
}

func TestRenderStockPrompt(t *testing.T) {
	p, err := Render(Fields{
		StockSymbol: "PLTR",
		StockData:   `{"symbol": "PLTR"}`,
		StockNews:   "Headline: Summary",
		Language:    "Traditional Chinese",
	})
	require.NoError(t, err)

	assert.Contains(t, p.System, "trendPrediction")
	assert.Contains(t, p.User, "predict the trend for the stock PLTR")
	assert.Contains(t, p.User, `{"symbol": "PLTR"}`)
	assert.Contains(t, p.User, "Headline: Summary")
	assert.Contains(t, p.User, "in Traditional Chinese")
	assert.Equal(t, "PLTR", p.Fields.StockSymbol)
}

func TestRenderStockPromptWithoutNews(t *testing.T) {
	p, err := Render(Fields{StockSymbol: "PLTR", StockData: "{}"})
	require.NoError(t, err)

	assert.Contains(t, p.User, "No recent news available.")
	assert.Contains(t, p.User, "in English")
}

func TestRenderMarketNewsPrompt(t *testing.T) {
	p, err := Render(Fields{MarketNews: "The Fed held rates steady."})
	require.NoError(t, err)

	assert.Contains(t, p.User, "US stock market")
	assert.Contains(t, p.User, "The Fed held rates steady.")
	assert.NotContains(t, p.User, "Real-time Stock Data")
}

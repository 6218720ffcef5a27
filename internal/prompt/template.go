package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

const systemPrompt = `You are an AI assistant that predicts stock market trends based on real-time data and recent news.

Output JSON only, no other text:
{
  "trendPrediction": "a short trend label (e.g. bullish, bearish, neutral)",
  "confidenceLevel": a number between 0 and 1 indicating the certainty of the prediction,
  "reasoning": "explanation of the factors that justify the prediction"
}`

const stockPrompt = `Analyze the following real-time stock data and recent news, then predict the trend for the stock {{.StockSymbol}}. Provide a confidence level (0-1) for your prediction and explain your reasoning. Please provide the prediction and reasoning in {{.Language}}.

Real-time Stock Data:
{{.StockData}}

Recent News:
{{if .StockNews}}{{.StockNews}}{{else}}No recent news available.{{end}}

Your Prediction (JSON format):`

const marketNewsPrompt = `Analyze the following recent market news, then predict the trend of the US stock market. Provide a confidence level (0-1) for your prediction and explain your reasoning. Please provide the prediction and reasoning in {{.Language}}.

Recent Market News:
{{.MarketNews}}

Your Prediction (JSON format):`

var (
	stockTemplate      = template.Must(template.New("stock").Parse(stockPrompt))
	marketNewsTemplate = template.Must(template.New("marketNews").Parse(marketNewsPrompt))
)

// Fields are the template inputs. StockSymbol selects the symbol-driven
// prompt; otherwise MarketNews is used.
type Fields struct {
	StockSymbol string
	MarketNews  string
	StockData   string
	StockNews   string
	Language    string
}

// Prompt is a rendered prompt plus the fields it was rendered from, so
// models that do not read free text can still use the structured inputs.
type Prompt struct {
	System string
	User   string
	Fields Fields
}

func Render(f Fields) (Prompt, error) {
	if f.Language == "" {
		f.Language = "English"
	}

	tmpl := marketNewsTemplate
	if f.StockSymbol != "" {
		tmpl = stockTemplate
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, f); err != nil {
		return Prompt{}, fmt.Errorf("[Prompt] failed to render %s prompt: %w", tmpl.Name(), err)
	}

	return Prompt{
		System: systemPrompt,
		User:   sb.String(),
		Fields: f,
	}, nil
}

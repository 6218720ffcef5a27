package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

const (
	BullishThreshold = 0.20
	BearishThreshold = -0.20
)

var (
	analyzer = govader.NewSentimentIntensityAnalyzer()

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and strips the resulting markup,
// collapsing whitespace.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(RemoveLinks(input)), blackfriday.WithNoExtensions())
	plainText := tagPattern.ReplaceAllString(string(output), " ")
	return strings.Join(strings.Fields(plainText), " ")
}

// Analyze returns the VADER compound score of text and its trend label.
func Analyze(text string) (float64, string) {
	score := analyzer.PolarityScores(ConvertMarkdownToText(text)).Compound
	return score, Label(score)
}

func Label(score float64) string {
	switch {
	case score >= BullishThreshold:
		return "bullish"
	case score <= BearishThreshold:
		return "bearish"
	default:
		return "neutral"
	}
}

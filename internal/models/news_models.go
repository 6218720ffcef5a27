package models

import "strings"

// Sentinels substituted for fields the upstream feed leaves out.
const (
	NoTitle            = "No Title"
	NoDescription      = "No Description"
	NoSummary          = "No Summary"
	NoContent          = "No Content"
	UnknownSource      = "Unknown"
	UnknownPublishedAt = "Unknown"
	NoURL              = "#"
)

type NewsSource struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// NewsItem is the normalized article shape. Every field is always present:
// strings carry a sentinel, nullable fields are an explicit null.
type NewsItem struct {
	Source      NewsSource `json:"source"`
	Author      *string    `json:"author"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Summary     string     `json:"summary"`
	URL         string     `json:"url"`
	URLToImage  *string    `json:"urlToImage"`
	PublishedAt string     `json:"publishedAt"`
	Content     string     `json:"content"`
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func orNil(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

// NormalizeNewsAPIArticle maps a NewsAPI article into a NewsItem.
func NormalizeNewsAPIArticle(a NewsAPIArticle) NewsItem {
	description := orDefault(a.Description, NoDescription)
	return NewsItem{
		Source: NewsSource{
			ID:   orNil(a.Source.ID),
			Name: orDefault(a.Source.Name, UnknownSource),
		},
		Author:      orNil(a.Author),
		Title:       orDefault(a.Title, NoTitle),
		Description: description,
		Summary:     description,
		URL:         orDefault(a.URL, NoURL),
		URLToImage:  orNil(a.URLToImage),
		PublishedAt: orDefault(a.PublishedAt, UnknownPublishedAt),
		Content:     orDefault(a.Content, NoContent),
	}
}

// NormalizeFMPStockNews maps a Financial Modeling Prep news item into a
// NewsItem. The article body doubles as description and summary.
func NormalizeFMPStockNews(n FMPStockNews) NewsItem {
	return NewsItem{
		Source:      NewsSource{Name: orDefault(n.Site, UnknownSource)},
		Title:       orDefault(n.Title, NoTitle),
		Description: orDefault(n.Text, NoDescription),
		Summary:     orDefault(n.Text, NoSummary),
		URL:         orDefault(n.URL, NoURL),
		URLToImage:  orNil(n.Image),
		PublishedAt: orDefault(n.PublishedDate, UnknownPublishedAt),
		Content:     orDefault(n.Text, NoContent),
	}
}

// NewsArticle is a provider-neutral article used by SDK-backed providers.
type NewsArticle struct {
	Source      string
	Headline    string
	Summary     string
	URL         string
	Image       string
	PublishedAt string
}

func NormalizeNewsArticle(a NewsArticle) NewsItem {
	return NewsItem{
		Source:      NewsSource{Name: orDefault(a.Source, UnknownSource)},
		Title:       orDefault(a.Headline, NoTitle),
		Description: orDefault(a.Summary, NoDescription),
		Summary:     orDefault(a.Summary, NoSummary),
		URL:         orDefault(a.URL, NoURL),
		URLToImage:  orNil(a.Image),
		PublishedAt: orDefault(a.PublishedAt, UnknownPublishedAt),
		Content:     orDefault(a.Summary, NoContent),
	}
}

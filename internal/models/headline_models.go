package models

// HeadlineSet is the payload of GET /api/news.
type HeadlineSet struct {
	NewsHeadlines []NewsItem `json:"newsHeadlines"`
	// Hostnames are the distinct hosts of every urlToImage, for image
	// allow-listing on the frontend.
	Hostnames []string `json:"hostnames"`
}

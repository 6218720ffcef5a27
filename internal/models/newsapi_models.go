package models

type NewsAPITopHeadlinesResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code,omitempty"`
	Message      string           `json:"message,omitempty"`
	TotalResults int              `json:"totalResults"`
	Articles     []NewsAPIArticle `json:"articles"`
}

// NewsAPIArticle is the raw article shape. Any field may be null upstream;
// null decodes to the zero value and is replaced during normalization.
type NewsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

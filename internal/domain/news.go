package domain

// Article is a processed news article ready for display
type Article struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url" yaml:"url"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	Source      string `json:"source" yaml:"source"`
	PublishedAt string `json:"publishedAt" yaml:"publishedAt"`
}

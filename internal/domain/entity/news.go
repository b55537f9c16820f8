package entity

// NewsItem is a raw article returned by a news source.
// PublishedAt keeps the source-specific date text; it is formatted for display later.
type NewsItem struct {
	Title       string
	Description string
	URL         string
	PublishedAt string
	SourceName  string
}

package feed

import (
	"strings"
	"time"

	"climate-dashboard/internal/domain/entity"
)

// newsDateLayouts covers the RSS/RFC-822 family and the ISO-8601 forms news APIs emit.
var newsDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatNewsDate renders a source date as "Month DD, YYYY".
// Text that matches none of the known layouts is returned unchanged.
func FormatNewsDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}
	for _, layout := range newsDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(entity.DisplayDateLayout)
		}
	}
	return raw
}

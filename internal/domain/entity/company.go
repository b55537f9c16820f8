// Package entity defines the core domain types of the dashboard: the tracked
// companies, operator-submitted manual updates, fetched news items and the
// display cards derived from both.
package entity

import "strings"

// Company represents one tracked organisation in the roster.
// Companies are defined once at startup and never mutated afterwards.
type Company struct {
	Name        string `yaml:"name" json:"name"`
	Group       string `yaml:"group" json:"group"`
	CEO         string `yaml:"ceo" json:"ceo,omitempty"`
	Description string `yaml:"description" json:"description"`
	SearchQuery string `yaml:"search_query" json:"search_query,omitempty"`
}

// Query returns the news search query for the company.
// Roster rows without an explicit query are searched by name.
func (c Company) Query() string {
	if q := strings.TrimSpace(c.SearchQuery); q != "" {
		return q
	}
	return c.Name
}

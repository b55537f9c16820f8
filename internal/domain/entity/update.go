package entity

import "strings"

// DisplayDateLayout is the human-readable date format used on cards
// ("Month DD, YYYY").
const DisplayDateLayout = "January 02, 2006"

// Category classifies a manual update. The value is the label shown in the
// submission form and persisted in the "type" field.
type Category string

const (
	CategoryPartnership   Category = "Partnership Announcement"
	CategoryProductLaunch Category = "Product Launch"
	CategoryFunding       Category = "Funding News"
	CategoryTechMilestone Category = "Technology Milestone"
	CategoryOther         Category = "Other"
)

// Categories returns all categories in form order.
func Categories() []Category {
	return []Category{
		CategoryPartnership,
		CategoryProductLaunch,
		CategoryFunding,
		CategoryTechMilestone,
		CategoryOther,
	}
}

// categoryAliases maps normalised spellings to categories.
var categoryAliases = map[string]Category{
	"partnershipannouncement": CategoryPartnership,
	"partnership":             CategoryPartnership,
	"productlaunch":           CategoryProductLaunch,
	"product":                 CategoryProductLaunch,
	"fundingnews":             CategoryFunding,
	"funding":                 CategoryFunding,
	"technologymilestone":     CategoryTechMilestone,
	"techmilestone":           CategoryTechMilestone,
	"technology":              CategoryTechMilestone,
	"other":                   CategoryOther,
}

// ParseCategory resolves a category from its label or a short key such as
// "funding" or "tech_milestone". Matching ignores case, spaces, '-' and '_'.
func ParseCategory(s string) (Category, bool) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
	c, ok := categoryAliases[key]
	return c, ok
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ManualUpdate is an operator-submitted update about a company.
// Updates are append-only: once stored they are never edited or deleted.
// The JSON field names are the persisted file format.
type ManualUpdate struct {
	Company     string   `json:"company"`
	Category    Category `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	// Date is already in final display form and is shown unchanged.
	Date string `json:"date"`
}

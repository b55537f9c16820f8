package entity

// SourceLabelManual is the source label shown on cards built from manual updates.
const SourceLabelManual = "Company Update"

// CardKind tells which source a display card was built from.
type CardKind string

const (
	CardKindManual      CardKind = "manual"
	CardKindNews        CardKind = "news"
	CardKindPlaceholder CardKind = "placeholder"
)

// DisplayCard is the render-ready projection of a manual update or news item.
// Link is only set on news cards.
type DisplayCard struct {
	Kind          CardKind `json:"kind"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	FormattedDate string   `json:"formatted_date"`
	SourceLabel   string   `json:"source_label"`
	Link          string   `json:"link,omitempty"`
}

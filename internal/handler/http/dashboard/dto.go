package dashboard

import (
	"climate-dashboard/internal/domain/entity"
)

// GroupsResponse lists the scope selector options, starting with "All".
type GroupsResponse struct {
	Groups []string `json:"groups"`
}

// CompaniesResponse is the filtered roster.
type CompaniesResponse struct {
	Group     string           `json:"group"`
	Companies []entity.Company `json:"companies"`
}

// SubmitRequest is the JSON body of POST /api/updates.
// Type accepts a category label ("Funding News") or short key ("funding").
// Available optionally restricts the companies that may be chosen.
type SubmitRequest struct {
	Company     string   `json:"company"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Available   []string `json:"available,omitempty"`
}

// ValidationErrorResponse names the fields that blocked a submission.
type ValidationErrorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
	Invalid []string `json:"invalid"`
}

// HistoryResponse is the insights list of every stored update.
type HistoryResponse struct {
	Updates []entity.ManualUpdate `json:"updates"`
}

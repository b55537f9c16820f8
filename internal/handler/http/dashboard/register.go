// Package dashboard serves the climate news dashboard: the JSON API under
// /api and the server-rendered page with its submission form.
package dashboard

import (
	"context"
	"net/http"

	"climate-dashboard/internal/domain/entity"
	feedUC "climate-dashboard/internal/usecase/feed"
	updateUC "climate-dashboard/internal/usecase/update"
)

// Roster lists the tracked companies and their groups.
type Roster interface {
	List() []entity.Company
	Groups() []string
}

// FeedBuilder renders the per-company feed.
type FeedBuilder interface {
	Build(ctx context.Context, companies []entity.Company) ([]feedUC.EntityFeed, error)
}

// Updates accepts submissions and lists past ones.
type Updates interface {
	Submit(ctx context.Context, s updateUC.Submission) (entity.ManualUpdate, error)
	History(ctx context.Context) ([]entity.ManualUpdate, error)
}

// Register wires every dashboard route onto mux.
func Register(mux *http.ServeMux, roster Roster, feed FeedBuilder, updates Updates) {
	mux.Handle("GET /api/companies", CompaniesHandler{Roster: roster})
	mux.Handle("GET /api/groups", GroupsHandler{Roster: roster})
	mux.Handle("GET /api/feed", FeedHandler{Roster: roster, Feed: feed})
	mux.Handle("GET /api/updates", HistoryHandler{Updates: updates})
	mux.Handle("POST /api/updates", SubmitHandler{Updates: updates})

	mux.Handle("POST /updates", FormHandler{Roster: roster, Updates: updates})
	mux.Handle("GET /{$}", PageHandler{Roster: roster, Feed: feed, Updates: updates})
}

package dashboard

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/handler/http/respond"
	feedUC "climate-dashboard/internal/usecase/feed"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// formFields are the submission fields a flash message may name.
var formFields = map[string]string{
	"company":     "company",
	"type":        "update type",
	"title":       "title",
	"description": "description",
}

type flash struct {
	Kind    string // success | warning | error
	Message string
}

type pageData struct {
	Groups     []string
	Group      string
	Names      []string
	Companies  []entity.Company
	Selected   map[string]bool
	Feeds      []feedUC.EntityFeed
	Categories []entity.Category
	History    []entity.ManualUpdate
	Flash      *flash
	Error      string
}

// PageHandler renders the dashboard: news feed, submission form and insights.
type PageHandler struct {
	Roster  Roster
	Feed    FeedBuilder
	Updates Updates
}

func (h PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := parseSelection(q, h.Roster)

	data := pageData{
		Groups:     append([]string{feedUC.AllGroups}, h.Roster.Groups()...),
		Group:      sel.Group,
		Names:      sel.Names,
		Companies:  sel.Filtered,
		Selected:   make(map[string]bool, len(sel.Selected)),
		Categories: entity.Categories(),
		Flash:      flashFromQuery(q),
	}
	for _, c := range sel.Selected {
		data.Selected[c.Name] = true
	}

	feeds, err := h.Feed.Build(r.Context(), sel.Selected)
	if err != nil {
		h.renderError(w, r, data, err)
		return
	}
	data.Feeds = feeds

	history, err := h.Updates.History(r.Context())
	if err != nil {
		h.renderError(w, r, data, err)
		return
	}
	data.History = history

	render(w, http.StatusOK, data)
}

// renderError keeps the page usable (selectors and form) when the update
// store cannot be read, and reports the failure with a 500.
func (h PageHandler) renderError(w http.ResponseWriter, r *http.Request, data pageData, err error) {
	msg := "internal server error"
	var appErr *respond.AppError
	if errors.As(storeFailure(err), &appErr) {
		msg = appErr.UserMsg
	}
	slog.ErrorContext(r.Context(), "dashboard render failed",
		slog.String("error", respond.SanitizeError(err)))

	data.Feeds = nil
	data.History = nil
	data.Error = msg
	render(w, http.StatusInternalServerError, data)
}

func render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		// テンプレートの不具合は部分的な HTML を返さない
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func flashFromQuery(q url.Values) *flash {
	switch q.Get("status") {
	case statusSubmitted:
		return &flash{Kind: "success", Message: "Update submitted successfully!"}
	case statusInvalid:
		var parts []string
		for _, key := range []string{"missing", "invalid"} {
			var names []string
			for _, f := range strings.Split(q.Get(key), ",") {
				if label, ok := formFields[f]; ok {
					names = append(names, label)
				}
			}
			if len(names) > 0 {
				parts = append(parts, key+" "+strings.Join(names, ", "))
			}
		}
		msg := "Please fill in all fields"
		if len(parts) > 0 {
			msg += ": " + strings.Join(parts, "; ")
		}
		return &flash{Kind: "warning", Message: msg}
	case statusFailed:
		return &flash{Kind: "error", Message: "The update could not be saved. Please try again."}
	}
	return nil
}

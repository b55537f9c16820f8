package update

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/observability/metrics"
	"climate-dashboard/internal/repository"
)

// Notifier announces an accepted update. Implementations must not block.
type Notifier interface {
	NotifyUpdate(ctx context.Context, company entity.Company, u entity.ManualUpdate) error
}

// Roster resolves companies by name and lists them in display order.
type Roster interface {
	List() []entity.Company
	Get(name string) (entity.Company, error)
}

// Submission is the raw operator input.
// Available narrows the companies that may be chosen, normally the currently
// filtered list; when empty the whole roster is allowed.
type Submission struct {
	Company     string   `json:"company"`
	Category    string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Available   []string `json:"available,omitempty"`
}

// Service handles manual update submissions and history.
type Service struct {
	Repo     repository.UpdateRepository
	Roster   Roster
	Notifier Notifier
	Now      func() time.Time
}

// NewService creates a Service using the wall clock.
// notifier may be nil.
func NewService(repo repository.UpdateRepository, roster Roster, notifier Notifier) *Service {
	return &Service{
		Repo:     repo,
		Roster:   roster,
		Notifier: notifier,
		Now:      time.Now,
	}
}

// Submit validates s and appends the resulting update.
// Validation problems return a *ValidationFailure and leave the store alone.
func (svc *Service) Submit(ctx context.Context, s Submission) (entity.ManualUpdate, error) {
	u, company, err := svc.validate(s)
	if err != nil {
		metrics.RecordUpdateSubmitted("rejected")
		slog.InfoContext(ctx, "update submission rejected", slog.Any("error", err))
		return entity.ManualUpdate{}, err
	}

	u.Date = svc.Now().Format(entity.DisplayDateLayout)

	if err := svc.Repo.Append(ctx, u); err != nil {
		metrics.RecordUpdateSubmitted("failed")
		return entity.ManualUpdate{}, fmt.Errorf("append update: %w", err)
	}
	metrics.RecordUpdateSubmitted("accepted")

	slog.InfoContext(ctx, "update submitted",
		slog.String("company", u.Company),
		slog.String("type", string(u.Category)),
		slog.String("title", u.Title))

	if svc.Notifier != nil {
		if err := svc.Notifier.NotifyUpdate(ctx, company, u); err != nil {
			slog.WarnContext(ctx, "update notification failed", slog.Any("error", err))
		}
	}
	return u, nil
}

func (svc *Service) validate(s Submission) (entity.ManualUpdate, entity.Company, error) {
	var failure ValidationFailure

	name := strings.TrimSpace(s.Company)
	title := strings.TrimSpace(s.Title)
	description := strings.TrimSpace(s.Description)

	var company entity.Company
	if name == "" {
		failure.Missing = append(failure.Missing, "company")
	} else if c, err := svc.Roster.Get(name); err != nil || !isAvailable(name, s.Available) {
		failure.Invalid = append(failure.Invalid, "company")
	} else {
		company = c
	}

	var category entity.Category
	if strings.TrimSpace(s.Category) == "" {
		failure.Missing = append(failure.Missing, "type")
	} else if c, ok := entity.ParseCategory(s.Category); !ok {
		failure.Invalid = append(failure.Invalid, "type")
	} else {
		category = c
	}

	if title == "" {
		failure.Missing = append(failure.Missing, "title")
	}
	if description == "" {
		failure.Missing = append(failure.Missing, "description")
	}

	if len(failure.Missing) > 0 || len(failure.Invalid) > 0 {
		return entity.ManualUpdate{}, entity.Company{}, &failure
	}

	return entity.ManualUpdate{
		Company:     company.Name,
		Category:    category,
		Title:       title,
		Description: description,
	}, company, nil
}

func isAvailable(name string, available []string) bool {
	return len(available) == 0 || slices.Contains(available, name)
}

// History returns every stored update for the insights view: roster order
// first, then companies no longer in the roster in name order. Within a
// company, updates keep their insertion order.
func (svc *Service) History(ctx context.Context) ([]entity.ManualUpdate, error) {
	state, err := svc.Repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load updates: %w", err)
	}

	out := make([]entity.ManualUpdate, 0)
	seen := make(map[string]struct{}, len(state))
	for _, c := range svc.Roster.List() {
		out = append(out, state[c.Name]...)
		seen[c.Name] = struct{}{}
	}

	var orphans []string
	for name := range state {
		if _, ok := seen[name]; !ok {
			orphans = append(orphans, name)
		}
	}
	slices.Sort(orphans)
	for _, name := range orphans {
		out = append(out, state[name]...)
	}
	return out, nil
}

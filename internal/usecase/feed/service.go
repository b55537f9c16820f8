package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/observability/metrics"
	"climate-dashboard/internal/observability/tracing"
	"climate-dashboard/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// MaxNewsItems is the number of news cards shown per company.
	MaxNewsItems = 5

	// DefaultFetchTimeout bounds a single company's news fetch.
	DefaultFetchTimeout = 5 * time.Second
)

// NewsSource fetches recent articles about a company.
type NewsSource interface {
	Fetch(ctx context.Context, company entity.Company) ([]entity.NewsItem, error)
}

// EntityFeed is the rendered feed of one company.
// Notice is set when news could not be fetched; the cards are still valid.
type EntityFeed struct {
	Company entity.Company       `json:"company"`
	Cards   []entity.DisplayCard `json:"cards"`
	Notice  string               `json:"notice,omitempty"`
}

// Service aggregates manual updates and fetched news into display cards.
type Service struct {
	Updates      repository.UpdateRepository
	News         NewsSource
	Provider     string
	FetchTimeout time.Duration
}

// NewService creates a feed Service. A non-positive fetchTimeout falls back
// to DefaultFetchTimeout.
func NewService(updates repository.UpdateRepository, news NewsSource, provider string, fetchTimeout time.Duration) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Service{
		Updates:      updates,
		News:         news,
		Provider:     provider,
		FetchTimeout: fetchTimeout,
	}
}

// Build renders the feed for companies, in the given order.
//
// The update store is read once per call. A store failure aborts the whole
// call; a news failure only adds a notice to that company's feed.
// Fetches run one after another, each bounded by FetchTimeout.
func (s *Service) Build(ctx context.Context, companies []entity.Company) ([]EntityFeed, error) {
	manual, err := s.Updates.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load updates: %w", err)
	}

	feeds := make([]EntityFeed, 0, len(companies))
	for _, c := range companies {
		news, fetchErr := s.fetch(ctx, c)

		f := EntityFeed{
			Company: c,
			Cards:   BuildCards(c, manual[c.Name], news),
		}
		if fetchErr != nil {
			f.Notice = fetchErr.Error()
		}
		recordCards(f.Cards)
		feeds = append(feeds, f)
	}
	return feeds, nil
}

// fetch returns at most MaxNewsItems items. Any failure is returned as a
// *FetchError together with an empty result.
func (s *Service) fetch(ctx context.Context, c entity.Company) ([]entity.NewsItem, error) {
	if s.News == nil {
		return nil, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.FetchTimeout)
	defer cancel()

	fetchCtx, span := tracing.StartSpan(fetchCtx, "feed.fetch",
		attribute.String("company", c.Name),
		attribute.String("provider", s.Provider))
	defer span.End()

	start := time.Now()
	items, err := s.News.Fetch(fetchCtx, c)
	metrics.RecordNewsFetch(s.Provider, err == nil, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "news fetch failed")
		var fe *FetchError
		if !errors.As(err, &fe) {
			fe = &FetchError{Company: c.Name, Cause: err}
		}
		slog.WarnContext(ctx, "news fetch failed",
			slog.String("company", c.Name),
			slog.String("provider", s.Provider),
			slog.Any("error", fe.Cause))
		return nil, fe
	}

	if len(items) > MaxNewsItems {
		items = items[:MaxNewsItems]
	}
	return items, nil
}

// BuildCards produces the display cards for one company: all manual updates
// in submission order, then the news items in source order. With neither, a
// single placeholder card is returned.
func BuildCards(c entity.Company, manual []entity.ManualUpdate, news []entity.NewsItem) []entity.DisplayCard {
	if len(manual) == 0 && len(news) == 0 {
		return []entity.DisplayCard{Placeholder(c)}
	}

	if len(news) > MaxNewsItems {
		news = news[:MaxNewsItems]
	}

	cards := make([]entity.DisplayCard, 0, len(manual)+len(news))
	for _, u := range manual {
		cards = append(cards, ManualCard(u))
	}
	for _, n := range news {
		cards = append(cards, NewsCard(n))
	}
	return cards
}

// ManualCard projects a manual update. Its date is already in display form.
func ManualCard(u entity.ManualUpdate) entity.DisplayCard {
	return entity.DisplayCard{
		Kind:          entity.CardKindManual,
		Title:         u.Title,
		Description:   u.Description,
		FormattedDate: u.Date,
		SourceLabel:   entity.SourceLabelManual,
	}
}

// NewsCard projects a fetched news item.
func NewsCard(n entity.NewsItem) entity.DisplayCard {
	return entity.DisplayCard{
		Kind:          entity.CardKindNews,
		Title:         n.Title,
		Description:   n.Description,
		FormattedDate: FormatNewsDate(n.PublishedAt),
		SourceLabel:   n.SourceName,
		Link:          n.URL,
	}
}

// Placeholder is the single card shown for a company with nothing to show.
func Placeholder(c entity.Company) entity.DisplayCard {
	return entity.DisplayCard{
		Kind:        entity.CardKindPlaceholder,
		Title:       fmt.Sprintf("No updates available for %s", c.Name),
		Description: "No manual updates or recent news were found.",
	}
}

func recordCards(cards []entity.DisplayCard) {
	counts := make(map[entity.CardKind]int, 3)
	for _, c := range cards {
		counts[c.Kind]++
	}
	for kind, n := range counts {
		metrics.RecordCardsRendered(string(kind), n)
	}
}

// Package scraper fetches company news from the Google News RSS search feed.
// It uses the gofeed library to parse feed content behind a circuit breaker.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/resilience/circuitbreaker"
	"climate-dashboard/internal/usecase/feed"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
)

// DefaultBaseURL is the Google News host.
const DefaultBaseURL = "https://news.google.com"

const userAgent = "ClimateDashboardBot"

// RSSFetcher implements feed.NewsSource using the gofeed library.
type RSSFetcher struct {
	client         *http.Client
	baseURL        string
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewRSSFetcher creates a new RSSFetcher. An empty baseURL uses DefaultBaseURL.
func NewRSSFetcher(client *http.Client, baseURL string) *RSSFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &RSSFetcher{
		client:         client,
		baseURL:        strings.TrimRight(baseURL, "/"),
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsFeedConfig()),
	}
}

// Fetch searches Google News for the company and returns at most
// feed.MaxNewsItems items in feed order. Failures come back as *feed.FetchError.
func (f *RSSFetcher) Fetch(ctx context.Context, company entity.Company) ([]entity.NewsItem, error) {
	items, err := circuitbreaker.Do(f.circuitBreaker, func() ([]entity.NewsItem, error) {
		return f.doFetch(ctx, company.Query())
	})
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			slog.Warn("feed fetch circuit breaker open, request rejected",
				slog.String("service", "news-rss"),
				slog.String("company", company.Name),
				slog.String("state", f.circuitBreaker.State().String()))
		}
		return nil, &feed.FetchError{Company: company.Name, Cause: err}
	}
	return items, nil
}

// SearchURL returns the feed URL for a search query.
func (f *RSSFetcher) SearchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")
	return f.baseURL + "/rss/search?" + params.Encode()
}

// doFetch performs the actual feed fetch without the circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, query string) ([]entity.NewsItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = f.client
	fp.RSSTranslator = &sourceTranslator{}

	parsed, err := fp.ParseURLWithContext(f.SearchURL(query), ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, fmt.Errorf("google news status %d", httpErr.StatusCode)
		}
		return nil, fmt.Errorf("parse google news feed: %w", err)
	}

	items := make([]entity.NewsItem, 0, min(len(parsed.Items), feed.MaxNewsItems))
	for _, it := range parsed.Items {
		if len(items) == feed.MaxNewsItems {
			break
		}

		sourceName := parsed.Title
		if name := it.Custom[customSourceKey]; name != "" {
			sourceName = name
		}

		items = append(items, entity.NewsItem{
			Title:       strings.TrimSpace(it.Title),
			Description: htmlToText(it.Description),
			URL:         it.Link,
			// pubDate は生の文字列のまま渡し、整形は feed.FormatNewsDate に任せる
			PublishedAt: it.Published,
			SourceName:  sourceName,
		})
	}
	return items, nil
}

const customSourceKey = "source"

// sourceTranslator keeps the RSS <source> element, which the default
// translator drops, in Item.Custom.
type sourceTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *sourceTranslator) Translate(in interface{}) (*gofeed.Feed, error) {
	out, err := t.DefaultRSSTranslator.Translate(in)
	if err != nil {
		return nil, err
	}
	rf, ok := in.(*rss.Feed)
	if !ok {
		return out, nil
	}
	for i, it := range rf.Items {
		if i >= len(out.Items) || it.Source == nil {
			continue
		}
		name := strings.TrimSpace(it.Source.Title)
		if name == "" {
			continue
		}
		if out.Items[i].Custom == nil {
			out.Items[i].Custom = map[string]string{}
		}
		out.Items[i].Custom[customSourceKey] = name
	}
	return out, nil
}

// htmlToText reduces an HTML fragment to its visible text with collapsed whitespace.
func htmlToText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Package newsapi fetches company news from the NewsAPI "everything" endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/resilience/circuitbreaker"
	"climate-dashboard/internal/usecase/feed"
)

const (
	// DefaultBaseURL is the public NewsAPI endpoint.
	DefaultBaseURL = "https://newsapi.org"

	// DefaultHistoryDays is how far back articles are searched.
	DefaultHistoryDays = 7

	// MaxHistoryDays matches the free plan's search window.
	MaxHistoryDays = 30

	maxErrorBody = 4096
)

// ErrAPIStatus indicates that NewsAPI answered with status "error".
var ErrAPIStatus = errors.New("newsapi returned error status")

// Config holds NewsAPI client settings.
type Config struct {
	APIKey      string
	BaseURL     string
	HistoryDays int
	Timeout     time.Duration
}

// Client implements feed.NewsSource against NewsAPI.
type Client struct {
	cfg            Config
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	now            func() time.Time
}

type articlesResponse struct {
	Status   string    `json:"status"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Articles []article `json:"articles"`
}

type article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// NewClient creates a NewsAPI client. Zero values in cfg fall back to defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = DefaultHistoryDays
	}
	if cfg.HistoryDays > MaxHistoryDays {
		cfg.HistoryDays = MaxHistoryDays
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = feed.DefaultFetchTimeout
	}
	return &Client{
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsAPIConfig()),
		now:            time.Now,
	}
}

// Fetch returns up to feed.MaxNewsItems of the newest articles matching the
// company's search query. Failures come back as *feed.FetchError.
func (c *Client) Fetch(ctx context.Context, company entity.Company) ([]entity.NewsItem, error) {
	items, err := circuitbreaker.Do(c.circuitBreaker, func() ([]entity.NewsItem, error) {
		return c.doFetch(ctx, company.Query())
	})
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			slog.Warn("newsapi circuit breaker open, request rejected",
				slog.String("service", "newsapi"),
				slog.String("company", company.Name),
				slog.String("state", c.circuitBreaker.State().String()))
		}
		return nil, &feed.FetchError{Company: company.Name, Cause: err}
	}
	return items, nil
}

func (c *Client) requestURL(query string) string {
	from := c.now().AddDate(0, 0, -c.cfg.HistoryDays).Format("2006-01-02")
	params := url.Values{}
	params.Set("q", query)
	params.Set("from", from)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(feed.MaxNewsItems))
	params.Set("apiKey", c.cfg.APIKey)
	return c.cfg.BaseURL + "/v2/everything?" + params.Encode()
}

func (c *Client) doFetch(ctx context.Context, query string) ([]entity.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error はクエリ文字列 (apiKey) を含むため、原因のみ返す
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, fmt.Errorf("request newsapi: %w", uerr.Err)
		}
		return nil, fmt.Errorf("request newsapi: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body articlesResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &body) == nil && body.Message != "" {
			return nil, fmt.Errorf("newsapi status %d: %s", resp.StatusCode, body.Message)
		}
		return nil, fmt.Errorf("newsapi status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("%w: %s", ErrAPIStatus, body.Message)
	}

	items := make([]entity.NewsItem, 0, min(len(body.Articles), feed.MaxNewsItems))
	for _, a := range body.Articles {
		if len(items) == feed.MaxNewsItems {
			break
		}
		items = append(items, entity.NewsItem{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			SourceName:  a.Source.Name,
		})
	}
	return items, nil
}

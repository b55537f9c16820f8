// Command diagnose fetches news for every roster company through the
// configured news source and reports which queries come back empty or fail.
// It reads the same environment as cmd/dashboard.
//
//	go run ./cmd/diagnose            # text report on stdout
//	go run ./cmd/diagnose -json      # JSON report
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"climate-dashboard/internal/config"
	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/infra/newsapi"
	"climate-dashboard/internal/infra/scraper"
	"climate-dashboard/internal/observability/logging"
	"climate-dashboard/internal/registry"
	feedUC "climate-dashboard/internal/usecase/feed"
)

// Diagnostic is the fetch result for one company.
type Diagnostic struct {
	Company      string `json:"company"`
	Query        string `json:"query"`
	Status       string `json:"status"` // OK, EMPTY, TIMEOUT, ERROR
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	asJSON := flag.Bool("json", false, "write the report as JSON")
	pause := flag.Duration("pause", 500*time.Millisecond, "delay between companies")
	flag.Parse()

	logger := logging.NewFromEnv(os.Stderr)
	slog.SetDefault(logger)

	cfg, err := config.Load(logger, nil)
	if err != nil {
		logger.Error("configuration rejected", slog.Any("error", err))
		os.Exit(1)
	}

	roster, err := loadRoster(cfg)
	if err != nil {
		logger.Error("failed to load roster", slog.Any("error", err))
		os.Exit(1)
	}

	source := newSource(cfg)
	companies := roster.List()
	logger.Info("diagnosing news queries",
		slog.Int("companies", len(companies)),
		slog.String("provider", cfg.News.Provider))

	diagnostics := diagnoseAll(context.Background(), source, companies, cfg.News.FetchTimeout, *pause)

	if *asJSON {
		err = writeJSON(os.Stdout, diagnostics)
	} else {
		err = writeReport(os.Stdout, diagnostics)
	}
	if err != nil {
		logger.Error("failed to write report", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadRoster(cfg *config.Config) (*registry.Registry, error) {
	if cfg.RosterFile != "" {
		return registry.Load(cfg.RosterFile)
	}
	return registry.Default()
}

func newSource(cfg *config.Config) feedUC.NewsSource {
	if cfg.News.Provider == config.ProviderNewsAPI {
		return newsapi.NewClient(newsapi.Config{
			APIKey:      cfg.News.APIKey,
			BaseURL:     cfg.News.APIBaseURL,
			HistoryDays: cfg.News.HistoryDays,
			Timeout:     cfg.News.FetchTimeout,
		})
	}
	return scraper.NewRSSFetcher(&http.Client{Timeout: cfg.News.FetchTimeout}, cfg.News.RSSBaseURL)
}

func diagnoseAll(ctx context.Context, source feedUC.NewsSource, companies []entity.Company, timeout, pause time.Duration) []Diagnostic {
	out := make([]Diagnostic, 0, len(companies))
	for i, c := range companies {
		if i > 0 && pause > 0 {
			// 外部APIへの連続アクセスを避ける
			time.Sleep(pause)
		}
		out = append(out, diagnose(ctx, source, c, timeout))
	}
	return out
}

func diagnose(ctx context.Context, source feedUC.NewsSource, c entity.Company, timeout time.Duration) Diagnostic {
	d := Diagnostic{Company: c.Name, Query: c.Query()}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	items, err := source.Fetch(fetchCtx, c)
	d.ResponseTime = time.Since(start).Milliseconds()

	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || fetchCtx.Err() != nil):
		d.Status = "TIMEOUT"
		d.ErrorMessage = fmt.Sprintf("no response within %v", timeout)
	case err != nil:
		d.Status = "ERROR"
		d.ErrorMessage = err.Error()
	case len(items) == 0:
		d.Status = "EMPTY"
	default:
		d.Status = "OK"
		d.ItemCount = len(items)
		d.LatestDate = feedUC.FormatNewsDate(items[0].PublishedAt)
	}
	return d
}

func writeJSON(w io.Writer, diagnostics []Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diagnostics)
}

func writeReport(w io.Writer, diagnostics []Diagnostic) error {
	counts := map[string]int{}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPANY\tSTATUS\tITEMS\tLATEST\tTIME\tDETAIL")
	for _, d := range diagnostics {
		counts[d.Status]++
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%dms\t%s\n",
			d.Company, d.Status, d.ItemCount, d.LatestDate, d.ResponseTime, d.ErrorMessage)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d companies: %d ok, %d empty, %d timeout, %d error\n",
		len(diagnostics), counts["OK"], counts["EMPTY"], counts["TIMEOUT"], counts["ERROR"])
	return err
}

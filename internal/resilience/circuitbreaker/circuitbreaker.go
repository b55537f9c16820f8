// Package circuitbreaker guards the news providers and notification webhooks
// with github.com/sony/gobreaker, so a dead upstream fails fast instead of
// stalling every dashboard render.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "dashboard_circuit_breaker_state",
		Help: "Breaker state per upstream (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// Config describes when a breaker trips and how long it stays open.
type Config struct {
	Name        string
	MaxRequests uint32        // trial requests allowed while half-open
	Interval    time.Duration // closed-state counter reset period, 0 = never
	Timeout     time.Duration // open duration before the first trial request

	// The breaker trips once at least MinRequests calls were counted and
	// the failure ratio reaches FailureThreshold.
	FailureThreshold float64
	MinRequests      uint32
}

// newsMinRequests is the sample a news breaker needs before it may trip.
// One breaker is shared by every company and a render pass makes one call
// per company, so the sample spans several passes: a single pass in which a
// few companies time out must not blank the news of the whole roster.
const newsMinRequests = 12

// NewsAPIConfig is tuned for the NewsAPI free tier, which rate-limits hard.
func NewsAPIConfig() Config {
	return Config{
		Name:             "newsapi",
		MaxRequests:      2,
		Interval:         time.Minute,
		Timeout:          2 * time.Minute,
		FailureThreshold: 0.6,
		MinRequests:      newsMinRequests,
	}
}

// NewsFeedConfig is for the Google News RSS search feed.
func NewsFeedConfig() Config {
	return Config{
		Name:             "news-rss",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.7,
		MinRequests:      newsMinRequests,
	}
}

// WebhookConfig opens a notification channel after five straight failures
// and keeps it open for five minutes.
func WebhookConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Timeout:          5 * time.Minute,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// CircuitBreaker is a named gobreaker instance.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// New builds a breaker and starts exporting its state.
func New(cfg Config) *CircuitBreaker {
	breakerState.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))
	return &CircuitBreaker{breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= cfg.MinRequests &&
				float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			breakerState.WithLabelValues(name).Set(float64(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})}
}

// Do runs fn through cb. An open breaker returns gobreaker.ErrOpenState
// without calling fn.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	out, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

// Run is Do for calls without a result.
func (cb *CircuitBreaker) Run(fn func() error) error {
	_, err := cb.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

func (cb *CircuitBreaker) Name() string { return cb.breaker.Name() }

func (cb *CircuitBreaker) State() gobreaker.State { return cb.breaker.State() }

func (cb *CircuitBreaker) IsOpen() bool { return cb.breaker.State() == gobreaker.StateOpen }

// IsRejection reports whether err came from the breaker rather than from
// the protected call.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

package notify

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/handler/http/requestid"
	"climate-dashboard/internal/resilience/circuitbreaker"
)

// notificationTimeout bounds one dispatch across all channels.
const notificationTimeout = 30 * time.Second

// ChannelHealthStatus represents the health status of a notification channel.
type ChannelHealthStatus struct {
	Name               string `json:"name"`
	Enabled            bool   `json:"enabled"`
	CircuitBreakerOpen bool   `json:"circuit_breaker_open"`
}

// Service fans an update out to every enabled channel in the background.
type Service struct {
	channels []Channel
	breakers map[string]*circuitbreaker.CircuitBreaker
	limit    int

	wg             sync.WaitGroup
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewService creates a notification service. maxConcurrent caps the number
// of channels delivering at once for a single update.
func NewService(channels []Channel, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	s := &Service{
		channels:       channels,
		breakers:       make(map[string]*circuitbreaker.CircuitBreaker, len(channels)),
		limit:          maxConcurrent,
		shutdownCtx:    ctx,
		shutdownCancel: cancel,
	}

	enabled := 0
	for _, ch := range channels {
		s.breakers[ch.Name()] = circuitbreaker.New(circuitbreaker.WebhookConfig("notify-" + ch.Name()))
		if ch.IsEnabled() {
			enabled++
		}
	}
	enabledChannels.Set(float64(enabled))
	return s
}

// NotifyUpdate returns immediately; delivery happens in the background and
// failures are only logged. The caller's ctx supplies the request ID, not
// the deadline.
func (s *Service) NotifyUpdate(ctx context.Context, company entity.Company, u entity.ManualUpdate) error {
	var targets []Channel
	for _, ch := range s.channels {
		if ch.IsEnabled() {
			targets = append(targets, ch)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	reqID := requestid.FromContext(ctx)

	s.wg.Add(1)
	go s.dispatch(reqID, targets, company, u)
	return nil
}

func (s *Service) dispatch(reqID string, targets []Channel, company entity.Company, u entity.ManualUpdate) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in notification dispatch",
				slog.String("request_id", reqID),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	ctx, cancel := context.WithTimeout(s.shutdownCtx, notificationTimeout)
	defer cancel()
	if reqID != "" {
		ctx = requestid.WithRequestID(ctx, reqID)
	}

	var g errgroup.Group
	g.SetLimit(s.limit)
	for _, ch := range targets {
		g.Go(func() error {
			s.send(ctx, reqID, ch, company, u)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) send(ctx context.Context, reqID string, ch Channel, company entity.Company, u entity.ManualUpdate) {
	if ctx.Err() != nil {
		recordDelivery(ch.Name(), outcomeShutdown, 0)
		return
	}

	start := time.Now()
	err := s.breakers[ch.Name()].Run(func() error {
		return ch.Send(ctx, company, u)
	})
	duration := time.Since(start)

	switch {
	case circuitbreaker.IsRejection(err):
		recordDelivery(ch.Name(), outcomeOpen, 0)
		slog.Warn("notification skipped, channel circuit open",
			slog.String("request_id", reqID),
			slog.String("channel", ch.Name()))
	case err != nil:
		recordDelivery(ch.Name(), outcomeFailed, duration)
		slog.Warn("channel notification failed",
			slog.String("request_id", reqID),
			slog.String("channel", ch.Name()),
			slog.String("company", u.Company),
			slog.Duration("send_duration", duration),
			slog.Any("error", err))
	default:
		recordDelivery(ch.Name(), outcomeSent, duration)
		slog.Info("channel notification sent",
			slog.String("request_id", reqID),
			slog.String("channel", ch.Name()),
			slog.String("company", u.Company),
			slog.Duration("send_duration", duration))
	}
}

// ChannelHealth reports each channel's configuration and breaker state.
func (s *Service) ChannelHealth() []ChannelHealthStatus {
	out := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		out = append(out, ChannelHealthStatus{
			Name:               ch.Name(),
			Enabled:            ch.IsEnabled(),
			CircuitBreakerOpen: s.breakers[ch.Name()].IsOpen(),
		})
	}
	return out
}

// Shutdown cancels in-flight deliveries and waits for them, up to ctx.
func (s *Service) Shutdown(ctx context.Context) error {
	slog.Info("shutting down notification service")
	s.shutdownCancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("notification service shutdown complete")
		return nil
	case <-ctx.Done():
		slog.Warn("notification service shutdown timeout")
		return ctx.Err()
	}
}

// Wait blocks until every dispatched notification has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

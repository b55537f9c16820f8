package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"climate-dashboard/internal/handler/http/requestid"
	"climate-dashboard/internal/resilience/retry"
)

// maxErrorBody caps how much of an error response is kept in the error text.
const maxErrorBody = 512

// webhook delivers JSON payloads to one incoming-webhook URL.
type webhook struct {
	name        string
	url         string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	retry       retry.Config
}

// newWebhook posts to url. limiter paces calls per channel, independent of
// the retry schedule.
func newWebhook(name, url string, timeout time.Duration, limiter *rate.Limiter) *webhook {
	return &webhook{
		name:        name,
		url:         url,
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: limiter,
		retry:       retry.WebhookConfig(),
	}
}

// deliver waits for the rate limiter and posts payload, retrying 429 and 5xx.
func (w *webhook) deliver(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	logger := slog.With(slog.String("request_id", reqID), slog.String("channel", w.name))

	if err := w.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for %s rate limit: %w", w.name, err)
	}

	attempt := 0
	err = retry.WithBackoff(ctx, w.retry, func() error {
		attempt++
		return w.post(ctx, body)
	})
	if err != nil {
		logger.Warn("webhook delivery failed", slog.Int("attempts", attempt), slog.Any("error", err))
		return fmt.Errorf("%s notification failed: %w", w.name, err)
	}

	logger.Info("webhook delivered", slog.Int("attempts", attempt))
	return nil
}

// post sends one request. Non-2xx responses become *retry.HTTPError.
func (w *webhook) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	httpErr := &retry.HTTPError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("%s webhook error: %s", w.name, string(respBody)),
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		httpErr.RetryAfter = extractRetryAfter(resp, respBody)
	}
	return httpErr
}

// extractRetryAfter reads Discord's JSON retry_after (seconds, fractional)
// and falls back to the Retry-After header. Default is 5s.
func extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	var payload struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.RetryAfter > 0 {
		return time.Duration(payload.RetryAfter * float64(time.Second))
	}

	if h := resp.Header.Get("Retry-After"); h != "" {
		if seconds, err := strconv.Atoi(h); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	return 5 * time.Second
}

// Package resilience provides fault tolerance patterns for outbound calls.
//
// The package supports:
//   - Circuit breakers around the news providers and notification webhooks
//   - Retry with exponential backoff for webhook delivery
//
// News fetches are deliberately not retried: a failed fetch degrades to an
// empty news list for that company.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.NewsFeedConfig())
//	err := cb.Run(func() error {
//	    return callExternalService()
//	})
//
//	err = retry.WithBackoff(ctx, retry.WebhookConfig(), func() error {
//	    return postWebhook()
//	})
package resilience

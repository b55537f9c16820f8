package metrics

import (
	"time"
)

// RecordNewsFetch records the outcome and duration of one per-company news fetch.
func RecordNewsFetch(provider string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	NewsFetchTotal.WithLabelValues(provider, status).Inc()
	NewsFetchDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordCardsRendered adds count cards of the given kind.
func RecordCardsRendered(kind string, count int) {
	if count <= 0 {
		return
	}
	CardsRenderedTotal.WithLabelValues(kind).Add(float64(count))
}

// RecordUpdateSubmitted records a submission result.
// Status should be one of "accepted", "rejected" or "failed".
func RecordUpdateSubmitted(status string) {
	UpdatesSubmittedTotal.WithLabelValues(status).Inc()
}

// RecordStoreOperation records the duration of an update store operation and
// counts it as an error when err is non-nil.
func RecordStoreOperation(driver, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(driver, operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrorsTotal.WithLabelValues(driver, operation).Inc()
	}
}

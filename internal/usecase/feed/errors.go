// Package feed builds the per-company news feed shown on the dashboard.
// It narrows the roster by group and selection, merges manual updates with
// fetched news and turns both into display cards.
package feed

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable indicates that no news could be obtained for a company.
// FetchError wraps it so callers can test with errors.Is.
var ErrSourceUnavailable = errors.New("news source unavailable")

// FetchError reports a failed news fetch for one company.
// The aggregation engine treats it as "no articles" and keeps rendering.
type FetchError struct {
	Company string
	Cause   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch news for %s: %v", e.Company, e.Cause)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Cause}
}

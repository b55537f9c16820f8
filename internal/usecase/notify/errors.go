package notify

import "errors"

var (
	// ErrChannelDisabled is returned by Send on a channel that is switched off.
	ErrChannelDisabled = errors.New("notification channel disabled")

	// ErrInvalidUpdate rejects announcements without a company or title.
	ErrInvalidUpdate = errors.New("update has no company or title")
)

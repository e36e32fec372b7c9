package check

import "errors"

var (
	// ErrInvalidInput fails a request before any state is touched.
	ErrInvalidInput = errors.New("invalid_input")

	// ErrClassificationUnavailable and ErrBanCheckUnavailable abort the
	// whole verification; no derived state is committed and the caller
	// may retry. The core itself never retries.
	ErrClassificationUnavailable = errors.New("classification_unavailable")
	ErrBanCheckUnavailable       = errors.New("ban_check_unavailable")
)

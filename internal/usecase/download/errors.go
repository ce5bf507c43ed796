package download

import "errors"

var (
	// ErrVideoNotAvailable guards request creation: only videos sitting in
	// durable storage can be requested for download.
	ErrVideoNotAvailable = errors.New("video is not available for download")

	// ErrRequestExpired marks a terminal request: an expired row never
	// re-mints a URL.
	ErrRequestExpired = errors.New("download request has expired")
)

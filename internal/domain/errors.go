package domain

import "errors"

var (
	// ErrRateLimited marks upstream quota exhaustion. Callers should back off and retry.
	ErrRateLimited = errors.New("spreadsheet API rate limit exceeded")

	// ErrUpstreamUnavailable marks any other failure to fetch the source tables.
	ErrUpstreamUnavailable = errors.New("spreadsheet source unavailable")

	// ErrNothingToExport is returned when a filtered export would be empty.
	ErrNothingToExport = errors.New("no data to export")

	// ErrInvalidFilter marks a malformed filter request parameter.
	ErrInvalidFilter = errors.New("invalid filter")
)

// RateLimitMessage is the user-facing explanation returned with HTTP 429.
const RateLimitMessage = "Google Sheets API rate limit exceeded (60 requests/minute). Please wait a minute and refresh, or request a quota increase at https://cloud.google.com/docs/quotas/help/request_increase"

package models

import "errors"

// Error kinds shared by the fetchers, the prediction flow and the HTTP layer.
// Callers wrap them with %w and classify with errors.Is.
var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrMissingCredential   = errors.New("missing credential")
	ErrNoData              = errors.New("no data")
	ErrMalformedResponse   = errors.New("malformed response")
	ErrInvalidInput        = errors.New("invalid input")
)

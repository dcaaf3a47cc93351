package breach

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when the email is missing.
	ErrInvalidInput = errors.New("email is required")
	// ErrConfiguration is returned when no registry API key is available.
	ErrConfiguration = errors.New("breach registry API key is not configured")
	// ErrRateLimited is returned when the registry answers 429.
	ErrRateLimited = errors.New("breach registry rate limit exceeded")
)

// UpstreamError carries any registry status the proxy has no mapping for.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("breach registry returned unexpected status %d", e.StatusCode)
}

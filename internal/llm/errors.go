package llm

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingAPIKey is returned when a client is built without a provider key
var ErrMissingAPIKey = errors.New("API key is not configured")

// UpstreamError is returned when the completion provider answers with a non-2xx status.
// Body holds the raw response text.
type UpstreamError struct {
	Provider   Provider
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// MissingKeyError names the provider whose key is absent
type MissingKeyError struct {
	Provider Provider
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s %s", e.Provider, ErrMissingAPIKey)
}

func (e *MissingKeyError) Unwrap() error {
	return ErrMissingAPIKey
}

// IsMissingKey reports whether err was caused by an absent API key
func IsMissingKey(err error) bool {
	var target *MissingKeyError
	return errors.As(err, &target)
}

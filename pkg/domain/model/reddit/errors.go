package reddit

import (
	"errors"
	"fmt"
)

var (
	// OAuth state errors
	ErrStateMismatch = errors.New("oauth state mismatch")
	ErrStateNotFound = errors.New("oauth state not found")

	// Token lifecycle errors
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrNoRefreshToken      = errors.New("no refresh token")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrSessionExpired      = errors.New("session expired")

	// Validation errors
	ErrInvalidSubreddit  = errors.New("invalid subreddit name")
	ErrInvalidSubmission = errors.New("invalid post type or missing data")

	// Transport errors
	ErrConnection = errors.New("connection error")

	// Configuration errors
	ErrMissingConfig = errors.New("missing reddit client credentials")
)

// ProviderError carries the provider's own rejection message, either from a
// non-200 status or from the error list embedded in a 200 envelope.
type ProviderError struct {
	Detail string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider rejected request: %s", e.Detail)
}

// NewProviderError creates a ProviderError with the given detail message
func NewProviderError(detail string) *ProviderError {
	return &ProviderError{Detail: detail}
}

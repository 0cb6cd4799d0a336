package farmacia

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeTokenExpired      = "TOKEN_EXPIRED"
	textCodeTokenMalformed    = "TOKEN_MALFORMED"
	textCodeNotAuthenticated  = "NOT_AUTHENTICATED"
	textCodeInvalidTransition = "INVALID_SESSION_TRANSITION"
)

// ErrTokenExpired is returned when the stored token carries an exp claim in the past.
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be decoded into a Principal.
var ErrTokenMalformed = goerrors.New("authentication token malformed", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrNotAuthenticated is returned when an operation requires a session and none exists.
var ErrNotAuthenticated = goerrors.New("no authenticated session", goerrors.CategoryAuth).
	WithTextCode(textCodeNotAuthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidTransition is returned when a requested session state change is not allowed.
var ErrInvalidTransition = goerrors.New("invalid session state transition", goerrors.CategoryConflict).
	WithTextCode(textCodeInvalidTransition).
	WithCode(goerrors.CodeConflict)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// UserMessage collapses any error into the single human-readable string pages
// render in their error banner.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}

	return err.Error()
}

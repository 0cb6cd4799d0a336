package farmacia

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialStore holds the single durable copy of the bearer token. All
// implementations replace any prior value on Put and treat a missing value as
// "absent" rather than an error.
type CredentialStore interface {
	Put(token string) error
	Get() (string, bool)
	Clear() error
}

// TokenSource exposes the current bearer token to API consumers. Only
// SessionManager writes the token; everything else reads it through here.
type TokenSource interface {
	Token() (string, bool)
}

// LogoutNotifier tells the remote authority a session ended. The notification
// is best-effort: its error never blocks the local logout.
type LogoutNotifier interface {
	NotifyLogout(ctx context.Context) error
}

// Session exposes the capability queries pages and guards need. SessionManager
// is the only implementation; the interface keeps consumers mockable.
type Session interface {
	State() SessionState
	Loading() bool
	CurrentPrincipal() (Principal, bool)
	IsAdmin() bool
	Token() (string, bool)
}

// Config holds client options.
type Config interface {
	GetBaseURL() string
	GetHTTPTimeout() time.Duration
	GetCredentialsPath() string
	GetSnapshotDSN() string
	GetDebug() bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] FARMACIA "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] FARMACIA "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] FARMACIA "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] FARMACIA "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

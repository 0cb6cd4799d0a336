package farmacia

import (
	"context"
	"time"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventLoginSuccess   ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure   ActivityEventType = "auth.login.failure"
	ActivityEventLogout         ActivityEventType = "auth.logout"
	ActivityEventRestoreSuccess ActivityEventType = "auth.restore.success"
	ActivityEventRestoreFailure ActivityEventType = "auth.restore.failure"
)

// ActorRef identifies who/what triggered a session event.
type ActorRef struct {
	ID   string
	Type string
}

// ActivityEvent captures audit-friendly information about a session action.
type ActivityEvent struct {
	ID         uuid.UUID
	EventType  ActivityEventType
	Actor      ActorRef
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}

// actorForPrincipal derives a stable actor reference from the identity claim.
// The token carries no user id, so the id is a deterministic UUID minted from
// the email.
func actorForPrincipal(p Principal) ActorRef {
	ref := ActorRef{ID: p.Email, Type: "user"}
	if id, err := hashid.NewUUID(p.Email); err == nil {
		ref.ID = id.String()
	}
	return ref
}

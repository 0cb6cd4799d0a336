package farmacia

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
)

// SessionState is the lifecycle state of the in-process session.
type SessionState string

const (
	// StateInitializing is entered once at process start, before the persisted
	// token has been read and checked.
	StateInitializing SessionState = "initializing"
	// StateAnonymous means no valid token is held.
	StateAnonymous SessionState = "anonymous"
	// StateAuthenticated means a token is held and a Principal was derived.
	StateAuthenticated SessionState = "authenticated"
)

// ChangeListener is notified after every session state transition. Listeners
// run synchronously on the goroutine that triggered the transition; guards use
// this to re-evaluate immediately after login/logout.
type ChangeListener func(from, to SessionState)

// SessionOption customizes SessionManager construction.
type SessionOption func(*SessionManager)

// WithLogger overrides the default logger.
func WithLogger(logger Logger) SessionOption {
	return func(s *SessionManager) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithActivitySink configures an ActivitySink for session events.
func WithActivitySink(sink ActivitySink) SessionOption {
	return func(s *SessionManager) {
		s.sink = normalizeActivitySink(sink)
	}
}

// WithLogoutNotifier configures the best-effort remote logout call.
func WithLogoutNotifier(n LogoutNotifier) SessionOption {
	return func(s *SessionManager) {
		s.notifier = n
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) SessionOption {
	return func(s *SessionManager) {
		if clock != nil {
			s.now = clock
		}
	}
}

// SessionManager owns the authentication lifecycle. It is the sole writer of
// session state and the sole reader of the CredentialStore; pages, guards, and
// the API client receive it by explicit reference and never touch persistence
// directly.
type SessionManager struct {
	mu          sync.RWMutex
	store       CredentialStore
	notifier    LogoutNotifier
	logger      Logger
	sink        ActivitySink
	now         func() time.Time
	transitions map[SessionState]map[SessionState]struct{}

	state       SessionState
	token       string
	principal   *Principal
	initialized bool
	listeners   []ChangeListener
}

var _ Session = (*SessionManager)(nil)
var _ TokenSource = (*SessionManager)(nil)

// NewSessionManager returns a session manager in the initializing state.
// Callers must run Initialize exactly once before evaluating guards.
func NewSessionManager(store CredentialStore, opts ...SessionOption) *SessionManager {
	s := &SessionManager{
		store:  store,
		logger: defLogger{},
		sink:   noopActivitySink{},
		now:    time.Now,
		state:  StateInitializing,
		transitions: map[SessionState]map[SessionState]struct{}{
			StateInitializing: {
				StateAnonymous:     {},
				StateAuthenticated: {},
			},
			StateAnonymous: {
				StateAuthenticated: {},
			},
			StateAuthenticated: {
				StateAnonymous: {},
			},
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Initialize reads the CredentialStore and resolves the session exactly once:
// a present, decodable token yields an authenticated session; anything else
// (absent, malformed, expired) clears the store and yields an anonymous one.
// Decode failures are silent here, the user is simply logged out.
func (s *SessionManager) Initialize(ctx context.Context) error {
	s.mu.Lock()

	if s.initialized {
		s.mu.Unlock()
		return ErrInvalidTransition.Clone().WithMetadata(map[string]any{
			"reason": "initialize called twice",
		})
	}
	s.initialized = true

	raw, ok := s.store.Get()
	if !ok {
		s.transitionLocked(StateAnonymous)
		s.mu.Unlock()
		s.notify(StateInitializing, StateAnonymous)
		return nil
	}

	claims, err := DecodeToken(raw, s.now())
	if err != nil {
		if clearErr := s.store.Clear(); clearErr != nil {
			s.logger.Warn("credential store clear failed: %v", clearErr)
		}
		s.transitionLocked(StateAnonymous)
		s.mu.Unlock()

		s.logger.Info("stored token rejected, starting anonymous: %v", err)
		s.emit(ctx, ActivityEventRestoreFailure, ActorRef{Type: "system"}, map[string]any{
			"error": err.Error(),
		})
		s.notify(StateInitializing, StateAnonymous)
		return nil
	}

	principal, err := principalFromClaims(claims)
	if err != nil {
		if clearErr := s.store.Clear(); clearErr != nil {
			s.logger.Warn("credential store clear failed: %v", clearErr)
		}
		s.transitionLocked(StateAnonymous)
		s.mu.Unlock()
		s.notify(StateInitializing, StateAnonymous)
		return nil
	}

	s.token = raw
	s.principal = &principal
	s.transitionLocked(StateAuthenticated)
	s.mu.Unlock()

	s.emit(ctx, ActivityEventRestoreSuccess, actorForPrincipal(principal), nil)
	s.notify(StateInitializing, StateAuthenticated)
	return nil
}

// Login installs a token obtained from a successful authentication exchange.
// Decoding is purely local; no network call happens here.
func (s *SessionManager) Login(ctx context.Context, token string) error {
	claims, err := DecodeToken(token, s.now())
	if err != nil {
		s.emit(ctx, ActivityEventLoginFailure, ActorRef{Type: "unknown"}, map[string]any{
			"error": err.Error(),
		})
		return err
	}

	principal, err := principalFromClaims(claims)
	if err != nil {
		return err
	}

	s.mu.Lock()
	from := s.state
	if !s.canTransition(from, StateAuthenticated) {
		s.mu.Unlock()
		return ErrInvalidTransition.Clone().WithMetadata(map[string]any{
			"from": from,
			"to":   StateAuthenticated,
		})
	}

	if err := s.store.Put(token); err != nil {
		s.mu.Unlock()
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to persist credential")
	}

	s.token = token
	s.principal = &principal
	s.transitionLocked(StateAuthenticated)
	s.mu.Unlock()

	s.emit(ctx, ActivityEventLoginSuccess, actorForPrincipal(principal), nil)
	s.notify(from, StateAuthenticated)
	return nil
}

// Logout notifies the remote authority best-effort, then unconditionally
// clears the stored credential and returns to anonymous. Calling it on an
// already-anonymous session is a no-op.
func (s *SessionManager) Logout(ctx context.Context) {
	if s.notifier != nil {
		if err := s.notifier.NotifyLogout(ctx); err != nil {
			s.logger.Warn("remote logout notification failed: %v", err)
		}
	}

	s.mu.Lock()
	from := s.state
	var actor ActorRef
	if s.principal != nil {
		actor = actorForPrincipal(*s.principal)
	}

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("credential store clear failed: %v", err)
	}

	s.token = ""
	s.principal = nil
	if from != StateAuthenticated {
		s.mu.Unlock()
		return
	}
	s.transitionLocked(StateAnonymous)
	s.mu.Unlock()

	s.emit(ctx, ActivityEventLogout, actor, nil)
	s.notify(from, StateAnonymous)
}

// State returns the current lifecycle state.
func (s *SessionManager) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether the initial token check is still pending. It is true
// from construction until Initialize resolves, and false forever after.
func (s *SessionManager) Loading() bool {
	return s.State() == StateInitializing
}

// CurrentPrincipal returns the derived Principal, if any.
func (s *SessionManager) CurrentPrincipal() (Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return Principal{}, false
	}
	return *s.principal, true
}

// IsAdmin reports whether the current principal carries the admin role. It is
// false, never an error, for anonymous sessions.
func (s *SessionManager) IsAdmin() bool {
	p, ok := s.CurrentPrincipal()
	return ok && p.IsAdmin()
}

// Token returns the current bearer token, if any. Implements TokenSource.
func (s *SessionManager) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return "", false
	}
	return s.token, true
}

// OnChange registers a listener invoked after every state transition.
func (s *SessionManager) OnChange(listener ChangeListener) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, listener)
	s.mu.Unlock()
}

func (s *SessionManager) canTransition(from, to SessionState) bool {
	if from == to && from == StateAuthenticated {
		// re-login replaces the token in place
		return true
	}
	if allowed, ok := s.transitions[from]; ok {
		_, exists := allowed[to]
		return exists
	}
	return false
}

// transitionLocked assumes s.mu is held and the transition was validated.
func (s *SessionManager) transitionLocked(to SessionState) {
	from := s.state
	s.state = to
	s.logger.Debug("session %s -> %s %s", from, to, print.MaybePrettyJSON(map[string]any{
		"has_token": s.token != "",
	}))
}

func (s *SessionManager) notify(from, to SessionState) {
	s.mu.RLock()
	listeners := make([]ChangeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(from, to)
	}
}

func (s *SessionManager) emit(ctx context.Context, eventType ActivityEventType, actor ActorRef, metadata map[string]any) {
	if actor == (ActorRef{}) {
		actor = ActorRef{Type: "system"}
	}

	event := ActivityEvent{
		ID:         uuid.New(),
		EventType:  eventType,
		Actor:      actor,
		Metadata:   metadata,
		OccurredAt: s.now(),
	}

	if err := s.sink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error: %v", err)
	}
}

package farmacia_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	farmacia "github.com/goliatone/go-farmacia"
)

type failingNotifier struct {
	calls int
}

func (f *failingNotifier) NotifyLogout(ctx context.Context) error {
	f.calls++
	return errors.New("authority unreachable")
}

func TestInitializeWithStoredToken(t *testing.T) {
	store := farmacia.NewMemoryStore()
	require.NoError(t, store.Put(mintToken(t, "a@b.com", "admin", time.Now().Add(time.Hour))))

	session := farmacia.NewSessionManager(store)
	assert.True(t, session.Loading())
	assert.Equal(t, farmacia.StateInitializing, session.State())

	require.NoError(t, session.Initialize(context.Background()))

	assert.False(t, session.Loading())
	assert.Equal(t, farmacia.StateAuthenticated, session.State())

	principal, ok := session.CurrentPrincipal()
	require.True(t, ok)
	assert.Equal(t, "a@b.com", principal.Email)
	assert.True(t, session.IsAdmin())
}

func TestInitializeWithMalformedTokenClearsStore(t *testing.T) {
	store := farmacia.NewMemoryStore()
	require.NoError(t, store.Put("garbage"))

	session := farmacia.NewSessionManager(store)
	require.NoError(t, session.Initialize(context.Background()))

	assert.Equal(t, farmacia.StateAnonymous, session.State())
	assert.False(t, session.Loading())

	_, ok := store.Get()
	assert.False(t, ok, "rejected token must be cleared from the store")

	_, ok = session.CurrentPrincipal()
	assert.False(t, ok)
	assert.False(t, session.IsAdmin())
}

func TestInitializeWithExpiredTokenClearsStore(t *testing.T) {
	store := farmacia.NewMemoryStore()
	require.NoError(t, store.Put(mintToken(t, "a@b.com", "usuario", time.Now().Add(-time.Hour))))

	session := farmacia.NewSessionManager(store)
	require.NoError(t, session.Initialize(context.Background()))

	assert.Equal(t, farmacia.StateAnonymous, session.State())
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestInitializeRunsOnce(t *testing.T) {
	session := farmacia.NewSessionManager(farmacia.NewMemoryStore())
	require.NoError(t, session.Initialize(context.Background()))
	assert.Error(t, session.Initialize(context.Background()))
}

func TestLoadingMonotonicity(t *testing.T) {
	store := farmacia.NewMemoryStore()
	session := farmacia.NewSessionManager(store)

	assert.True(t, session.Loading())
	require.NoError(t, session.Initialize(context.Background()))
	assert.False(t, session.Loading())

	require.NoError(t, session.Login(context.Background(), mintToken(t, "a@b.com", "usuario", time.Time{})))
	assert.False(t, session.Loading())

	session.Logout(context.Background())
	assert.False(t, session.Loading())
}

func TestLoginPersistsToken(t *testing.T) {
	store := farmacia.NewMemoryStore()
	session := farmacia.NewSessionManager(store)
	require.NoError(t, session.Initialize(context.Background()))

	token := mintToken(t, "a@b.com", "usuario", time.Time{})
	require.NoError(t, session.Login(context.Background(), token))

	assert.Equal(t, farmacia.StateAuthenticated, session.State())

	stored, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, token, stored)

	current, ok := session.Token()
	require.True(t, ok)
	assert.Equal(t, token, current)
}

func TestLoginRejectsUndecodableToken(t *testing.T) {
	store := farmacia.NewMemoryStore()
	session := farmacia.NewSessionManager(store)
	require.NoError(t, session.Initialize(context.Background()))

	err := session.Login(context.Background(), "garbage")
	require.Error(t, err)

	assert.Equal(t, farmacia.StateAnonymous, session.State())
	_, ok := store.Get()
	assert.False(t, ok, "a rejected login must not persist anything")
}

func TestDecodeConsistency(t *testing.T) {
	// the principal derived right after login equals the one a fresh process
	// derives from the same persisted token
	token := mintToken(t, "a@b.com", "admin", time.Now().Add(time.Hour))

	store := farmacia.NewMemoryStore()
	first := farmacia.NewSessionManager(store)
	require.NoError(t, first.Initialize(context.Background()))
	require.NoError(t, first.Login(context.Background(), token))

	viaLogin, ok := first.CurrentPrincipal()
	require.True(t, ok)

	second := farmacia.NewSessionManager(store)
	require.NoError(t, second.Initialize(context.Background()))

	viaRestore, ok := second.CurrentPrincipal()
	require.True(t, ok)
	assert.Equal(t, viaLogin, viaRestore)
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := farmacia.NewMemoryStore()
	session := farmacia.NewSessionManager(store)
	require.NoError(t, session.Initialize(context.Background()))
	require.NoError(t, session.Login(context.Background(), mintToken(t, "a@b.com", "usuario", time.Time{})))

	session.Logout(context.Background())
	assert.Equal(t, farmacia.StateAnonymous, session.State())

	assert.NotPanics(t, func() {
		session.Logout(context.Background())
	})
	assert.Equal(t, farmacia.StateAnonymous, session.State())

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestLogoutSurvivesNotifierFailure(t *testing.T) {
	store := farmacia.NewMemoryStore()
	notifier := &failingNotifier{}
	session := farmacia.NewSessionManager(store, farmacia.WithLogoutNotifier(notifier))
	require.NoError(t, session.Initialize(context.Background()))
	require.NoError(t, session.Login(context.Background(), mintToken(t, "a@b.com", "usuario", time.Time{})))

	session.Logout(context.Background())

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, farmacia.StateAnonymous, session.State())
	_, ok := store.Get()
	assert.False(t, ok, "local logout must proceed when the notification fails")
}

func TestOnChangeNotifiesTransitions(t *testing.T) {
	store := farmacia.NewMemoryStore()
	session := farmacia.NewSessionManager(store)

	var transitions [][2]farmacia.SessionState
	session.OnChange(func(from, to farmacia.SessionState) {
		transitions = append(transitions, [2]farmacia.SessionState{from, to})
	})

	require.NoError(t, session.Initialize(context.Background()))
	require.NoError(t, session.Login(context.Background(), mintToken(t, "a@b.com", "usuario", time.Time{})))
	session.Logout(context.Background())

	require.Len(t, transitions, 3)
	assert.Equal(t, [2]farmacia.SessionState{farmacia.StateInitializing, farmacia.StateAnonymous}, transitions[0])
	assert.Equal(t, [2]farmacia.SessionState{farmacia.StateAnonymous, farmacia.StateAuthenticated}, transitions[1])
	assert.Equal(t, [2]farmacia.SessionState{farmacia.StateAuthenticated, farmacia.StateAnonymous}, transitions[2])
}

func TestActivityEventsAreEmitted(t *testing.T) {
	var events []farmacia.ActivityEvent
	sink := farmacia.ActivitySinkFunc(func(ctx context.Context, event farmacia.ActivityEvent) error {
		events = append(events, event)
		return nil
	})

	store := farmacia.NewMemoryStore()
	require.NoError(t, store.Put("garbage"))

	session := farmacia.NewSessionManager(store, farmacia.WithActivitySink(sink))
	require.NoError(t, session.Initialize(context.Background()))
	require.NoError(t, session.Login(context.Background(), mintToken(t, "a@b.com", "usuario", time.Time{})))
	session.Logout(context.Background())

	require.Len(t, events, 3)
	assert.Equal(t, farmacia.ActivityEventRestoreFailure, events[0].EventType)
	assert.Equal(t, farmacia.ActivityEventLoginSuccess, events[1].EventType)
	assert.Equal(t, farmacia.ActivityEventLogout, events[2].EventType)

	for _, event := range events {
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.OccurredAt.IsZero())
	}
}

func TestTokenAbsentWhenAnonymous(t *testing.T) {
	session := farmacia.NewSessionManager(farmacia.NewMemoryStore())
	require.NoError(t, session.Initialize(context.Background()))

	_, ok := session.Token()
	assert.False(t, ok)
}

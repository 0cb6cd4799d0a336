package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	farmacia "github.com/goliatone/go-farmacia"
	"github.com/goliatone/go-farmacia/client"
)

// TestLoginFetchLogoutFlow drives the full happy path: exchange credentials
// for a token, install it in the session, list a resource with the bearer
// header, then log out and observe the remote notification plus the loss of
// authenticated access.
func TestLoginFetchLogoutFlow(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "a@b.com",
		"rol": "admin",
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	issued, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-authority-key"))
	require.NoError(t, err)

	var listAuth string
	logoutSeen := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			json.NewEncoder(w).Encode(map[string]string{"token": issued})
		case "/medicamentos":
			listAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode([]farmacia.Medication{
				{ID: 1, Description: "Paracetamol 500mg", UnitPrice: 3.5, Stock: 120},
			})
		case "/logout":
			logoutSeen = true
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := farmacia.NewMemoryStore()
	session := farmacia.NewSessionManager(store)
	require.NoError(t, session.Initialize(context.Background()))

	api := client.New(server.URL, session)

	token, err := api.Login(context.Background(), farmacia.LoginRequest{
		Email:    "a@b.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.NoError(t, session.Login(context.Background(), token))

	persisted, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, issued, persisted)
	assert.True(t, session.IsAdmin())

	items, err := api.ListMedications(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Bearer "+issued, listAuth)

	// wire the client back as the logout notifier and end the session
	notifying := farmacia.NewSessionManager(store, farmacia.WithLogoutNotifier(api))
	require.NoError(t, notifying.Initialize(context.Background()))
	notifying.Logout(context.Background())

	assert.True(t, logoutSeen)
	_, ok = store.Get()
	assert.False(t, ok)
}

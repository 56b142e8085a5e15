package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torneohub/torneo-api/internal/domain"
)

func newOAuthTestService(t *testing.T, repo AuthUserRepository, profile map[string]string) *OAuthService {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(profile)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	svc := NewDiscordOAuthService("client-id", "client-secret", "http://localhost/callback", repo)
	svc.conf.Endpoint.TokenURL = server.URL + "/oauth2/token"
	svc.profileURL = server.URL + "/users/@me"

	return svc
}

func TestOAuthService_AuthCodeURL(t *testing.T) {
	svc := NewDiscordOAuthService("client-id", "client-secret", "http://localhost/callback", newFakeUserRepo())

	url := svc.AuthCodeURL("the-state")

	assert.Contains(t, url, "https://discord.com/api/oauth2/authorize")
	assert.Contains(t, url, "state=the-state")
	assert.Contains(t, url, "client_id=client-id")
}

func TestOAuthService_CompleteLogin_CreatesFirstTimeUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newOAuthTestService(t, repo, map[string]string{
		"id":       "1234567890",
		"username": "mario",
		"email":    "mario@example.com",
	})

	user, err := svc.CompleteLogin(context.Background(), "auth-code")
	require.NoError(t, err)

	assert.Equal(t, "mario", user.Username)
	assert.Equal(t, "mario@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEmpty(t, user.Password, "a random credential must close password login")
	assert.Len(t, repo.users, 1)
}

func TestOAuthService_CompleteLogin_ReturnsExistingUser(t *testing.T) {
	existing := domain.User{
		ID:       uuid.New(),
		Username: "mario",
		Email:    "mario@example.com",
		Role:     domain.RoleAdmin,
	}
	repo := newFakeUserRepo(existing)
	svc := newOAuthTestService(t, repo, map[string]string{
		"id":       "1234567890",
		"username": "mario-discord",
		"email":    "mario@example.com",
	})

	user, err := svc.CompleteLogin(context.Background(), "auth-code")
	require.NoError(t, err)

	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, domain.RoleAdmin, user.Role, "an existing account keeps its role")
	assert.Len(t, repo.users, 1)
}

func TestOAuthService_CompleteLogin_NoEmail(t *testing.T) {
	svc := newOAuthTestService(t, newFakeUserRepo(), map[string]string{
		"id":       "1234567890",
		"username": "mario",
	})

	_, err := svc.CompleteLogin(context.Background(), "auth-code")
	assert.ErrorIs(t, err, ErrOAuthProfileIncomplete)
}

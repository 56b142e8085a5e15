package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/repository"
)

const discordProfileURL = "https://discord.com/api/users/@me"

var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/api/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

var ErrOAuthProfileIncomplete = errors.New("oauth profile has no email")

type discordProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type OAuthService struct {
	conf       *oauth2.Config
	repo       AuthUserRepository
	profileURL string
}

func NewDiscordOAuthService(clientID, clientSecret, redirectURL string, repo AuthUserRepository) *OAuthService {
	return &OAuthService{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"identify", "email"},
			Endpoint:     discordEndpoint,
		},
		repo:       repo,
		profileURL: discordProfileURL,
	}
}

func (s *OAuthService) AuthCodeURL(state string) string {
	return s.conf.AuthCodeURL(state)
}

// CompleteLogin exchanges the authorization code, fetches the Discord profile
// and returns the matching local user, creating one on first login.
func (s *OAuthService) CompleteLogin(ctx context.Context, code string) (domain.User, error) {
	token, err := s.conf.Exchange(ctx, code)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.conf.Exchange -> %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return domain.User{}, err
	}

	if profile.Email == "" {
		return domain.User{}, ErrOAuthProfileIncomplete
	}

	user, err := s.repo.FindByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	// First login through Discord: create a profile row with an unusable
	// random credential so password login stays closed for this account.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.User{
		Username: profile.Username,
		Email:    profile.Email,
		Password: string(hash),
		Role:     domain.RoleUser,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *OAuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (discordProfile, error) {
	client := s.conf.Client(ctx, token)

	resp, err := client.Get(s.profileURL)
	if err != nil {
		return discordProfile{}, fmt.Errorf("client.Get -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return discordProfile{}, fmt.Errorf("discord profile request returned %d: %s", resp.StatusCode, body)
	}

	var profile discordProfile
	if err = json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return discordProfile{}, fmt.Errorf("json.Decode -> %w", err)
	}

	return profile, nil
}

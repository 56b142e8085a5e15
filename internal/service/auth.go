package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/identity"
	"github.com/torneohub/torneo-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type IdentityStore interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

type CompensationOutbox interface {
	EnqueueIdentityDelete(ctx context.Context, identityID string) error
}

type AuthService struct {
	repo     AuthUserRepository
	identity IdentityStore
	outbox   CompensationOutbox
}

func NewAuthService(repo AuthUserRepository, identity IdentityStore, outbox CompensationOutbox) *AuthService {
	return &AuthService{
		repo:     repo,
		identity: identity,
		outbox:   outbox,
	}
}

// Register creates the account in the identity store first, then inserts the
// local profile row. If the local insert fails the identity account is
// deleted again; if that compensation fails too, a durable outbox marker is
// written so the retry worker can resolve it later.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	accountID, err := s.identity.CreateAccount(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrAccountExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.identity.CreateAccount -> %w", err)
	}

	// The identity store assigns the account id; fall back to a local id
	// when it is not a UUID.
	userID, parseErr := uuid.Parse(accountID)
	if parseErr != nil {
		userID = uuid.New()
	}

	created, err := s.repo.Create(ctx, domain.User{
		ID:       userID,
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleUser,
	})
	if err != nil {
		s.compensateAccount(ctx, accountID)

		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) compensateAccount(ctx context.Context, accountID string) {
	if err := s.identity.DeleteAccount(ctx, accountID); err != nil {
		zap.L().Error("failed to compensate identity account, enqueueing retry",
			zap.String("account_id", accountID), zap.Error(err))

		if err = s.outbox.EnqueueIdentityDelete(ctx, accountID); err != nil {
			zap.L().Error("failed to enqueue identity delete", zap.Error(err))
		}
	}
}

// Login verifies the local credential. Not-found and wrong-password are kept
// distinct here; the handler collapses both into one generic response to
// avoid user enumeration.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

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
)

// ErrIdentityDeleteFailed reports the partial-failure case where the profile
// row is gone but the identity account could not be removed. The applied half
// stays applied; an outbox marker records the pending delete.
var ErrIdentityDeleteFailed = errors.New("user profile deleted but identity account removal failed")

type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserUpdate carries the optional fields of a profile edit. Nil means
// "leave unchanged"; absent game values count as 0 only for new users.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
	Game1    *int
	Game2    *int
	Game3    *int
	Game4    *int
}

type UserService struct {
	repo     UserRepository
	identity IdentityStore
	outbox   CompensationOutbox
}

func NewUserService(repo UserRepository, identity IdentityStore, outbox CompensationOutbox) *UserService {
	return &UserService{
		repo:     repo,
		identity: identity,
		outbox:   outbox,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

// UpdateUser applies the edit and recomputes punteggio in the same write, so
// the total can never drift from the four game fields.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
		}
		user.Password = string(hash)
	}
	if update.Game1 != nil {
		user.Game1 = *update.Game1
	}
	if update.Game2 != nil {
		user.Game2 = *update.Game2
	}
	if update.Game3 != nil {
		user.Game3 = *update.Game3
	}
	if update.Game4 != nil {
		user.Game4 = *update.Game4
	}

	user.Punteggio = domain.ComputeScore(user.Game1, user.Game2, user.Game3, user.Game4)

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteUser removes the profile row and then the identity account. When the
// identity delete fails the successful half stays applied; the failure is
// reported and a durable marker lets the retry worker resolve it.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	// An account the identity store never had (OAuth-created profiles) or has
	// already removed leaves both stores consistent.
	if err := s.identity.DeleteAccount(ctx, id.String()); err != nil && !errors.Is(err, identity.ErrAccountNotFound) {
		zap.L().Error("identity account delete failed after profile delete",
			zap.String("user_id", id.String()), zap.Error(err))

		if err = s.outbox.EnqueueIdentityDelete(ctx, id.String()); err != nil {
			zap.L().Error("failed to enqueue identity delete", zap.Error(err))
		}

		return ErrIdentityDeleteFailed
	}

	return nil
}

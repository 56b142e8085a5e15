package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/identity"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestUserService_UpdateUser_RecomputesScore(t *testing.T) {
	user := domain.User{
		ID:        uuid.New(),
		Username:  "mario",
		Email:     "mario@example.com",
		Game1:     10,
		Game2:     5,
		Punteggio: 15,
	}
	repo := newFakeUserRepo(user)
	svc := NewUserService(repo, &fakeIdentity{}, &fakeOutbox{})

	updated, err := svc.UpdateUser(context.Background(), user.ID, UserUpdate{
		Game3: intPtr(20),
	})
	require.NoError(t, err)

	assert.Equal(t, 10, updated.Game1, "untouched game fields keep their value")
	assert.Equal(t, 20, updated.Game3)
	assert.Equal(t, 35, updated.Punteggio, "punteggio must track the four game fields")
}

func TestUserService_UpdateUser_PartialEdit(t *testing.T) {
	user := domain.User{
		ID:       uuid.New(),
		Username: "mario",
		Email:    "mario@example.com",
		Role:     domain.RoleUser,
	}
	repo := newFakeUserRepo(user)
	svc := NewUserService(repo, &fakeIdentity{}, &fakeOutbox{})

	updated, err := svc.UpdateUser(context.Background(), user.ID, UserUpdate{
		Username: strPtr("super-mario"),
		Role:     strPtr(domain.RoleAdmin),
	})
	require.NoError(t, err)

	assert.Equal(t, "super-mario", updated.Username)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, "mario@example.com", updated.Email, "email stays when the pointer is nil")
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &fakeIdentity{}, &fakeOutbox{})

	_, err := svc.UpdateUser(context.Background(), uuid.New(), UserUpdate{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	user := domain.User{ID: uuid.New(), Email: "mario@example.com"}
	repo := newFakeUserRepo(user)
	ident := &fakeIdentity{}
	svc := NewUserService(repo, ident, &fakeOutbox{})

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))

	assert.Empty(t, repo.users)
	assert.Equal(t, []string{user.ID.String()}, ident.deletedIDs)
}

func TestUserService_DeleteUser_MissingIdentityAccountIsFine(t *testing.T) {
	user := domain.User{ID: uuid.New(), Email: "mario@example.com"}
	repo := newFakeUserRepo(user)
	ident := &fakeIdentity{deleteErr: identity.ErrAccountNotFound}
	outbox := &fakeOutbox{}
	svc := NewUserService(repo, ident, outbox)

	err := svc.DeleteUser(context.Background(), user.ID)
	require.NoError(t, err, "a profile without an identity account deletes cleanly")

	assert.Empty(t, repo.users)
	assert.Empty(t, outbox.enqueued, "both stores are consistent, nothing to retry")
}

func TestUserService_DeleteUser_IdentityFailureIsReported(t *testing.T) {
	user := domain.User{ID: uuid.New(), Email: "mario@example.com"}
	repo := newFakeUserRepo(user)
	ident := &fakeIdentity{deleteErr: errors.New("identity store down")}
	outbox := &fakeOutbox{}
	svc := NewUserService(repo, ident, outbox)

	err := svc.DeleteUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrIdentityDeleteFailed)

	assert.Empty(t, repo.users, "the profile delete stays applied")
	assert.Equal(t, []string{user.ID.String()}, outbox.enqueued)
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/torneohub/torneo-api/internal/cache"
	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/repository"
)

// fakeUserRepo is a map-backed user store shared by the service tests.
type fakeUserRepo struct {
	users map[uuid.UUID]domain.User

	createErr error
	findErr   error
	updateErr error
	deleteErr error
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if r.createErr != nil {
		return domain.User{}, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	if r.findErr != nil {
		return domain.User{}, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	if r.findErr != nil {
		return domain.User{}, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var users []domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user domain.User) (domain.User, error) {
	if r.updateErr != nil {
		return domain.User{}, r.updateErr
	}
	if _, ok := r.users[user.ID]; !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// fakeIdentity records identity store calls.
type fakeIdentity struct {
	accountID string
	createErr error
	deleteErr error

	createdEmails []string
	deletedIDs    []string
}

func (f *fakeIdentity) CreateAccount(_ context.Context, email, _ string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdEmails = append(f.createdEmails, email)
	if f.accountID != "" {
		return f.accountID, nil
	}
	return uuid.NewString(), nil
}

func (f *fakeIdentity) DeleteAccount(_ context.Context, accountID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, accountID)
	return nil
}

// fakeOutbox records enqueued compensation markers.
type fakeOutbox struct {
	enqueueErr error
	enqueued   []string
}

func (f *fakeOutbox) EnqueueIdentityDelete(_ context.Context, identityID string) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.enqueued = append(f.enqueued, identityID)
	return nil
}

func staticTTL(d time.Duration) func() time.Duration {
	return func() time.Duration { return d }
}

// memCache is an in-memory ListCache without expiry. It records the TTL of
// the most recent write.
type memCache struct {
	entries map[string][]byte
	lastTTL time.Duration
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) GetJSON(_ context.Context, key string, dest any) error {
	raw, ok := c.entries[key]
	if !ok {
		return cache.ErrKeyNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.lastTTL = ttl
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

var _ ListCache = (*memCache)(nil)

package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torneohub/torneo-api/internal/identity"
	"github.com/torneohub/torneo-api/internal/repository/dao"
)

type fakeOutboxRepo struct {
	pending []dao.OutboxEntry

	resolved []uint
	failed   []uint
}

func (r *fakeOutboxRepo) Pending(_ context.Context, limit int) ([]dao.OutboxEntry, error) {
	if len(r.pending) > limit {
		return r.pending[:limit], nil
	}
	return r.pending, nil
}

func (r *fakeOutboxRepo) Resolve(_ context.Context, id uint) error {
	r.resolved = append(r.resolved, id)
	return nil
}

func (r *fakeOutboxRepo) RecordFailure(_ context.Context, id uint, _ error) error {
	r.failed = append(r.failed, id)
	return nil
}

type fakeIdentityStore struct {
	errByID map[string]error

	deleted []string
}

func (f *fakeIdentityStore) DeleteAccount(_ context.Context, accountID string) error {
	if err, ok := f.errByID[accountID]; ok {
		return err
	}
	f.deleted = append(f.deleted, accountID)
	return nil
}

func TestOutboxWorker_DrainResolvesEntries(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []dao.OutboxEntry{
		{ID: 1, Kind: dao.OutboxKindIdentityDelete, SubjectID: "acct-1"},
		{ID: 2, Kind: dao.OutboxKindIdentityDelete, SubjectID: "acct-2"},
	}}
	ident := &fakeIdentityStore{}

	w := NewOutboxWorker(repo, ident)
	w.drain(context.Background())

	assert.Equal(t, []string{"acct-1", "acct-2"}, ident.deleted)
	assert.Equal(t, []uint{1, 2}, repo.resolved)
	assert.Empty(t, repo.failed)
}

func TestOutboxWorker_FailureIsRecordedAndOthersContinue(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []dao.OutboxEntry{
		{ID: 1, Kind: dao.OutboxKindIdentityDelete, SubjectID: "acct-1"},
		{ID: 2, Kind: dao.OutboxKindIdentityDelete, SubjectID: "acct-2"},
	}}
	ident := &fakeIdentityStore{errByID: map[string]error{
		"acct-1": errors.New("identity store down"),
	}}

	w := NewOutboxWorker(repo, ident)
	w.drain(context.Background())

	assert.Equal(t, []uint{1}, repo.failed)
	assert.Equal(t, []uint{2}, repo.resolved)
	assert.Equal(t, []string{"acct-2"}, ident.deleted)
}

func TestOutboxWorker_AccountAlreadyGoneCountsAsDone(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []dao.OutboxEntry{
		{ID: 7, Kind: dao.OutboxKindIdentityDelete, SubjectID: "acct-7"},
	}}
	ident := &fakeIdentityStore{errByID: map[string]error{
		"acct-7": identity.ErrAccountNotFound,
	}}

	w := NewOutboxWorker(repo, ident)
	w.drain(context.Background())

	require.Equal(t, []uint{7}, repo.resolved)
	assert.Empty(t, repo.failed)
}

func TestOutboxWorker_UnknownKindIsResolved(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []dao.OutboxEntry{
		{ID: 3, Kind: "something-else", SubjectID: "x"},
	}}

	w := NewOutboxWorker(repo, &fakeIdentityStore{})
	w.drain(context.Background())

	assert.Equal(t, []uint{3}, repo.resolved)
}

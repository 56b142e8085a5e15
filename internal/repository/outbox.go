package repository

import (
	"context"
	"fmt"

	"github.com/torneohub/torneo-api/internal/repository/dao"
)

type OutboxDAO interface {
	Insert(ctx context.Context, entry dao.OutboxEntry) (dao.OutboxEntry, error)
	FindPending(ctx context.Context, limit int) ([]dao.OutboxEntry, error)
	MarkDone(ctx context.Context, id uint) error
	MarkAttemptFailed(ctx context.Context, id uint, attemptErr error) error
}

type OutboxRepository struct {
	dao OutboxDAO
}

func NewOutboxRepository(dao OutboxDAO) *OutboxRepository {
	return &OutboxRepository{
		dao: dao,
	}
}

// EnqueueIdentityDelete records a durable marker that the identity account
// with the given id still has to be deleted from the identity store.
func (r *OutboxRepository) EnqueueIdentityDelete(ctx context.Context, identityID string) error {
	_, err := r.dao.Insert(ctx, dao.OutboxEntry{
		Kind:      dao.OutboxKindIdentityDelete,
		SubjectID: identityID,
		Status:    dao.OutboxStatusPending,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return nil
}

func (r *OutboxRepository) Pending(ctx context.Context, limit int) ([]dao.OutboxEntry, error) {
	entries, err := r.dao.FindPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPending -> %w", err)
	}

	return entries, nil
}

func (r *OutboxRepository) Resolve(ctx context.Context, id uint) error {
	if err := r.dao.MarkDone(ctx, id); err != nil {
		return fmt.Errorf("r.dao.MarkDone -> %w", err)
	}

	return nil
}

func (r *OutboxRepository) RecordFailure(ctx context.Context, id uint, attemptErr error) error {
	if err := r.dao.MarkAttemptFailed(ctx, id, attemptErr); err != nil {
		return fmt.Errorf("r.dao.MarkAttemptFailed -> %w", err)
	}

	return nil
}

// Package worker runs the outbox retry loop that resolves pending identity
// store compensations left behind by failed register/delete sequences.
package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/torneohub/torneo-api/internal/identity"
	"github.com/torneohub/torneo-api/internal/repository/dao"
)

const (
	defaultInterval = time.Minute
	batchSize       = 20
)

type OutboxRepository interface {
	Pending(ctx context.Context, limit int) ([]dao.OutboxEntry, error)
	Resolve(ctx context.Context, id uint) error
	RecordFailure(ctx context.Context, id uint, attemptErr error) error
}

type IdentityStore interface {
	DeleteAccount(ctx context.Context, accountID string) error
}

type OutboxWorker struct {
	repo     OutboxRepository
	identity IdentityStore
	interval time.Duration
}

func NewOutboxWorker(repo OutboxRepository, identity IdentityStore) *OutboxWorker {
	return &OutboxWorker{
		repo:     repo,
		identity: identity,
		interval: defaultInterval,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *OutboxWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	entries, err := w.repo.Pending(ctx, batchSize)
	if err != nil {
		zap.L().Error("failed to load pending outbox entries", zap.Error(err))
		return
	}

	for _, entry := range entries {
		if err := w.process(ctx, entry); err != nil {
			zap.L().Warn("outbox entry retry failed",
				zap.Uint("entry_id", entry.ID),
				zap.String("kind", entry.Kind),
				zap.Error(err))

			if err = w.repo.RecordFailure(ctx, entry.ID, err); err != nil {
				zap.L().Error("failed to record outbox failure", zap.Error(err))
			}

			continue
		}

		if err := w.repo.Resolve(ctx, entry.ID); err != nil {
			zap.L().Error("failed to resolve outbox entry", zap.Error(err))
		}
	}
}

func (w *OutboxWorker) process(ctx context.Context, entry dao.OutboxEntry) error {
	switch entry.Kind {
	case dao.OutboxKindIdentityDelete:
		err := w.identity.DeleteAccount(ctx, entry.SubjectID)
		// An already-removed account means the compensation is done.
		if err != nil && !errors.Is(err, identity.ErrAccountNotFound) {
			return err
		}

		return nil
	default:
		zap.L().Warn("unknown outbox kind", zap.String("kind", entry.Kind))
		return nil
	}
}

package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	OutboxKindIdentityDelete = "identity_delete"

	OutboxStatusPending = "pending"
	OutboxStatusDone    = "done"
)

// OutboxEntry is a durable marker for a pending compensating action against
// the identity store. A crash or upstream failure mid-sequence leaves an
// entry behind that the retry worker resolves later.
type OutboxEntry struct {
	ID uint `gorm:"primaryKey"`

	Kind      string `gorm:"not null"`
	SubjectID string `gorm:"not null"`
	Status    string `gorm:"not null;default:pending"`
	Attempts  int    `gorm:"not null;default:0"`
	LastError string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type OutboxDAO struct {
	db *gorm.DB
}

func NewOutboxDAO(db *gorm.DB) *OutboxDAO {
	return &OutboxDAO{
		db: db,
	}
}

func (d *OutboxDAO) Insert(ctx context.Context, entry OutboxEntry) (OutboxEntry, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return OutboxEntry{}, result.Error
	}

	return entry, nil
}

func (d *OutboxDAO) FindPending(ctx context.Context, limit int) ([]OutboxEntry, error) {
	var entries []OutboxEntry

	result := d.db.WithContext(ctx).
		Where("status = ?", OutboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *OutboxDAO) MarkDone(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Model(&OutboxEntry{ID: id}).
		Update("status", OutboxStatusDone).Error
}

func (d *OutboxDAO) MarkAttemptFailed(ctx context.Context, id uint, attemptErr error) error {
	return d.db.WithContext(ctx).Model(&OutboxEntry{ID: id}).Updates(map[string]any{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": attemptErr.Error(),
	}).Error
}

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type Tournament struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Titolo   string `gorm:"not null"`
	Modalita string `gorm:"not null"`
	Data     string `gorm:"not null"`
	Image    string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Tournament) TableName() string {
	return "tornei"
}

type TournamentDAO struct {
	db *gorm.DB
}

func NewTournamentDAO(db *gorm.DB) *TournamentDAO {
	return &TournamentDAO{
		db: db,
	}
}

func (d *TournamentDAO) Insert(ctx context.Context, tournament Tournament) (Tournament, error) {
	if tournament.ID == uuid.Nil {
		tournament.ID = uuid.New()
	}

	result := d.db.WithContext(ctx).Create(&tournament)
	if result.Error != nil {
		return Tournament{}, result.Error
	}

	return tournament, nil
}

func (d *TournamentDAO) FindAll(ctx context.Context) ([]Tournament, error) {
	var tournaments []Tournament

	result := d.db.WithContext(ctx).Order("created_at ASC").Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}

	return tournaments, nil
}

func (d *TournamentDAO) FindByID(ctx context.Context, id uuid.UUID) (Tournament, error) {
	var tournament Tournament

	result := d.db.WithContext(ctx).First(&tournament, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Tournament{}, ErrTournamentNotFound
		}

		return Tournament{}, result.Error
	}

	return tournament, nil
}

func (d *TournamentDAO) Update(ctx context.Context, tournament Tournament) (Tournament, error) {
	result := d.db.WithContext(ctx).Model(&Tournament{ID: tournament.ID}).Updates(map[string]any{
		"titolo":   tournament.Titolo,
		"modalita": tournament.Modalita,
		"data":     tournament.Data,
		"image":    tournament.Image,
	})
	if result.Error != nil {
		return Tournament{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Tournament{}, ErrTournamentNotFound
	}

	return d.FindByID(ctx, tournament.ID)
}

func (d *TournamentDAO) Delete(ctx context.Context, id uuid.UUID) error {
	result := d.db.WithContext(ctx).Delete(&Tournament{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTournamentNotFound
	}

	return nil
}

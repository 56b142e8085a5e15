package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTeamNotFound = errors.New("team not found")

type Team struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name            string `gorm:"not null"`
	Score           int    `gorm:"not null;default:0"`
	NumParticipants int    `gorm:"not null;default:0"`

	// Informal member list; no referential constraint to partecipazioni.
	Participants []uuid.UUID `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

func (d *TeamDAO) Insert(ctx context.Context, team Team) (Team, error) {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}

	result := d.db.WithContext(ctx).Create(&team)
	if result.Error != nil {
		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindAll(ctx context.Context) ([]Team, error) {
	var teams []Team

	result := d.db.WithContext(ctx).Order("created_at ASC").Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (d *TeamDAO) FindByID(ctx context.Context, id uuid.UUID) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).First(&team, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) Delete(ctx context.Context, id uuid.UUID) error {
	result := d.db.WithContext(ctx).Delete(&Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}

	return nil
}

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrParticipationExists   = errors.New("participation already exists")
	ErrParticipationNotFound = errors.New("participation not found")
)

type Participation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	TorneoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partecipazioni_torneo_utente"`
	UtenteID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partecipazioni_torneo_utente"`

	// Snapshot of the user's total score at enrollment time.
	Punteggio int `gorm:"not null;default:0"`
	Game1     int `gorm:"not null;default:0"`
	Game2     int `gorm:"not null;default:0"`
	Game3     int `gorm:"not null;default:0"`
	Game4     int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
}

func (Participation) TableName() string {
	return "partecipazioni"
}

// ParticipantRow is a participation joined with its user.
type ParticipantRow struct {
	PartecipazioneID uuid.UUID
	UtenteID         uuid.UUID
	Username         string
	Email            string
	Punteggio        int
}

type ParticipationDAO struct {
	db *gorm.DB
}

func NewParticipationDAO(db *gorm.DB) *ParticipationDAO {
	return &ParticipationDAO{
		db: db,
	}
}

func (d *ParticipationDAO) Insert(ctx context.Context, participation Participation) (Participation, error) {
	if participation.ID == uuid.Nil {
		participation.ID = uuid.New()
	}

	result := d.db.WithContext(ctx).Create(&participation)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Participation{}, ErrParticipationExists
		}

		return Participation{}, result.Error
	}

	return participation, nil
}

func (d *ParticipationDAO) FindByTorneoAndUtente(ctx context.Context, torneoID, utenteID uuid.UUID) (Participation, error) {
	var participation Participation

	result := d.db.WithContext(ctx).
		First(&participation, "torneo_id = ? AND utente_id = ?", torneoID, utenteID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participation{}, ErrParticipationNotFound
		}

		return Participation{}, result.Error
	}

	return participation, nil
}

// FindParticipants joins partecipazioni with users in insertion order.
func (d *ParticipationDAO) FindParticipants(ctx context.Context, torneoID uuid.UUID) ([]ParticipantRow, error) {
	var rows []ParticipantRow

	result := d.db.WithContext(ctx).
		Table("partecipazioni").
		Select("partecipazioni.id AS partecipazione_id, users.id AS utente_id, users.username, users.email, partecipazioni.punteggio").
		Joins("JOIN users ON users.id = partecipazioni.utente_id").
		Where("partecipazioni.torneo_id = ?", torneoID).
		Order("partecipazioni.created_at ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

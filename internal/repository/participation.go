package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/repository/dao"
)

var (
	ErrParticipationExists   = dao.ErrParticipationExists
	ErrParticipationNotFound = dao.ErrParticipationNotFound
)

type ParticipationDAO interface {
	Insert(ctx context.Context, participation dao.Participation) (dao.Participation, error)
	FindByTorneoAndUtente(ctx context.Context, torneoID, utenteID uuid.UUID) (dao.Participation, error)
	FindParticipants(ctx context.Context, torneoID uuid.UUID) ([]dao.ParticipantRow, error)
}

type ParticipationRepository struct {
	dao ParticipationDAO
}

func NewParticipationRepository(dao ParticipationDAO) *ParticipationRepository {
	return &ParticipationRepository{
		dao: dao,
	}
}

func (r *ParticipationRepository) Create(ctx context.Context, participation domain.Participation) (domain.Participation, error) {
	createdAt := participation.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	created, err := r.dao.Insert(ctx, dao.Participation{
		ID:        participation.ID,
		TorneoID:  participation.TorneoID,
		UtenteID:  participation.UtenteID,
		Punteggio: participation.Punteggio,
		Game1:     participation.Game1,
		Game2:     participation.Game2,
		Game3:     participation.Game3,
		Game4:     participation.Game4,
		CreatedAt: createdAt,
	})
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipationRepository) FindByTorneoAndUtente(ctx context.Context, torneoID, utenteID uuid.UUID) (domain.Participation, error) {
	found, err := r.dao.FindByTorneoAndUtente(ctx, torneoID, utenteID)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.dao.FindByTorneoAndUtente -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipationRepository) FindParticipants(ctx context.Context, torneoID uuid.UUID) ([]domain.Participant, error) {
	rows, err := r.dao.FindParticipants(ctx, torneoID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipants -> %w", err)
	}

	participants := make([]domain.Participant, 0, len(rows))
	for _, row := range rows {
		participants = append(participants, domain.Participant{
			PartecipazioneID: row.PartecipazioneID,
			UtenteID:         row.UtenteID,
			Username:         row.Username,
			Email:            row.Email,
			Punteggio:        row.Punteggio,
		})
	}

	return participants, nil
}

func (r *ParticipationRepository) daoToDomain(p dao.Participation) domain.Participation {
	return domain.Participation{
		ID:        p.ID,
		TorneoID:  p.TorneoID,
		UtenteID:  p.UtenteID,
		Punteggio: p.Punteggio,
		Game1:     p.Game1,
		Game2:     p.Game2,
		Game3:     p.Game3,
		Game4:     p.Game4,
		CreatedAt: p.CreatedAt,
	}
}

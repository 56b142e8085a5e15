package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/repository/dao"
)

var ErrTournamentNotFound = dao.ErrTournamentNotFound

type TournamentDAO interface {
	Insert(ctx context.Context, tournament dao.Tournament) (dao.Tournament, error)
	FindAll(ctx context.Context) ([]dao.Tournament, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Tournament, error)
	Update(ctx context.Context, tournament dao.Tournament) (dao.Tournament, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TournamentRepository struct {
	dao TournamentDAO
}

func NewTournamentRepository(dao TournamentDAO) *TournamentRepository {
	return &TournamentRepository{
		dao: dao,
	}
}

func (r *TournamentRepository) Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(tournament))
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TournamentRepository) FindAll(ctx context.Context) ([]domain.Tournament, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	tournaments := make([]domain.Tournament, 0, len(found))
	for _, t := range found {
		tournaments = append(tournaments, r.daoToDomain(t))
	}

	return tournaments, nil
}

func (r *TournamentRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Tournament, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TournamentRepository) Update(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(tournament))
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TournamentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TournamentRepository) daoToDomain(t dao.Tournament) domain.Tournament {
	return domain.Tournament{
		ID:        t.ID,
		Titolo:    t.Titolo,
		Modalita:  t.Modalita,
		Data:      t.Data,
		Image:     t.Image,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (r *TournamentRepository) domainToDAO(t domain.Tournament) dao.Tournament {
	return dao.Tournament{
		ID:       t.ID,
		Titolo:   t.Titolo,
		Modalita: t.Modalita,
		Data:     t.Data,
		Image:    t.Image,
	}
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/repository/dao"
)

var ErrTeamNotFound = dao.ErrTeamNotFound

type TeamDAO interface {
	Insert(ctx context.Context, team dao.Team) (dao.Team, error)
	FindAll(ctx context.Context) ([]dao.Team, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

func (r *TeamRepository) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := r.dao.Insert(ctx, dao.Team{
		ID:              team.ID,
		Name:            team.Name,
		Score:           team.Score,
		NumParticipants: team.NumParticipants,
		Participants:    team.Participants,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TeamRepository) FindAll(ctx context.Context) ([]domain.Team, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	teams := make([]domain.Team, 0, len(found))
	for _, t := range found {
		teams = append(teams, r.daoToDomain(t))
	}

	return teams, nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TeamRepository) daoToDomain(t dao.Team) domain.Team {
	return domain.Team{
		ID:              t.ID,
		Name:            t.Name,
		Score:           t.Score,
		NumParticipants: t.NumParticipants,
		Participants:    t.Participants,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

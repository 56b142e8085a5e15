package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/repository"
)

var ErrTeamNotFound = repository.ErrTeamNotFound

type TeamRepository interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	FindAll(ctx context.Context) ([]domain.Team, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TeamUserRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

// TeamDetail is a team with its participant id list resolved to display rows.
type TeamDetail struct {
	domain.Team
	Members []domain.TeamMember `json:"members"`
}

type TeamService struct {
	repo     TeamRepository
	userRepo TeamUserRepository
}

func NewTeamService(repo TeamRepository, userRepo TeamUserRepository) *TeamService {
	return &TeamService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return teams, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := s.repo.Create(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// GetTeam resolves the informal participant id list into user display rows.
// A failed lookup degrades to an empty member list rather than an error.
func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (TeamDetail, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	detail := TeamDetail{Team: team, Members: []domain.TeamMember{}}

	if len(team.Participants) > 0 {
		users, err := s.userRepo.FindByIDs(ctx, team.Participants)
		if err != nil {
			zap.L().Warn("failed to resolve team participants",
				zap.String("team_id", id.String()), zap.Error(err))

			return detail, nil
		}

		for _, u := range users {
			detail.Members = append(detail.Members, domain.TeamMember{
				UserID:   u.ID,
				Username: u.Username,
				Email:    u.Email,
			})
		}
	}

	return detail, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

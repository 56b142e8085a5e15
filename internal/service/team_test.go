package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/repository"
)

type fakeTeamRepo struct {
	teams map[uuid.UUID]domain.Team
}

func newFakeTeamRepo(teams ...domain.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[uuid.UUID]domain.Team)}
	for _, team := range teams {
		r.teams[team.ID] = team
	}
	return r
}

func (r *fakeTeamRepo) Create(_ context.Context, team domain.Team) (domain.Team, error) {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	r.teams[team.ID] = team
	return team, nil
}

func (r *fakeTeamRepo) FindAll(_ context.Context) ([]domain.Team, error) {
	teams := make([]domain.Team, 0, len(r.teams))
	for _, team := range r.teams {
		teams = append(teams, team)
	}
	return teams, nil
}

func (r *fakeTeamRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}
	return team, nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.teams[id]; !ok {
		return repository.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func TestTeamService_GetTeam_ResolvesMembers(t *testing.T) {
	mario := domain.User{ID: uuid.New(), Username: "mario", Email: "mario@example.com"}
	luigi := domain.User{ID: uuid.New(), Username: "luigi", Email: "luigi@example.com"}
	users := newFakeUserRepo(mario, luigi)

	team := domain.Team{
		ID:              uuid.New(),
		Name:            "I Fratelli",
		Score:           80,
		NumParticipants: 2,
		Participants:    []uuid.UUID{mario.ID, luigi.ID},
	}
	svc := NewTeamService(newFakeTeamRepo(team), users)

	detail, err := svc.GetTeam(context.Background(), team.ID)
	require.NoError(t, err)

	assert.Equal(t, team.Name, detail.Name)
	require.Len(t, detail.Members, 2)
	assert.Equal(t, mario.ID, detail.Members[0].UserID)
	assert.Equal(t, "luigi", detail.Members[1].Username)
}

func TestTeamService_GetTeam_DegradesOnLookupFailure(t *testing.T) {
	users := newFakeUserRepo()
	users.findErr = errors.New("db down")

	team := domain.Team{
		ID:           uuid.New(),
		Name:         "I Fratelli",
		Participants: []uuid.UUID{uuid.New()},
	}
	svc := NewTeamService(newFakeTeamRepo(team), users)

	detail, err := svc.GetTeam(context.Background(), team.ID)
	require.NoError(t, err, "a member lookup failure must not hide the team")

	assert.Equal(t, team.Name, detail.Name)
	assert.Empty(t, detail.Members)
}

func TestTeamService_GetTeam_NotFound(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo(), newFakeUserRepo())

	_, err := svc.GetTeam(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamService_DeleteTeam(t *testing.T) {
	team := domain.Team{ID: uuid.New(), Name: "I Fratelli"}
	repo := newFakeTeamRepo(team)
	svc := NewTeamService(repo, newFakeUserRepo())

	require.NoError(t, svc.DeleteTeam(context.Background(), team.ID))
	assert.Empty(t, repo.teams)

	assert.ErrorIs(t, svc.DeleteTeam(context.Background(), team.ID), ErrTeamNotFound)
}

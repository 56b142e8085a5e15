package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/repository"
)

type fakeTournamentRepo struct {
	tournaments map[uuid.UUID]domain.Tournament
	findAllErr  error

	findAllCalls int
}

func newFakeTournamentRepo(tournaments ...domain.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: make(map[uuid.UUID]domain.Tournament)}
	for _, tr := range tournaments {
		r.tournaments[tr.ID] = tr
	}
	return r
}

func (r *fakeTournamentRepo) Create(_ context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	if tournament.ID == uuid.Nil {
		tournament.ID = uuid.New()
	}
	r.tournaments[tournament.ID] = tournament
	return tournament, nil
}

func (r *fakeTournamentRepo) FindAll(_ context.Context) ([]domain.Tournament, error) {
	r.findAllCalls++
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	list := make([]domain.Tournament, 0, len(r.tournaments))
	for _, tr := range r.tournaments {
		list = append(list, tr)
	}
	return list, nil
}

func (r *fakeTournamentRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Tournament, error) {
	tr, ok := r.tournaments[id]
	if !ok {
		return domain.Tournament{}, repository.ErrTournamentNotFound
	}
	return tr, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	if _, ok := r.tournaments[tournament.ID]; !ok {
		return domain.Tournament{}, repository.ErrTournamentNotFound
	}
	r.tournaments[tournament.ID] = tournament
	return tournament, nil
}

func (r *fakeTournamentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tournaments[id]; !ok {
		return repository.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeImageStore struct {
	nextName string
	saveErr  error

	saved   int
	removed []string
}

func (f *fakeImageStore) Save(_ *multipart.FileHeader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved++
	return f.nextName, nil
}

func (f *fakeImageStore) Remove(name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func TestTournamentService_ListTournaments_CachesResult(t *testing.T) {
	repo := newFakeTournamentRepo(domain.Tournament{
		ID:       uuid.New(),
		Titolo:   "Winter Cup",
		Modalita: "1v1",
		Data:     "2026-12-01",
	})
	svc := NewTournamentService(repo, &fakeImageStore{}, newMemCache(), staticTTL(time.Minute))

	first, err := svc.ListTournaments(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Second read must come from the cache.
	repo.findAllErr = errors.New("db down")
	second, err := svc.ListTournaments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.findAllCalls)
}

func TestTournamentService_ListTournaments_UsesCurrentTTL(t *testing.T) {
	repo := newFakeTournamentRepo(domain.Tournament{ID: uuid.New(), Titolo: "Winter Cup"})
	mc := newMemCache()

	ttl := time.Minute
	svc := NewTournamentService(repo, &fakeImageStore{}, mc, func() time.Duration { return ttl })

	_, err := svc.ListTournaments(context.Background())
	require.NoError(t, err)
	require.Equal(t, time.Minute, mc.lastTTL)

	// A changed TTL must apply to the next cache write without rebuilding
	// the service.
	ttl = 5 * time.Minute
	require.NoError(t, mc.Delete(context.Background(), tournamentListKey))

	_, err = svc.ListTournaments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, mc.lastTTL)
}

func TestTournamentService_CreateTournament_InvalidatesCache(t *testing.T) {
	repo := newFakeTournamentRepo()
	mc := newMemCache()
	svc := NewTournamentService(repo, &fakeImageStore{nextName: "171-ab12cd34.png"}, mc, staticTTL(time.Minute))

	_, err := svc.ListTournaments(context.Background())
	require.NoError(t, err)
	require.Contains(t, mc.entries, tournamentListKey)

	created, err := svc.CreateTournament(context.Background(), domain.Tournament{
		Titolo:   "Winter Cup",
		Modalita: "1v1",
		Data:     "2026-12-01",
	}, &multipart.FileHeader{Filename: "poster.png"})
	require.NoError(t, err)

	assert.Equal(t, "171-ab12cd34.png", created.Image)
	assert.NotContains(t, mc.entries, tournamentListKey)
}

func TestTournamentService_UpdateTournament_SwapsImage(t *testing.T) {
	existing := domain.Tournament{
		ID:       uuid.New(),
		Titolo:   "Winter Cup",
		Modalita: "1v1",
		Data:     "2026-12-01",
		Image:    "old.png",
	}
	repo := newFakeTournamentRepo(existing)
	images := &fakeImageStore{nextName: "new.png"}
	svc := NewTournamentService(repo, images, newMemCache(), staticTTL(time.Minute))

	updated, err := svc.UpdateTournament(context.Background(), existing.ID, domain.Tournament{
		Titolo:   "Winter Cup Finals",
		Modalita: "2v2",
		Data:     "2026-12-15",
	}, &multipart.FileHeader{Filename: "poster.png"})
	require.NoError(t, err)

	assert.Equal(t, "new.png", updated.Image)
	assert.Equal(t, []string{"old.png"}, images.removed)
}

func TestTournamentService_UpdateTournament_KeepsImageWithoutUpload(t *testing.T) {
	existing := domain.Tournament{
		ID:    uuid.New(),
		Image: "old.png",
	}
	repo := newFakeTournamentRepo(existing)
	images := &fakeImageStore{}
	svc := NewTournamentService(repo, images, newMemCache(), staticTTL(time.Minute))

	updated, err := svc.UpdateTournament(context.Background(), existing.ID, domain.Tournament{
		Titolo: "Winter Cup",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "old.png", updated.Image)
	assert.Empty(t, images.removed)
}

func TestTournamentService_UpdateTournament_NotFound(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), &fakeImageStore{}, newMemCache(), staticTTL(time.Minute))

	_, err := svc.UpdateTournament(context.Background(), uuid.New(), domain.Tournament{}, nil)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestTournamentService_DeleteTournament_RemovesImage(t *testing.T) {
	existing := domain.Tournament{ID: uuid.New(), Image: "poster.png"}
	repo := newFakeTournamentRepo(existing)
	images := &fakeImageStore{}
	mc := newMemCache()
	svc := NewTournamentService(repo, images, mc, staticTTL(time.Minute))

	_, err := svc.ListTournaments(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTournament(context.Background(), existing.ID))

	assert.Empty(t, repo.tournaments)
	assert.Equal(t, []string{"poster.png"}, images.removed)
	assert.NotContains(t, mc.entries, tournamentListKey)
}

package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/torneohub/torneo-api/internal/cache"
	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/repository"
)

var ErrTournamentNotFound = repository.ErrTournamentNotFound

const tournamentListKey = "tornei:list"

type TournamentRepository interface {
	Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	FindAll(ctx context.Context) ([]domain.Tournament, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Tournament, error)
	Update(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ImageStore interface {
	Save(fileHeader *multipart.FileHeader) (string, error)
	Remove(name string) error
}

type ListCache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type TournamentService struct {
	repo   TournamentRepository
	images ImageStore
	cache  ListCache

	// ttl is consulted per write so a reloaded cache_ttl_seconds applies
	// without a restart.
	ttl func() time.Duration
}

func NewTournamentService(repo TournamentRepository, images ImageStore, cache ListCache, ttl func() time.Duration) *TournamentService {
	return &TournamentService{
		repo:   repo,
		images: images,
		cache:  cache,
		ttl:    ttl,
	}
}

// ListTournaments is a read-through cached full scan.
func (s *TournamentService) ListTournaments(ctx context.Context) ([]domain.Tournament, error) {
	var cached []domain.Tournament
	if err := s.cache.GetJSON(ctx, tournamentListKey, &cached); err == nil {
		return cached, nil
	}

	tournaments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	if err = s.cache.SetJSON(ctx, tournamentListKey, tournaments, s.ttl()); err != nil {
		zap.L().Warn("failed to cache tournament list", zap.Error(err))
	}

	return tournaments, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id uuid.UUID) (domain.Tournament, error) {
	tournament, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return tournament, nil
}

func (s *TournamentService) CreateTournament(ctx context.Context, tournament domain.Tournament, image *multipart.FileHeader) (domain.Tournament, error) {
	if image != nil {
		name, err := s.images.Save(image)
		if err != nil {
			return domain.Tournament{}, fmt.Errorf("s.images.Save -> %w", err)
		}
		tournament.Image = name
	}

	created, err := s.repo.Create(ctx, tournament)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.invalidateList(ctx)

	return created, nil
}

// UpdateTournament swaps the stored image when a new one is supplied. The old
// file removal is best-effort: a leftover file is logged, not fatal.
func (s *TournamentService) UpdateTournament(ctx context.Context, id uuid.UUID, tournament domain.Tournament, image *multipart.FileHeader) (domain.Tournament, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	tournament.ID = id
	tournament.Image = existing.Image

	if image != nil {
		if err = s.images.Remove(existing.Image); err != nil {
			zap.L().Warn("failed to remove replaced tournament image",
				zap.String("image", existing.Image), zap.Error(err))
		}

		name, err := s.images.Save(image)
		if err != nil {
			return domain.Tournament{}, fmt.Errorf("s.images.Save -> %w", err)
		}
		tournament.Image = name
	}

	updated, err := s.repo.Update(ctx, tournament)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.invalidateList(ctx)

	return updated, nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.images.Remove(existing.Image); err != nil {
		zap.L().Warn("failed to remove tournament image",
			zap.String("image", existing.Image), zap.Error(err))
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.invalidateList(ctx)

	return nil
}

func (s *TournamentService) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, tournamentListKey); err != nil {
		zap.L().Warn("failed to invalidate tournament list cache", zap.Error(err))
	}
}

var _ ListCache = (*cache.Cache)(nil)

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/torneohub/torneo-api/internal/domain"
	"github.com/torneohub/torneo-api/internal/repository"
)

var ErrAlreadyEnrolled = repository.ErrParticipationExists

type ParticipationRepository interface {
	Create(ctx context.Context, participation domain.Participation) (domain.Participation, error)
	FindByTorneoAndUtente(ctx context.Context, torneoID, utenteID uuid.UUID) (domain.Participation, error)
	FindParticipants(ctx context.Context, torneoID uuid.UUID) ([]domain.Participant, error)
}

type ParticipationUserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// Enrollment is the result of an enrollment check.
type Enrollment struct {
	Iscrizione bool `json:"iscrizione"`
	Punteggio  int  `json:"punteggio"`
}

type ParticipationService struct {
	repo     ParticipationRepository
	userRepo ParticipationUserRepository
	cache    ListCache
	ttl      func() time.Duration
}

func NewParticipationService(repo ParticipationRepository, userRepo ParticipationUserRepository, cache ListCache, ttl func() time.Duration) *ParticipationService {
	return &ParticipationService{
		repo:     repo,
		userRepo: userRepo,
		cache:    cache,
		ttl:      ttl,
	}
}

func participantsKey(torneoID uuid.UUID) string {
	return "partecipanti:" + torneoID.String()
}

// CheckEnrollment reports whether the user is enrolled; not enrolled is not
// an error.
func (s *ParticipationService) CheckEnrollment(ctx context.Context, torneoID, utenteID uuid.UUID) (Enrollment, error) {
	participation, err := s.repo.FindByTorneoAndUtente(ctx, torneoID, utenteID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipationNotFound) {
			return Enrollment{Iscrizione: false}, nil
		}

		return Enrollment{}, fmt.Errorf("s.repo.FindByTorneoAndUtente -> %w", err)
	}

	return Enrollment{Iscrizione: true, Punteggio: participation.Punteggio}, nil
}

// Enroll inserts a participation whose punteggio is a snapshot of the user's
// current total. The (torneo, utente) unique index makes a concurrent double
// enroll lose with ErrAlreadyEnrolled instead of inserting a duplicate.
func (s *ParticipationService) Enroll(ctx context.Context, torneoID, utenteID uuid.UUID, enrolledAt time.Time) (domain.Participant, error) {
	user, err := s.userRepo.FindByID(ctx, utenteID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Participation{
		TorneoID:  torneoID,
		UtenteID:  utenteID,
		Punteggio: user.Punteggio,
		CreatedAt: enrolledAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrParticipationExists) {
			return domain.Participant{}, ErrAlreadyEnrolled
		}

		return domain.Participant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err = s.cache.Delete(ctx, participantsKey(torneoID)); err != nil {
		zap.L().Warn("failed to invalidate participants cache", zap.Error(err))
	}

	return domain.Participant{
		PartecipazioneID: created.ID,
		UtenteID:         user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Punteggio:        created.Punteggio,
	}, nil
}

// ListParticipants returns the joined participant rows in insertion order,
// cached per tournament.
func (s *ParticipationService) ListParticipants(ctx context.Context, torneoID uuid.UUID) ([]domain.Participant, error) {
	key := participantsKey(torneoID)

	var cached []domain.Participant
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	}

	participants, err := s.repo.FindParticipants(ctx, torneoID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindParticipants -> %w", err)
	}

	if err = s.cache.SetJSON(ctx, key, participants, s.ttl()); err != nil {
		zap.L().Warn("failed to cache participants", zap.Error(err))
	}

	return participants, nil
}

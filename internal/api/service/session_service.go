package service

import (
	"context"
	"ctchen222/Connect-Four/internal/api/models"
	"ctchen222/Connect-Four/internal/repository"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService defines the read side of live sessions.
type SessionService interface {
	List(ctx context.Context) ([]models.SessionResponse, error)
	Get(ctx context.Context, id string) (*models.SessionResponse, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessionRepo repository.SessionRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo}
}

// List returns every live session ordered by session number.
func (s *sessionService) List(ctx context.Context) ([]models.SessionResponse, error) {
	recs, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.SessionResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.NewSessionResponse(rec))
	}
	return out, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*models.SessionResponse, error) {
	rec, err := s.sessionRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	resp := models.NewSessionResponse(*rec)
	return &resp, nil
}

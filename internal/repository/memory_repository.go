package repository

import (
	"context"
	"ctchen222/Connect-Four/internal/game"
	"sort"
	"sync"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]SessionRecord
}

// NewMemorySessionRepository keeps records in process memory. Used when no
// Redis is configured.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]SessionRecord)}
}

func (r *memorySessionRepository) Create(_ context.Context, rec SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.Status == "" {
		rec.Status = StatusInProgress
	}
	r.sessions[rec.ID] = rec
	return nil
}

func (r *memorySessionRepository) RecordMove(_ context.Context, id string, move game.Move, outcome game.Outcome, board *game.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	rec.Board = board.String()
	rec.Moves++
	rec.LastMove = &move
	if outcome.Terminal() {
		rec.Status = StatusFinished
	}
	r.sessions[id] = rec
	return nil
}

func (r *memorySessionRepository) FindByID(_ context.Context, id string) (*SessionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &rec, nil
}

func (r *memorySessionRepository) List(_ context.Context) ([]SessionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SessionRecord, 0, len(r.sessions))
	for _, rec := range r.sessions {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

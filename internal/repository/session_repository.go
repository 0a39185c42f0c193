package repository

import (
	"context"
	"ctchen222/Connect-Four/internal/game"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("repository.session")

const (
	activeSessionsKey = "sessions:active"

	FieldNumber     = "number"
	FieldMode       = "mode"
	FieldFirstAddr  = "first_addr"
	FieldSecondAddr = "second_addr"
	FieldBoard      = "board"
	FieldMoves      = "moves"
	FieldLastMove   = "last_move"
	FieldStatus     = "status"
	FieldStartedAt  = "started_at"
)

const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRecord is the live view of a running session.
type SessionRecord struct {
	ID         string     `json:"id"`
	Number     int        `json:"number"`
	Mode       string     `json:"mode"`
	FirstAddr  string     `json:"first_addr"`
	SecondAddr string     `json:"second_addr"`
	Board      string     `json:"board"`
	Moves      int        `json:"moves"`
	LastMove   *game.Move `json:"last_move,omitempty"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
}

// SessionRepository tracks sessions while they run. Records are removed
// when the session ends; nothing outlives the session.
type SessionRepository interface {
	Create(ctx context.Context, rec SessionRecord) error
	RecordMove(ctx context.Context, id string, move game.Move, outcome game.Outcome, board *game.Board) error
	FindByID(ctx context.Context, id string) (*SessionRecord, error)
	List(ctx context.Context) ([]SessionRecord, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionRepository struct {
	rdb *redis.Client
}

// NewSessionRepository creates a new Redis-based SessionRepository.
func NewSessionRepository(rdb *redis.Client) SessionRepository {
	return &redisSessionRepository{rdb: rdb}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Create stores the initial record and adds it to the active set.
func (r *redisSessionRepository) Create(ctx context.Context, rec SessionRecord) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Create", trace.WithAttributes(attribute.String("room.id", rec.ID)))
	defer span.End()

	status := rec.Status
	if status == "" {
		status = StatusInProgress
	}

	pipe := r.rdb.TxPipeline()
	key := sessionKey(rec.ID)
	pipe.HSet(ctx, key,
		FieldNumber, rec.Number,
		FieldMode, rec.Mode,
		FieldFirstAddr, rec.FirstAddr,
		FieldSecondAddr, rec.SecondAddr,
		FieldBoard, rec.Board,
		FieldMoves, 0,
		FieldStatus, status,
		FieldStartedAt, rec.StartedAt.Unix(),
	)
	pipe.SAdd(ctx, activeSessionsKey, rec.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create session in redis: %w", err)
	}
	return nil
}

// RecordMove updates the board snapshot after a move.
func (r *redisSessionRepository) RecordMove(ctx context.Context, id string, move game.Move, outcome game.Outcome, board *game.Board) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.RecordMove", trace.WithAttributes(attribute.String("room.id", id)))
	defer span.End()

	moveJSON, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("failed to marshal move: %w", err)
	}
	status := StatusInProgress
	if outcome.Terminal() {
		status = StatusFinished
	}

	pipe := r.rdb.TxPipeline()
	key := sessionKey(id)
	pipe.HSet(ctx, key,
		FieldBoard, board.String(),
		FieldLastMove, moveJSON,
		FieldStatus, status,
	)
	pipe.HIncrBy(ctx, key, FieldMoves, 1)

	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to record move in redis: %w", err)
	}
	return nil
}

// FindByID returns the record for a live session.
func (r *redisSessionRepository) FindByID(ctx context.Context, id string) (*SessionRecord, error) {
	ctx, span := tracer.Start(ctx, "SessionRepository.FindByID", trace.WithAttributes(attribute.String("room.id", id)))
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrSessionNotFound
	}
	return decodeSession(id, data)
}

// List returns every live session ordered by session number.
func (r *redisSessionRepository) List(ctx context.Context) ([]SessionRecord, error) {
	ctx, span := tracer.Start(ctx, "SessionRepository.List")
	defer span.End()

	ids, err := r.rdb.SMembers(ctx, activeSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(ids) == 0 {
		return []SessionRecord{}, nil
	}

	pipe := r.rdb.Pipeline()
	cmds := make([]*redis.StringStringMapCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, sessionKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	out := make([]SessionRecord, 0, len(ids))
	for i, cmd := range cmds {
		data := cmd.Val()
		if len(data) == 0 {
			continue
		}
		rec, err := decodeSession(ids[i], data)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	span.SetAttributes(attribute.Int("sessions.count", len(out)))
	return out, nil
}

// Delete removes the record and its entry in the active set.
func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Delete", trace.WithAttributes(attribute.String("room.id", id)))
	defer span.End()

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, activeSessionsKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}

func decodeSession(id string, data map[string]string) (*SessionRecord, error) {
	rec := &SessionRecord{
		ID:         id,
		Mode:       data[FieldMode],
		FirstAddr:  data[FieldFirstAddr],
		SecondAddr: data[FieldSecondAddr],
		Board:      data[FieldBoard],
		Status:     data[FieldStatus],
	}

	var err error
	if rec.Number, err = atoiField(data, FieldNumber); err != nil {
		return nil, err
	}
	if rec.Moves, err = atoiField(data, FieldMoves); err != nil {
		return nil, err
	}
	started, err := atoiField(data, FieldStartedAt)
	if err != nil {
		return nil, err
	}
	rec.StartedAt = time.Unix(int64(started), 0).UTC()

	if raw := data[FieldLastMove]; raw != "" {
		var mv game.Move
		if err := json.Unmarshal([]byte(raw), &mv); err != nil {
			return nil, fmt.Errorf("failed to unmarshal last move: %w", err)
		}
		rec.LastMove = &mv
	}
	return rec, nil
}

func atoiField(data map[string]string, field string) (int, error) {
	v, ok := data[field]
	if !ok || v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s field %q: %w", field, v, err)
	}
	return n, nil
}

package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix   = "tobacco:session:"
	selectionKeyPrefix = "tobacco:selection:"
)

// SessionRepository shares capture sessions between bot replicas. The key TTL
// is refreshed on every Save, which gives the same sliding idle expiry as the
// in-memory repository.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *redis.Client, idleTTL time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: idleTTL}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	return setJSON(ctx, r.rdb, sessionKeyPrefix+session.UserID, session, r.ttl)
}

func (r *SessionRepository) Get(ctx context.Context, userID string) (*store.Session, bool, error) {
	var session store.Session
	found, err := getJSON(ctx, r.rdb, sessionKeyPrefix+userID, &session)
	if err != nil || !found {
		return nil, false, err
	}
	return &session, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID string) error {
	if err := r.rdb.Del(ctx, sessionKeyPrefix+userID).Err(); err != nil {
		return apperror.Transport("redis del session", err)
	}
	return nil
}

// SelectionRepository stores option tokens with a fixed lifetime.
type SelectionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSelectionRepository(rdb *redis.Client, ttl time.Duration) *SelectionRepository {
	return &SelectionRepository{rdb: rdb, ttl: ttl}
}

func (r *SelectionRepository) Save(ctx context.Context, selection *store.Selection) error {
	return setJSON(ctx, r.rdb, selectionKeyPrefix+selection.Token, selection, r.ttl)
}

func (r *SelectionRepository) Get(ctx context.Context, token string) (*store.Selection, bool, error) {
	var selection store.Selection
	found, err := getJSON(ctx, r.rdb, selectionKeyPrefix+token, &selection)
	if err != nil || !found {
		return nil, false, err
	}
	return &selection, true, nil
}

func setJSON(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		return apperror.Transport("redis set "+key, err)
	}
	return nil
}

func getJSON(ctx context.Context, rdb *redis.Client, key string, dest interface{}) (bool, error) {
	data, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Transport("redis get "+key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

package memory

import (
	"context"
	"time"

	"tobacco-catalog-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps capture sessions in process memory keyed by user.
// Every Save re-arms the idle expiry.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(idleTTL time.Duration) *SessionRepository {
	// Janitor runs at a fraction of the TTL so idle sessions don't linger long
	c := cache.New(idleTTL, cleanupInterval(idleTTL))
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(_ context.Context, session *store.Session) error {
	copied := *session
	r.cache.Set(session.UserID, &copied, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, userID string) (*store.Session, bool, error) {
	if x, found := r.cache.Get(userID); found {
		copied := *x.(*store.Session)
		return &copied, true, nil
	}
	return nil, false, nil
}

func (r *SessionRepository) Delete(_ context.Context, userID string) error {
	r.cache.Delete(userID)
	return nil
}

func cleanupInterval(ttl time.Duration) time.Duration {
	interval := ttl / 3
	if interval < time.Second {
		return time.Second
	}
	return interval
}

package memory

import (
	"context"
	"time"

	"tobacco-catalog-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SelectionRepository remembers which name each issued option token denotes.
type SelectionRepository struct {
	cache *cache.Cache
}

func NewSelectionRepository(ttl time.Duration) *SelectionRepository {
	return &SelectionRepository{
		cache: cache.New(ttl, cleanupInterval(ttl)),
	}
}

func (r *SelectionRepository) Save(_ context.Context, selection *store.Selection) error {
	r.cache.Set(selection.Token, *selection, cache.DefaultExpiration)
	return nil
}

func (r *SelectionRepository) Get(_ context.Context, token string) (*store.Selection, bool, error) {
	if x, found := r.cache.Get(token); found {
		selection := x.(store.Selection)
		return &selection, true, nil
	}
	return nil, false, nil
}

package rediscache

import (
	"context"
	"os"
	"testing"
	"time"

	"tobacco-catalog-be/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redis.Client {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Skipping integration test: redis unreachable: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisSessionRepository(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()
	repo := NewSessionRepository(rdb, time.Minute)
	userID := "test-" + uuid.NewString()

	taste := 7.0
	require.NoError(t, repo.Save(ctx, &store.Session{
		UserID: userID,
		Stage:  store.StageAwaitingMolasses,
		Draft:  store.Draft{Taste: &taste},
	}))

	got, found, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, store.StageAwaitingMolasses, got.Stage)
	assert.Equal(t, 7.0, *got.Draft.Taste)

	require.NoError(t, repo.Delete(ctx, userID))
	_, found, err = repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisSelectionRepository(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()
	repo := NewSelectionRepository(rdb, time.Minute)
	token := uuid.NewString()

	require.NoError(t, repo.Save(ctx, &store.Selection{Token: token, Action: store.ActionEdit, Name: "Serbetli"}))

	got, found, err := repo.Get(ctx, token)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Serbetli", got.Name)
	assert.Equal(t, store.ActionEdit, got.Action)
}

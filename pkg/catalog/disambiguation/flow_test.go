package disambiguation

import (
	"context"
	"errors"
	"testing"
	"time"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/internal/pkg/logger"
	"tobacco-catalog-be/internal/repository/memory"
	"tobacco-catalog-be/pkg/catalog/catalogtest"
	"tobacco-catalog-be/pkg/fuzzy"
	"tobacco-catalog-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlow(catalogStore *catalogtest.Store) *Flow {
	return New(catalogStore, memory.NewSelectionRepository(time.Minute), logger.NewNopLogger())
}

func TestSearchFindsClosestName(t *testing.T) {
	ctx := context.Background()
	flow := newTestFlow(catalogtest.NewStore("Al Fakher", "Adalya", "Serbetli"))

	result, err := flow.Search(ctx, "al fakher")
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "Al Fakher", result.Options[0].Label)
	assert.Greater(t, result.Options[0].Score, fuzzy.Threshold)

	for _, option := range result.Options {
		assert.Greater(t, option.Score, fuzzy.Threshold)
		assert.NotEmpty(t, option.Token)
		assert.LessOrEqual(t, len(option.Token), 64)
	}
}

func TestSearchNotFound(t *testing.T) {
	ctx := context.Background()
	flow := newTestFlow(catalogtest.NewStore("Al Fakher", "Adalya", "Serbetli"))

	result, err := flow.Search(ctx, "xyz123")
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Options)

	result, err = flow.Search(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestSearchOffersAtMostFiveOptions(t *testing.T) {
	flow := newTestFlow(catalogtest.NewStore(
		"Mint", "Mint 1", "Mint 2", "Mint 3", "Mint 4", "Mint 5", "Mint 6",
	))

	result, err := flow.Search(context.Background(), "mint")
	require.NoError(t, err)
	assert.Len(t, result.Options, MaxOptions)
	assert.Equal(t, "Mint", result.Options[0].Label)
}

func TestSearchPropagatesStoreFailure(t *testing.T) {
	catalogStore := catalogtest.NewStore("Adalya")
	catalogStore.Err = apperror.Transport("list names", errors.New("timeout"))

	_, err := newTestFlow(catalogStore).Search(context.Background(), "adalya")
	assert.True(t, apperror.Is(err, apperror.CodeTransportFailure))
}

func TestTokenResolvesToExactNameAfterCatalogChange(t *testing.T) {
	ctx := context.Background()
	catalogStore := catalogtest.NewStore("Al Fakher", "Adalya")
	flow := newTestFlow(catalogStore)

	result, err := flow.Search(ctx, "al fakher")
	require.NoError(t, err)
	token := result.Options[0].Token

	require.NoError(t, catalogStore.Create(ctx, &entity.Tobacco{Name: "Al Fakher Mint"}))

	selection, err := flow.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, store.ActionSelect, selection.Action)
	assert.Equal(t, "Al Fakher", selection.Name)

	require.NoError(t, catalogStore.Delete(ctx, "Al Fakher"))
	_, err = flow.Show(ctx, selection.Name)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound), "vanished entries are reported, not rendered")
}

func TestResolveUnknownToken(t *testing.T) {
	_, err := newTestFlow(catalogtest.NewStore()).Resolve(context.Background(), "deadbeef")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestShowIssuesEditAndDeleteTokens(t *testing.T) {
	ctx := context.Background()
	catalogStore := catalogtest.NewStore()
	require.NoError(t, catalogStore.Create(ctx, &entity.Tobacco{Name: "Serbetli", Taste: 6, Comment: "melon"}))
	flow := newTestFlow(catalogStore)

	record, err := flow.Show(ctx, "Serbetli")
	require.NoError(t, err)
	assert.Equal(t, 6.0, record.Tobacco.Taste)
	assert.NotEqual(t, record.EditToken, record.DeleteToken)

	edit, err := flow.Resolve(ctx, record.EditToken)
	require.NoError(t, err)
	assert.Equal(t, store.ActionEdit, edit.Action)
	assert.Equal(t, "Serbetli", edit.Name)

	del, err := flow.Resolve(ctx, record.DeleteToken)
	require.NoError(t, err)
	assert.Equal(t, store.ActionDelete, del.Action)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	catalogStore := catalogtest.NewStore("Adalya")
	flow := newTestFlow(catalogStore)

	result, err := flow.Delete(ctx, "Adalya")
	require.NoError(t, err)
	assert.True(t, result.Deleted)

	_, err = catalogStore.GetByName(ctx, "Adalya")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	result, err = flow.Delete(ctx, "Adalya")
	require.NoError(t, err)
	assert.False(t, result.Deleted)
	assert.Equal(t, 1, catalogStore.Deletes)
}

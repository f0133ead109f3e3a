// Package catalog holds the tobacco catalog core: the capture workflow, the
// search-and-disambiguation flow, and the store contract they share.
package catalog

import (
	"context"

	"tobacco-catalog-be/internal/entity"
)

// Store is the durable keyed catalog. Mutations return only after commit.
//
// Errors use the apperror taxonomy: Create and a renaming Update fail with
// DuplicateName, lookups and mutations of a missing name with NotFound.
type Store interface {
	Create(ctx context.Context, tobacco *entity.Tobacco) error
	GetByName(ctx context.Context, name string) (*entity.Tobacco, error)
	ListNames(ctx context.Context) ([]string, error)
	Update(ctx context.Context, name string, patch entity.TobaccoPatch) (*entity.Tobacco, error)
	Delete(ctx context.Context, name string) error
}

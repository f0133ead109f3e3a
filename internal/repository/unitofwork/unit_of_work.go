package unitofwork

import (
	"context"

	"tobacco-catalog-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TobaccoRepository() contract.TobaccoRepository
	CatalogEventRepository() contract.CatalogEventRepository
}

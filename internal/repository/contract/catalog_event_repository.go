package contract

import (
	"context"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/repository/specification"
)

type CatalogEventRepository interface {
	Create(ctx context.Context, event *entity.CatalogEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CatalogEvent, error)
}

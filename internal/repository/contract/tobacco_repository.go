package contract

import (
	"context"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/repository/specification"
)

type TobaccoRepository interface {
	Create(ctx context.Context, tobacco *entity.Tobacco) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tobacco, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tobacco, error)
	ListNames(ctx context.Context) ([]string, error)
	UpdateByName(ctx context.Context, name string, patch entity.TobaccoPatch) (*entity.Tobacco, error)
	DeleteByName(ctx context.Context, name string) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

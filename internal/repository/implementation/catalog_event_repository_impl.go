package implementation

import (
	"context"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/mapper"
	"tobacco-catalog-be/internal/model"
	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/internal/repository/contract"
	"tobacco-catalog-be/internal/repository/scope"
	"tobacco-catalog-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CatalogEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogEventMapper
}

func NewCatalogEventRepository(db *gorm.DB) contract.CatalogEventRepository {
	return &CatalogEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogEventMapper(),
	}
}

func (r *CatalogEventRepositoryImpl) Create(ctx context.Context, event *entity.CatalogEvent) error {
	m, err := r.mapper.ToModel(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Transport("create catalog event", err)
	}
	return nil
}

func (r *CatalogEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CatalogEvent, error) {
	var models []*model.CatalogEvent
	query := r.db.WithContext(ctx).Scopes(scope.OrderByOccurredDesc)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.Transport("list catalog events", err)
	}
	return r.mapper.ToEntities(models), nil
}

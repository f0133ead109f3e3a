package implementation

import (
	"context"
	"errors"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/mapper"
	"tobacco-catalog-be/internal/model"
	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/internal/repository/contract"
	"tobacco-catalog-be/internal/repository/scope"
	"tobacco-catalog-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TobaccoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TobaccoMapper
}

func NewTobaccoRepository(db *gorm.DB) contract.TobaccoRepository {
	return &TobaccoRepositoryImpl{
		db:     db,
		mapper: mapper.NewTobaccoMapper(),
	}
}

func (r *TobaccoRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TobaccoRepositoryImpl) Create(ctx context.Context, tobacco *entity.Tobacco) error {
	m := r.mapper.ToModel(tobacco)
	m.Id = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError("create tobacco", tobacco.Name, err)
	}
	*tobacco = *r.mapper.ToEntity(m)
	return nil
}

// FindOne returns nil without error when nothing matches.
func (r *TobaccoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tobacco, error) {
	var m model.Tobacco
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Transport("find tobacco", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TobaccoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tobacco, error) {
	var models []*model.Tobacco
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.Transport("list tobaccos", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TobaccoRepositoryImpl) ListNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Tobacco{}).
		Scopes(scope.OrderByInsertion).
		Pluck("name", &names).Error
	if err != nil {
		return nil, apperror.Transport("list tobacco names", err)
	}
	return names, nil
}

func (r *TobaccoRepositoryImpl) UpdateByName(ctx context.Context, name string, patch entity.TobaccoPatch) (*entity.Tobacco, error) {
	columns := r.mapper.ToColumns(patch)
	if len(columns) > 0 {
		newName := name
		if patch.Name != nil {
			newName = *patch.Name
		}

		res := r.db.WithContext(ctx).
			Model(&model.Tobacco{}).
			Where("name = ?", name).
			Updates(columns)
		if res.Error != nil {
			return nil, translateError("update tobacco", newName, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, apperror.NotFound(name)
		}
		name = newName
	}

	updated, err := r.FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound(name)
	}
	return updated, nil
}

func (r *TobaccoRepositoryImpl) DeleteByName(ctx context.Context, name string) error {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Tobacco{})
	if res.Error != nil {
		return apperror.Transport("delete tobacco", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound(name)
	}
	return nil
}

func (r *TobaccoRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Tobacco{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperror.Transport("count tobaccos", err)
	}
	return count, nil
}

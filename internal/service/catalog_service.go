package service

import (
	"context"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/internal/pkg/logger"
	"tobacco-catalog-be/internal/repository/specification"
	"tobacco-catalog-be/internal/repository/unitofwork"
	"tobacco-catalog-be/pkg/catalog"
	"tobacco-catalog-be/pkg/events"
)

// ICatalogService is the durable catalog.Store. Every mutation is committed
// before it returns, then announced on the catalog topic.
type ICatalogService interface {
	catalog.Store
	List(ctx context.Context) ([]*entity.Tobacco, error)
}

type catalogService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewCatalogService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	logger logger.ILogger,
) ICatalogService {
	return &catalogService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           logger,
	}
}

func (s *catalogService) Create(ctx context.Context, tobacco *entity.Tobacco) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Transport("begin create", err)
	}
	defer uow.Rollback()

	if err := uow.TobaccoRepository().Create(ctx, tobacco); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return apperror.Transport("commit create", err)
	}

	s.publish(ctx, events.NewCatalogEvent(events.TobaccoCreated, tobacco.Name, fieldsOf(tobacco)))
	return nil
}

func (s *catalogService) GetByName(ctx context.Context, name string) (*entity.Tobacco, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tobacco, err := uow.TobaccoRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if tobacco == nil {
		return nil, apperror.NotFound(name)
	}
	return tobacco, nil
}

func (s *catalogService) ListNames(ctx context.Context) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.TobaccoRepository().ListNames(ctx)
}

func (s *catalogService) List(ctx context.Context) ([]*entity.Tobacco, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.TobaccoRepository().FindAll(ctx, specification.OrderBy{Field: "id"})
}

func (s *catalogService) Update(ctx context.Context, name string, patch entity.TobaccoPatch) (*entity.Tobacco, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Transport("begin update", err)
	}
	defer uow.Rollback()

	updated, err := uow.TobaccoRepository().UpdateByName(ctx, name, patch)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Transport("commit update", err)
	}

	data := fieldsOf(updated)
	if updated.Name != name {
		data["previous_name"] = name
	}
	s.publish(ctx, events.NewCatalogEvent(events.TobaccoUpdated, updated.Name, data))
	return updated, nil
}

func (s *catalogService) Delete(ctx context.Context, name string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Transport("begin delete", err)
	}
	defer uow.Rollback()

	if err := uow.TobaccoRepository().DeleteByName(ctx, name); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return apperror.Transport("commit delete", err)
	}

	s.publish(ctx, events.NewCatalogEvent(events.TobaccoDeleted, name, nil))
	return nil
}

// publish never fails the mutation; the row is already committed.
func (s *catalogService) publish(ctx context.Context, event events.Event) {
	if s.publisherService == nil {
		return
	}
	if err := s.publisherService.Publish(ctx, event); err != nil {
		s.logger.Warn("CATALOG", "Failed to publish catalog event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func fieldsOf(t *entity.Tobacco) map[string]interface{} {
	return map[string]interface{}{
		"id":              t.Id,
		"taste":           t.Taste,
		"molasses":        t.Molasses,
		"smoke_time":      t.SmokeTime,
		"heat_resistance": t.HeatResistance,
		"comment":         t.Comment,
	}
}

package service

import (
	"context"

	"tobacco-catalog-be/internal/dto"
	"tobacco-catalog-be/internal/repository/specification"
	"tobacco-catalog-be/internal/repository/unitofwork"
)

// IAuditService reads back the catalog_events written by the consumer.
type IAuditService interface {
	History(ctx context.Context, filter dto.CatalogEventFilter) ([]*dto.CatalogEventResponse, error)
}

type auditService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAuditService(uowFactory unitofwork.RepositoryFactory) IAuditService {
	return &auditService{
		uowFactory: uowFactory,
	}
}

// History lists events newest first.
func (s *auditService) History(ctx context.Context, filter dto.CatalogEventFilter) ([]*dto.CatalogEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if filter.Name != "" {
		specs = append(specs, specification.ByTobaccoName{Name: filter.Name})
	}
	if filter.Type != "" {
		specs = append(specs, specification.ByEventType{Type: filter.Type})
	}
	offset := (filter.Page - 1) * filter.Limit
	if offset < 0 {
		offset = 0
	}
	specs = append(specs, specification.Pagination{Limit: filter.Limit, Offset: offset})

	events, err := uow.CatalogEventRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CatalogEventResponse, 0, len(events))
	for _, e := range events {
		res = append(res, &dto.CatalogEventResponse{
			Id:          e.Id,
			Type:        e.Type,
			TobaccoName: e.TobaccoName,
			Payload:     e.Payload,
			OccurredAt:  e.OccurredAt,
		})
	}
	return res, nil
}

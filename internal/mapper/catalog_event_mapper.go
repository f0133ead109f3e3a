package mapper

import (
	"encoding/json"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/model"

	"gorm.io/datatypes"
)

type CatalogEventMapper struct{}

func NewCatalogEventMapper() *CatalogEventMapper {
	return &CatalogEventMapper{}
}

func (m *CatalogEventMapper) ToEntity(e *model.CatalogEvent) *entity.CatalogEvent {
	if e == nil {
		return nil
	}

	payload := make(map[string]interface{})
	if len(e.Payload) > 0 {
		// Payload is written by ToModel, a decode failure leaves it empty
		_ = json.Unmarshal(e.Payload, &payload)
	}

	return &entity.CatalogEvent{
		Id:          e.Id,
		Type:        e.Type,
		TobaccoName: e.TobaccoName,
		Payload:     payload,
		OccurredAt:  e.OccurredAt,
	}
}

func (m *CatalogEventMapper) ToModel(e *entity.CatalogEvent) (*model.CatalogEvent, error) {
	if e == nil {
		return nil, nil
	}

	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, err
	}

	return &model.CatalogEvent{
		Id:          e.Id,
		Type:        e.Type,
		TobaccoName: e.TobaccoName,
		Payload:     datatypes.JSON(payload),
		OccurredAt:  e.OccurredAt,
	}, nil
}

func (m *CatalogEventMapper) ToEntities(events []*model.CatalogEvent) []*entity.CatalogEvent {
	entities := make([]*entity.CatalogEvent, len(events))
	for i, e := range events {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

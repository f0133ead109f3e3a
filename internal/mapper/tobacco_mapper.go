package mapper

import (
	"time"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/model"
)

type TobaccoMapper struct{}

func NewTobaccoMapper() *TobaccoMapper {
	return &TobaccoMapper{}
}

func (m *TobaccoMapper) ToEntity(t *model.Tobacco) *entity.Tobacco {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Tobacco{
		Id:             t.Id,
		Name:           t.Name,
		Taste:          t.Taste,
		Molasses:       t.Molasses,
		SmokeTime:      t.SmokeTime,
		HeatResistance: t.HeatResistance,
		Comment:        t.Comment,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *TobaccoMapper) ToModel(t *entity.Tobacco) *model.Tobacco {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Tobacco{
		Id:             t.Id,
		Name:           t.Name,
		Taste:          t.Taste,
		Molasses:       t.Molasses,
		SmokeTime:      t.SmokeTime,
		HeatResistance: t.HeatResistance,
		Comment:        t.Comment,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *TobaccoMapper) ToEntities(tobaccos []*model.Tobacco) []*entity.Tobacco {
	entities := make([]*entity.Tobacco, len(tobaccos))
	for i, t := range tobaccos {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

// ToColumns turns a patch into the column map used by UPDATE.
func (m *TobaccoMapper) ToColumns(p entity.TobaccoPatch) map[string]interface{} {
	columns := make(map[string]interface{})
	if p.Name != nil {
		columns["name"] = *p.Name
	}
	if p.Taste != nil {
		columns["taste"] = *p.Taste
	}
	if p.Molasses != nil {
		columns["molasses"] = *p.Molasses
	}
	if p.SmokeTime != nil {
		columns["smoke_time"] = *p.SmokeTime
	}
	if p.HeatResistance != nil {
		columns["heat_resistance"] = *p.HeatResistance
	}
	if p.Comment != nil {
		columns["comment"] = *p.Comment
	}
	return columns
}

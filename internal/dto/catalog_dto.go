package dto

import (
	"time"

	"github.com/google/uuid"
)

type TobaccoResponse struct {
	Id             int64      `json:"id"`
	Name           string     `json:"name"`
	Taste          float64    `json:"taste"`
	Molasses       float64    `json:"molasses"`
	SmokeTime      float64    `json:"smoke_time"`
	HeatResistance float64    `json:"heat_resistance"`
	Comment        string     `json:"comment"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type CatalogEventResponse struct {
	Id          uuid.UUID              `json:"id"`
	Type        string                 `json:"type"`
	TobaccoName string                 `json:"tobacco_name"`
	Payload     map[string]interface{} `json:"payload"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

// CatalogEventFilter narrows the audit trail. Empty fields match everything.
type CatalogEventFilter struct {
	Name  string `query:"name"`
	Type  string `query:"type" validate:"omitempty,oneof=TOBACCO_CREATED TOBACCO_UPDATED TOBACCO_DELETED"`
	Page  int    `query:"page" validate:"min=1"`
	Limit int    `query:"limit" validate:"min=1,max=100"`
}

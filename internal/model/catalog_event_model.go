package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CatalogEvent struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Type        string         `gorm:"type:varchar(50);not null;index"`
	TobaccoName string         `gorm:"type:text;not null;index"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	OccurredAt  time.Time      `gorm:"not null;index"`
}

func (CatalogEvent) TableName() string {
	return "catalog_events"
}

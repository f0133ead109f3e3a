package entity

import (
	"time"

	"github.com/google/uuid"
)

type CatalogEvent struct {
	Id          uuid.UUID
	Type        string
	TobaccoName string
	Payload     map[string]interface{}
	OccurredAt  time.Time
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	UserId string `json:"user_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

type SelectOptionRequest struct {
	UserId string `json:"user_id" validate:"required"`
	Token  string `json:"token" validate:"required,alphanum,max=64"`
}

// Option is a selectable choice. Token is opaque and round-trips through the
// gateway unchanged.
type Option struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

type Reply struct {
	Text    string   `json:"text"`
	Options []Option `json:"options,omitempty"`
	// ShowMenu asks the gateway to (re)display the main menu.
	ShowMenu bool `json:"show_menu,omitempty"`
}

type ConversationResponse struct {
	Replies []Reply `json:"replies"`
}

// CatalogEventMessage is the payload carried on the in-process catalog topic.
type CatalogEventMessage struct {
	Id          uuid.UUID              `json:"id"`
	Type        string                 `json:"type"`
	TobaccoName string                 `json:"tobacco_name"`
	Payload     map[string]interface{} `json:"payload"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

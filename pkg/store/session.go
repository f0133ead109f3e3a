package store

import "time"

// Stage is the position of a user inside the capture workflow.
type Stage string

const (
	StageIdle                   Stage = "IDLE"
	StageAwaitingName           Stage = "AWAITING_NAME"
	StageAwaitingTaste          Stage = "AWAITING_TASTE"
	StageAwaitingMolasses       Stage = "AWAITING_MOLASSES"
	StageAwaitingSmokeTime      Stage = "AWAITING_SMOKE_TIME"
	StageAwaitingHeatResistance Stage = "AWAITING_HEAT_RESISTANCE"
	StageAwaitingComment        Stage = "AWAITING_COMMENT"
	StageCommitted              Stage = "COMMITTED"
)

// Draft holds the values captured so far. A nil field has not been captured
// (or pre-seeded) yet.
type Draft struct {
	Name           *string  `json:"name,omitempty"`
	Taste          *float64 `json:"taste,omitempty"`
	Molasses       *float64 `json:"molasses,omitempty"`
	SmokeTime      *float64 `json:"smoke_time,omitempty"`
	HeatResistance *float64 `json:"heat_resistance,omitempty"`
	Comment        *string  `json:"comment,omitempty"`
}

// Session represents the active capture state of one user
type Session struct {
	UserID string `json:"user_id"`
	Stage  Stage  `json:"stage"`
	Draft  Draft  `json:"draft"`

	// Original name of the entry being edited, empty when adding
	EditTarget string `json:"edit_target,omitempty"`

	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) Editing() bool {
	return s.EditTarget != ""
}

// SelectionAction is what a tapped option asks the bot to do with a name.
type SelectionAction string

const (
	ActionSelect SelectionAction = "select"
	ActionEdit   SelectionAction = "edit"
	ActionDelete SelectionAction = "delete"
)

// Selection binds an opaque token to the exact catalog name it was issued for.
type Selection struct {
	Token    string          `json:"token"`
	Action   SelectionAction `json:"action"`
	Name     string          `json:"name"`
	IssuedAt time.Time       `json:"issued_at"`
}

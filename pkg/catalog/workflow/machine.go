package workflow

import "tobacco-catalog-be/pkg/store"

// EventKind classifies what happened to a session.
type EventKind string

const (
	EventStart    EventKind = "START"    // add trigger
	EventEdit     EventKind = "EDIT"     // edit trigger, draft pre-seeded
	EventInput    EventKind = "INPUT"    // value accepted for the current field
	EventInvalid  EventKind = "INVALID"  // value rejected, field unchanged
	EventConflict EventKind = "CONFLICT" // name already taken
	EventCancel   EventKind = "CANCEL"
)

// Effect is what the caller must do after a transition.
type Effect string

const (
	EffectNone     Effect = "NONE"
	EffectPrompt   Effect = "PROMPT"   // ask for the new stage's field
	EffectReprompt Effect = "REPROMPT" // ask for the same field again, with the error
	EffectCommit   Effect = "COMMIT"   // write the draft to the store
	EffectDiscard  Effect = "DISCARD"  // drop the session, store untouched
)

// Field names the record attribute captured at a stage.
type Field string

const (
	FieldName           Field = "name"
	FieldTaste          Field = "taste"
	FieldMolasses       Field = "molasses"
	FieldSmokeTime      Field = "smoke_time"
	FieldHeatResistance Field = "heat_resistance"
	FieldComment        Field = "comment"
)

// CaptureOrder is the strict prompt order.
var CaptureOrder = []store.Stage{
	store.StageAwaitingName,
	store.StageAwaitingTaste,
	store.StageAwaitingMolasses,
	store.StageAwaitingSmokeTime,
	store.StageAwaitingHeatResistance,
	store.StageAwaitingComment,
}

var stageFields = map[store.Stage]Field{
	store.StageAwaitingName:           FieldName,
	store.StageAwaitingTaste:          FieldTaste,
	store.StageAwaitingMolasses:       FieldMolasses,
	store.StageAwaitingSmokeTime:      FieldSmokeTime,
	store.StageAwaitingHeatResistance: FieldHeatResistance,
	store.StageAwaitingComment:        FieldComment,
}

// Stages lists every stage, Idle first and Committed last.
func Stages() []store.Stage {
	stages := []store.Stage{store.StageIdle}
	stages = append(stages, CaptureOrder...)
	return append(stages, store.StageCommitted)
}

// Events lists every event kind.
func Events() []EventKind {
	return []EventKind{EventStart, EventEdit, EventInput, EventInvalid, EventConflict, EventCancel}
}

// FieldOf returns the field captured at stage, or "" outside capture.
func FieldOf(stage store.Stage) Field {
	return stageFields[stage]
}

func isCapture(stage store.Stage) bool {
	_, ok := stageFields[stage]
	return ok
}

func nextStage(stage store.Stage) store.Stage {
	for i, s := range CaptureOrder {
		if s == stage && i+1 < len(CaptureOrder) {
			return CaptureOrder[i+1]
		}
	}
	return store.StageCommitted
}

// Transition is the complete transition function of the capture workflow.
// Every (stage, event) pair has a defined result.
func Transition(stage store.Stage, event EventKind) (store.Stage, Effect) {
	switch event {
	case EventStart, EventEdit:
		// A new trigger always restarts, whatever was in progress
		return store.StageAwaitingName, EffectPrompt
	case EventCancel:
		if isCapture(stage) {
			return store.StageIdle, EffectDiscard
		}
		return stage, EffectNone
	}

	if stage == store.StageCommitted {
		if event == EventConflict {
			return store.StageAwaitingName, EffectReprompt
		}
		return stage, EffectNone
	}
	if !isCapture(stage) {
		return stage, EffectNone
	}

	switch event {
	case EventInput:
		next := nextStage(stage)
		if next == store.StageCommitted {
			return next, EffectCommit
		}
		return next, EffectPrompt
	case EventInvalid:
		return stage, EffectReprompt
	case EventConflict:
		return store.StageAwaitingName, EffectReprompt
	}
	return stage, EffectNone
}

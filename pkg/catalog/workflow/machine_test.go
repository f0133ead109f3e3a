package workflow

import (
	"testing"

	"tobacco-catalog-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestTransitionIsTotal(t *testing.T) {
	known := map[store.Stage]bool{}
	for _, s := range Stages() {
		known[s] = true
	}

	for _, stage := range Stages() {
		for _, event := range Events() {
			next, effect := Transition(stage, event)
			assert.Truef(t, known[next], "%s + %s leads to unknown stage %q", stage, event, next)
			assert.NotEmptyf(t, effect, "%s + %s has no effect", stage, event)
		}
	}
}

func TestTransitionFollowsCaptureOrder(t *testing.T) {
	stage, effect := Transition(store.StageIdle, EventStart)
	assert.Equal(t, store.StageAwaitingName, stage)
	assert.Equal(t, EffectPrompt, effect)

	visited := []store.Stage{stage}
	for stage != store.StageCommitted {
		stage, effect = Transition(stage, EventInput)
		visited = append(visited, stage)
	}

	assert.Equal(t, EffectCommit, effect)
	assert.Equal(t, append(append([]store.Stage{}, CaptureOrder...), store.StageCommitted), visited)
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name   string
		stage  store.Stage
		event  EventKind
		want   store.Stage
		effect Effect
	}{
		{"invalid value stays", store.StageAwaitingMolasses, EventInvalid, store.StageAwaitingMolasses, EffectReprompt},
		{"conflict returns to name", store.StageAwaitingName, EventConflict, store.StageAwaitingName, EffectReprompt},
		{"conflict at commit returns to name", store.StageCommitted, EventConflict, store.StageAwaitingName, EffectReprompt},
		{"cancel mid capture discards", store.StageAwaitingSmokeTime, EventCancel, store.StageIdle, EffectDiscard},
		{"cancel while idle is a no-op", store.StageIdle, EventCancel, store.StageIdle, EffectNone},
		{"input while idle is ignored", store.StageIdle, EventInput, store.StageIdle, EffectNone},
		{"start restarts a capture", store.StageAwaitingComment, EventStart, store.StageAwaitingName, EffectPrompt},
		{"edit restarts a capture", store.StageAwaitingTaste, EventEdit, store.StageAwaitingName, EffectPrompt},
		{"committed ignores input", store.StageCommitted, EventInput, store.StageCommitted, EffectNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, effect := Transition(tt.stage, tt.event)
			assert.Equal(t, tt.want, stage)
			assert.Equal(t, tt.effect, effect)
		})
	}
}

func TestFieldOf(t *testing.T) {
	assert.Equal(t, FieldName, FieldOf(store.StageAwaitingName))
	assert.Equal(t, FieldHeatResistance, FieldOf(store.StageAwaitingHeatResistance))
	assert.Equal(t, Field(""), FieldOf(store.StageIdle))
	assert.Equal(t, Field(""), FieldOf(store.StageCommitted))
}

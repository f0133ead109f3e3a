// Package workflow drives the step-by-step capture of a catalog entry.
//
// A Workflow owns one session per user. Values are recorded strictly in prompt
// order and the catalog is written exactly once, when the last field has been
// accepted.
package workflow

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/internal/pkg/logger"
	"tobacco-catalog-be/pkg/catalog"
	"tobacco-catalog-be/pkg/store"
)

// KeepValue, sent at any stage, keeps the value already in the draft.
const KeepValue = "-"

const logModule = "WORKFLOW"

var (
	errNameRequired   = errors.New("name must not be empty")
	errNumberRequired = errors.New("a number is required, e.g. 7 or 6.5")
	errNotFinite      = errors.New("value must be a finite number")
)

type SessionRepository interface {
	Save(ctx context.Context, session *store.Session) error
	Get(ctx context.Context, userID string) (*store.Session, bool, error)
	Delete(ctx context.Context, userID string) error
}

// Outcome describes where a session ended up after one operation.
type Outcome struct {
	Stage  store.Stage
	Effect Effect

	// Session is the stored session, nil once it has been destroyed.
	Session *store.Session

	// Saved is the committed entry when Effect is EffectCommit, Edited tells
	// whether it replaced an existing one.
	Saved  *entity.Tobacco
	Edited bool

	// Err is the per-user rejection behind a REPROMPT, or the commit failure.
	Err error
}

// Field is the field the user is asked for next, "" when nothing is pending.
func (o *Outcome) Field() Field {
	return FieldOf(o.Stage)
}

type Workflow struct {
	sessions SessionRepository
	store    catalog.Store
	logger   logger.ILogger
	now      func() time.Time
}

func New(sessions SessionRepository, store catalog.Store, logger logger.ILogger) *Workflow {
	return &Workflow{
		sessions: sessions,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Start begins a new entry. Any session in progress is discarded first.
func (w *Workflow) Start(ctx context.Context, userID string) (*Outcome, error) {
	current, _, err := w.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		w.logger.Info(logModule, "Restarting capture", map[string]interface{}{"user_id": userID, "stage": current.Stage})
	}

	stage, effect := Transition(stageOf(current), EventStart)
	now := w.now()
	session := &store.Session{
		UserID:    userID,
		Stage:     stage,
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := w.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &Outcome{Stage: stage, Effect: effect, Session: session}, nil
}

// StartEdit begins a full re-capture of an existing entry with its current
// values pre-seeded into the draft.
func (w *Workflow) StartEdit(ctx context.Context, userID, name string) (*Outcome, error) {
	existing, err := w.store.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	current, _, err := w.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	stage, effect := Transition(stageOf(current), EventEdit)
	now := w.now()
	session := &store.Session{
		UserID:     userID,
		Stage:      stage,
		Draft:      draftOf(existing),
		EditTarget: existing.Name,
		StartedAt:  now,
		UpdatedAt:  now,
	}
	if err := w.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &Outcome{Stage: stage, Effect: effect, Session: session}, nil
}

// Submit records text as the value of the current stage. The returned error is
// reserved for session storage failures; everything the user can recover from
// is reported through Outcome.Err.
func (w *Workflow) Submit(ctx context.Context, userID, text string) (*Outcome, error) {
	session, found, err := w.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found || !isCapture(session.Stage) {
		return &Outcome{Stage: store.StageIdle, Effect: EffectNone}, nil
	}

	event, rejection := w.accept(ctx, session, strings.TrimSpace(text))
	stage, effect := Transition(session.Stage, event)

	if effect == EffectCommit {
		return w.commit(ctx, session)
	}

	session.Stage = stage
	session.UpdatedAt = w.now()
	if err := w.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &Outcome{Stage: stage, Effect: effect, Session: session, Err: rejection}, nil
}

// Cancel discards the session without touching the catalog. It reports
// whether a capture was in progress.
func (w *Workflow) Cancel(ctx context.Context, userID string) (bool, error) {
	session, found, err := w.sessions.Get(ctx, userID)
	if err != nil || !found {
		return false, err
	}

	_, effect := Transition(session.Stage, EventCancel)
	if err := w.sessions.Delete(ctx, userID); err != nil {
		return false, err
	}
	return effect == EffectDiscard, nil
}

// Active reports whether the user is in the middle of a capture.
func (w *Workflow) Active(ctx context.Context, userID string) (bool, error) {
	session, found, err := w.sessions.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return found && isCapture(session.Stage), nil
}

func (w *Workflow) Current(ctx context.Context, userID string) (*store.Session, bool, error) {
	return w.sessions.Get(ctx, userID)
}

// accept validates text for the session's current field and writes it into
// the draft. A rejected value leaves the draft untouched.
func (w *Workflow) accept(ctx context.Context, session *store.Session, text string) (EventKind, error) {
	draft := &session.Draft

	switch field := FieldOf(session.Stage); field {
	case FieldName:
		if text == KeepValue && draft.Name != nil {
			text = *draft.Name
		}
		if text == "" || text == KeepValue {
			return EventInvalid, apperror.Validation(string(field), errNameRequired)
		}
		if text != session.EditTarget {
			_, err := w.store.GetByName(ctx, text)
			switch {
			case err == nil:
				return EventConflict, apperror.DuplicateName(text)
			case !apperror.Is(err, apperror.CodeNotFound):
				return EventInvalid, err
			}
		}
		draft.Name = &text

	case FieldComment:
		if text == KeepValue {
			if draft.Comment == nil {
				empty := ""
				draft.Comment = &empty
			}
			break
		}
		draft.Comment = &text

	default:
		target := ratingField(draft, field)
		if text == KeepValue && *target != nil {
			break
		}
		value, err := parseRating(text)
		if err != nil {
			return EventInvalid, apperror.Validation(string(field), err)
		}
		*target = &value
	}
	return EventInput, nil
}

func (w *Workflow) commit(ctx context.Context, session *store.Session) (*Outcome, error) {
	saved, err := w.write(ctx, session)

	switch apperror.CodeOf(err) {
	case "":
		if err := w.sessions.Delete(ctx, session.UserID); err != nil {
			return nil, err
		}
		w.logger.Info(logModule, "Tobacco committed", map[string]interface{}{
			"user_id": session.UserID,
			"name":    saved.Name,
			"edit":    session.Editing(),
		})
		return &Outcome{Stage: store.StageCommitted, Effect: EffectCommit, Saved: saved, Edited: session.Editing()}, nil

	case apperror.CodeDuplicateName:
		// Lost a race for the name after it was checked; ask for another one
		stage, effect := Transition(store.StageCommitted, EventConflict)
		session.Stage = stage
		session.UpdatedAt = w.now()
		if err := w.sessions.Save(ctx, session); err != nil {
			return nil, err
		}
		return &Outcome{Stage: stage, Effect: effect, Session: session, Err: err}, nil

	case apperror.CodeNotFound:
		if err := w.sessions.Delete(ctx, session.UserID); err != nil {
			return nil, err
		}
		return &Outcome{Stage: store.StageIdle, Effect: EffectDiscard, Err: err}, nil

	default:
		w.logger.Error(logModule, "Commit failed", map[string]interface{}{
			"user_id": session.UserID,
			"error":   err.Error(),
		})
		// Keep the draft at the last stage so resending the comment retries
		session.UpdatedAt = w.now()
		if saveErr := w.sessions.Save(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return &Outcome{Stage: session.Stage, Effect: EffectReprompt, Session: session, Err: err}, nil
	}
}

func (w *Workflow) write(ctx context.Context, session *store.Session) (*entity.Tobacco, error) {
	d := session.Draft
	if session.Editing() {
		return w.store.Update(ctx, session.EditTarget, entity.TobaccoPatch{
			Name:           d.Name,
			Taste:          d.Taste,
			Molasses:       d.Molasses,
			SmokeTime:      d.SmokeTime,
			HeatResistance: d.HeatResistance,
			Comment:        d.Comment,
		})
	}

	tobacco := &entity.Tobacco{
		Name:           deref(d.Name),
		Taste:          deref(d.Taste),
		Molasses:       deref(d.Molasses),
		SmokeTime:      deref(d.SmokeTime),
		HeatResistance: deref(d.HeatResistance),
		Comment:        deref(d.Comment),
	}
	if err := w.store.Create(ctx, tobacco); err != nil {
		return nil, err
	}
	return tobacco, nil
}

// parseRating accepts a decimal number with either '.' or ',' as separator.
func parseRating(text string) (float64, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	if text == "" {
		return 0, errNumberRequired
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errNumberRequired
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errNotFinite
	}
	return value, nil
}

func ratingField(d *store.Draft, field Field) **float64 {
	switch field {
	case FieldTaste:
		return &d.Taste
	case FieldMolasses:
		return &d.Molasses
	case FieldSmokeTime:
		return &d.SmokeTime
	default:
		return &d.HeatResistance
	}
}

func draftOf(t *entity.Tobacco) store.Draft {
	name, comment := t.Name, t.Comment
	taste, molasses, smokeTime, heat := t.Taste, t.Molasses, t.SmokeTime, t.HeatResistance
	return store.Draft{
		Name:           &name,
		Taste:          &taste,
		Molasses:       &molasses,
		SmokeTime:      &smokeTime,
		HeatResistance: &heat,
		Comment:        &comment,
	}
}

func stageOf(session *store.Session) store.Stage {
	if session == nil {
		return store.StageIdle
	}
	return session.Stage
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// Package response renders the fixed-language texts the bot sends back.
package response

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/pkg/catalog/workflow"
	"tobacco-catalog-be/pkg/store"
)

// Main menu buttons. The texts double as commands.
const (
	MenuAdd    = "Add tobacco"
	MenuSearch = "Search tobacco"
	MenuEdit   = "Edit tobacco"
	MenuDelete = "Delete tobacco"
	MenuCancel = "Cancel"
)

// Option labels on a record card.
const (
	LabelEdit   = "Edit"
	LabelDelete = "Delete"
)

const (
	Greeting       = "Hi! I keep the tobacco catalog. Pick an action from the menu."
	AskSearch      = "Send me the name of the tobacco you are looking for."
	AskEdit        = "Send me the name of the tobacco you want to edit."
	AskDelete      = "Send me the name of the tobacco you want to delete."
	SearchNotFound = "Nothing similar was found in the catalog."
	SearchResults  = "Here is what I found, pick one:"
	Cancelled      = "Cancelled, nothing was saved."
	NothingToDo    = "There is nothing to cancel."
	SelectionGone  = "This option has expired, please search again."
	TryAgainLater  = "Something went wrong, please try again later."
)

// Menu returns the main menu rows.
func Menu() [][]string {
	return [][]string{{MenuAdd}, {MenuSearch}, {MenuEdit}, {MenuDelete}}
}

var fieldLabels = map[workflow.Field]string{
	workflow.FieldName:           "Name",
	workflow.FieldTaste:          "Taste",
	workflow.FieldMolasses:       "Molasses",
	workflow.FieldSmokeTime:      "Smoke time",
	workflow.FieldHeatResistance: "Heat resistance",
	workflow.FieldComment:        "Comment",
}

var fieldQuestions = map[workflow.Field]string{
	workflow.FieldName:           "Enter the tobacco name:",
	workflow.FieldTaste:          "Rate the taste:",
	workflow.FieldMolasses:       "How much molasses does it have?",
	workflow.FieldSmokeTime:      "How long does it smoke (minutes)?",
	workflow.FieldHeatResistance: "Rate the heat resistance:",
	workflow.FieldComment:        "Any comment?",
}

// Prompt asks for field. When the draft already holds a value for it, the
// value is shown together with the keep hint.
func Prompt(field workflow.Field, draft store.Draft) string {
	question := fieldQuestions[field]
	current, ok := draftValue(field, draft)
	switch {
	case ok:
		return fmt.Sprintf("%s\nCurrent: %s (send %s to keep it)", question, current, workflow.KeepValue)
	case field == workflow.FieldComment:
		return fmt.Sprintf("%s\n(send %s to leave it empty)", question, workflow.KeepValue)
	default:
		return question
	}
}

// Card renders every field of an entry.
func Card(t *entity.Tobacco) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", fieldLabels[workflow.FieldName], t.Name)
	fmt.Fprintf(&b, "%s: %s\n", fieldLabels[workflow.FieldTaste], formatNumber(t.Taste))
	fmt.Fprintf(&b, "%s: %s\n", fieldLabels[workflow.FieldMolasses], formatNumber(t.Molasses))
	fmt.Fprintf(&b, "%s: %s\n", fieldLabels[workflow.FieldSmokeTime], formatNumber(t.SmokeTime))
	fmt.Fprintf(&b, "%s: %s\n", fieldLabels[workflow.FieldHeatResistance], formatNumber(t.HeatResistance))
	comment := t.Comment
	if comment == "" {
		comment = "-"
	}
	fmt.Fprintf(&b, "%s: %s", fieldLabels[workflow.FieldComment], comment)
	return b.String()
}

func Saved(t *entity.Tobacco, edited bool) string {
	if edited {
		return fmt.Sprintf("Updated %q.\n\n%s", t.Name, Card(t))
	}
	return fmt.Sprintf("Saved %q to the catalog.\n\n%s", t.Name, Card(t))
}

func Deleted(name string, deleted bool) string {
	if deleted {
		return fmt.Sprintf("Deleted %q.", name)
	}
	return fmt.Sprintf("%q was already removed.", name)
}

// Error turns any error into a short message for the user.
func Error(err error) string {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		return TryAgainLater
	}

	switch appErr.Code {
	case apperror.CodeDuplicateName:
		return fmt.Sprintf("A tobacco named %q already exists. Please choose another name.", appErr.Reason)
	case apperror.CodeNotFound:
		return fmt.Sprintf("%q was not found in the catalog.", appErr.Reason)
	case apperror.CodeValidation:
		label := fieldLabels[workflow.Field(appErr.Reason)]
		if label == "" {
			label = appErr.Reason
		}
		if appErr.Err != nil {
			return fmt.Sprintf("Invalid %s: %v.", strings.ToLower(label), appErr.Err)
		}
		return fmt.Sprintf("Invalid %s.", strings.ToLower(label))
	default:
		return TryAgainLater
	}
}

func draftValue(field workflow.Field, d store.Draft) (string, bool) {
	switch field {
	case workflow.FieldName:
		return deref(d.Name)
	case workflow.FieldComment:
		if d.Comment == nil || *d.Comment == "" {
			return "", false
		}
		return *d.Comment, true
	case workflow.FieldTaste:
		return number(d.Taste)
	case workflow.FieldMolasses:
		return number(d.Molasses)
	case workflow.FieldSmokeTime:
		return number(d.SmokeTime)
	case workflow.FieldHeatResistance:
		return number(d.HeatResistance)
	}
	return "", false
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func number(f *float64) (string, bool) {
	if f == nil {
		return "", false
	}
	return formatNumber(*f), true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Package disambiguation turns a free-text query into a short list of
// candidate entries and resolves the option the user picks back to the exact
// stored name.
package disambiguation

import (
	"context"
	"strings"
	"time"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/internal/pkg/logger"
	"tobacco-catalog-be/pkg/catalog"
	"tobacco-catalog-be/pkg/fuzzy"
	"tobacco-catalog-be/pkg/store"

	"github.com/google/uuid"
)

// MaxOptions caps how many candidates are offered for one query.
const MaxOptions = 5

const logModule = "DISAMBIGUATION"

type SelectionRepository interface {
	Save(ctx context.Context, selection *store.Selection) error
	Get(ctx context.Context, token string) (*store.Selection, bool, error)
}

type Option struct {
	Label string
	Token string
	Score int
}

type SearchResult struct {
	Query   string
	Found   bool
	Options []Option
}

// Record is a freshly fetched entry plus the tokens acting on it.
type Record struct {
	Tobacco     *entity.Tobacco
	EditToken   string
	DeleteToken string
}

type DeleteResult struct {
	Name string
	// Deleted is false when the entry was already gone.
	Deleted bool
}

type Flow struct {
	store      catalog.Store
	selections SelectionRepository
	matcher    *fuzzy.Matcher
	logger     logger.ILogger
	now        func() time.Time
}

func New(store catalog.Store, selections SelectionRepository, logger logger.ILogger) *Flow {
	return &Flow{
		store:      store,
		selections: selections,
		matcher:    fuzzy.NewMatcher(),
		logger:     logger,
		now:        time.Now,
	}
}

// Search ranks every stored name against query and issues a select token for
// each candidate above the threshold. Found is false when none qualifies.
func (f *Flow) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	result := &SearchResult{Query: query, Options: []Option{}}
	if query == "" {
		return result, nil
	}

	names, err := f.store.ListNames(ctx)
	if err != nil {
		return nil, err
	}

	matches := fuzzy.AboveThreshold(f.matcher.Rank(query, names, MaxOptions), fuzzy.Threshold)
	for _, m := range matches {
		token, err := f.issue(ctx, store.ActionSelect, m.Name)
		if err != nil {
			return nil, err
		}
		result.Options = append(result.Options, Option{Label: m.Name, Token: token, Score: m.Score})
	}
	result.Found = len(result.Options) > 0

	f.logger.Debug(logModule, "Search ranked", map[string]interface{}{
		"query":      query,
		"candidates": len(names),
		"options":    len(result.Options),
	})
	return result, nil
}

// Resolve returns what a token was issued for. Unknown and expired tokens are
// reported as NotFound.
func (f *Flow) Resolve(ctx context.Context, token string) (*store.Selection, error) {
	selection, found, err := f.selections.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("selection " + token)
	}
	return selection, nil
}

// Show re-fetches the entry so a stale option never renders stale values.
func (f *Flow) Show(ctx context.Context, name string) (*Record, error) {
	tobacco, err := f.store.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	editToken, err := f.issue(ctx, store.ActionEdit, tobacco.Name)
	if err != nil {
		return nil, err
	}
	deleteToken, err := f.issue(ctx, store.ActionDelete, tobacco.Name)
	if err != nil {
		return nil, err
	}
	return &Record{Tobacco: tobacco, EditToken: editToken, DeleteToken: deleteToken}, nil
}

// Delete removes the entry immediately. A second delete of the same name is
// not an error.
func (f *Flow) Delete(ctx context.Context, name string) (*DeleteResult, error) {
	err := f.store.Delete(ctx, name)
	switch {
	case err == nil:
		f.logger.Info(logModule, "Tobacco deleted", map[string]interface{}{"name": name})
		return &DeleteResult{Name: name, Deleted: true}, nil
	case apperror.Is(err, apperror.CodeNotFound):
		return &DeleteResult{Name: name, Deleted: false}, nil
	default:
		return nil, err
	}
}

func (f *Flow) issue(ctx context.Context, action store.SelectionAction, name string) (string, error) {
	// Dashless uuid keeps callback data well under Telegram's 64 bytes
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	err := f.selections.Save(ctx, &store.Selection{
		Token:    token,
		Action:   action,
		Name:     name,
		IssuedAt: f.now(),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

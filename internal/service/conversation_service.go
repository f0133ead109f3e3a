package service

import (
	"context"
	"strings"

	"tobacco-catalog-be/internal/dto"
	"tobacco-catalog-be/internal/pkg/apperror"
	"tobacco-catalog-be/internal/pkg/logger"
	"tobacco-catalog-be/pkg/catalog/disambiguation"
	"tobacco-catalog-be/pkg/catalog/response"
	"tobacco-catalog-be/pkg/catalog/workflow"
	"tobacco-catalog-be/pkg/store"
)

const (
	commandStart  = "/start"
	commandCancel = "/cancel"
	commandAdd    = "/add"
)

// IConversationService is the single entry point of every gateway. Per-user
// failures are rendered into the response; the error return is reserved for
// faults the gateway cannot explain to the user.
type IConversationService interface {
	HandleText(ctx context.Context, userId string, text string) (*dto.ConversationResponse, error)
	HandleSelection(ctx context.Context, userId string, token string) (*dto.ConversationResponse, error)
}

type conversationService struct {
	workflow *workflow.Workflow
	flow     *disambiguation.Flow
	logger   logger.ILogger
}

func NewConversationService(wf *workflow.Workflow, flow *disambiguation.Flow, logger logger.ILogger) IConversationService {
	return &conversationService{
		workflow: wf,
		flow:     flow,
		logger:   logger,
	}
}

func (s *conversationService) HandleText(ctx context.Context, userId string, text string) (*dto.ConversationResponse, error) {
	text = strings.TrimSpace(text)

	switch {
	case text == commandStart:
		s.abandon(ctx, userId)
		return menuReply(response.Greeting), nil

	case text == commandCancel || strings.EqualFold(text, response.MenuCancel):
		cancelled, err := s.workflow.Cancel(ctx, userId)
		if err != nil {
			return s.failure(userId, err), nil
		}
		if cancelled {
			return menuReply(response.Cancelled), nil
		}
		return menuReply(response.NothingToDo), nil

	case text == response.MenuAdd || text == commandAdd:
		out, err := s.workflow.Start(ctx, userId)
		if err != nil {
			return s.failure(userId, err), nil
		}
		return s.renderOutcome(out), nil

	case text == response.MenuSearch:
		s.abandon(ctx, userId)
		return textReply(response.AskSearch), nil
	case text == response.MenuEdit:
		s.abandon(ctx, userId)
		return textReply(response.AskEdit), nil
	case text == response.MenuDelete:
		s.abandon(ctx, userId)
		return textReply(response.AskDelete), nil
	}

	active, err := s.workflow.Active(ctx, userId)
	if err != nil {
		return s.failure(userId, err), nil
	}
	if active {
		out, err := s.workflow.Submit(ctx, userId, text)
		if err != nil {
			return s.failure(userId, err), nil
		}
		if out.Effect != workflow.EffectNone {
			return s.renderOutcome(out), nil
		}
		// Session expired between the two reads, treat the text as a query
	}

	return s.search(ctx, userId, text), nil
}

func (s *conversationService) HandleSelection(ctx context.Context, userId string, token string) (*dto.ConversationResponse, error) {
	selection, err := s.flow.Resolve(ctx, token)
	if err != nil {
		if apperror.Is(err, apperror.CodeNotFound) {
			return textReply(response.SelectionGone), nil
		}
		return s.failure(userId, err), nil
	}

	switch selection.Action {
	case store.ActionSelect:
		record, err := s.flow.Show(ctx, selection.Name)
		if err != nil {
			return s.failure(userId, err), nil
		}
		return &dto.ConversationResponse{Replies: []dto.Reply{{
			Text: response.Card(record.Tobacco),
			Options: []dto.Option{
				{Label: response.LabelEdit, Token: record.EditToken},
				{Label: response.LabelDelete, Token: record.DeleteToken},
			},
		}}}, nil

	case store.ActionEdit:
		out, err := s.workflow.StartEdit(ctx, userId, selection.Name)
		if err != nil {
			return s.failure(userId, err), nil
		}
		return s.renderOutcome(out), nil

	case store.ActionDelete:
		s.abandon(ctx, userId)
		result, err := s.flow.Delete(ctx, selection.Name)
		if err != nil {
			return s.failure(userId, err), nil
		}
		return menuReply(response.Deleted(result.Name, result.Deleted)), nil
	}

	s.logger.Warn("CONVERSATION", "Unknown selection action", map[string]interface{}{"action": selection.Action})
	return textReply(response.SelectionGone), nil
}

func (s *conversationService) search(ctx context.Context, userId string, query string) *dto.ConversationResponse {
	result, err := s.flow.Search(ctx, query)
	if err != nil {
		return s.failure(userId, err)
	}
	if !result.Found {
		return textReply(response.SearchNotFound)
	}

	options := make([]dto.Option, 0, len(result.Options))
	for _, option := range result.Options {
		options = append(options, dto.Option{Label: option.Label, Token: option.Token})
	}
	return &dto.ConversationResponse{Replies: []dto.Reply{{Text: response.SearchResults, Options: options}}}
}

func (s *conversationService) renderOutcome(out *workflow.Outcome) *dto.ConversationResponse {
	switch out.Effect {
	case workflow.EffectCommit:
		return menuReply(response.Saved(out.Saved, out.Edited))

	case workflow.EffectDiscard:
		return menuReply(response.Error(out.Err))

	case workflow.EffectReprompt:
		return textReply(response.Error(out.Err) + "\n" + response.Prompt(out.Field(), out.Session.Draft))

	default:
		return textReply(response.Prompt(out.Field(), out.Session.Draft))
	}
}

// abandon drops a capture in progress when the user switches to another menu
// action.
func (s *conversationService) abandon(ctx context.Context, userId string) {
	if _, err := s.workflow.Cancel(ctx, userId); err != nil {
		s.logger.Warn("CONVERSATION", "Failed to drop session", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

func (s *conversationService) failure(userId string, err error) *dto.ConversationResponse {
	if apperror.CodeOf(err) == apperror.CodeTransportFailure {
		s.logger.Error("CONVERSATION", "Request failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
	return textReply(response.Error(err))
}

func textReply(text string) *dto.ConversationResponse {
	return &dto.ConversationResponse{Replies: []dto.Reply{{Text: text}}}
}

func menuReply(text string) *dto.ConversationResponse {
	return &dto.ConversationResponse{Replies: []dto.Reply{{Text: text, ShowMenu: true}}}
}

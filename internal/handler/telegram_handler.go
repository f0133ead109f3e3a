package handler

import (
	"context"
	"strconv"

	"tobacco-catalog-be/internal/dto"
	"tobacco-catalog-be/internal/pkg/logger"
	"tobacco-catalog-be/internal/service"
	"tobacco-catalog-be/pkg/catalog/response"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the handler needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// TelegramHandler is the Telegram gateway: text messages and inline button
// taps go to the conversation service, replies come back as chat messages.
type TelegramHandler struct {
	sender       Sender
	conversation service.IConversationService
	logger       logger.ILogger
}

func NewTelegramHandler(sender Sender, conversation service.IConversationService, log logger.ILogger) *TelegramHandler {
	return &TelegramHandler{
		sender:       sender,
		conversation: conversation,
		logger:       log,
	}
}

// Run processes updates one at a time until ctx is done or the channel closes.
func (h *TelegramHandler) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	h.logger.Info("TELEGRAM", "Polling for updates", nil)
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

func (h *TelegramHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		h.handleMessage(ctx, update.Message)
	}
}

func (h *TelegramHandler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	userId := strconv.FormatInt(msg.From.ID, 10)

	res, err := h.conversation.HandleText(ctx, userId, msg.Text)
	if err != nil {
		h.logger.Error("TELEGRAM", "Failed to handle message", map[string]interface{}{"user_id": userId, "error": err.Error()})
		res = &dto.ConversationResponse{Replies: []dto.Reply{{Text: response.TryAgainLater}}}
	}
	h.deliver(msg.Chat.ID, res)
}

func (h *TelegramHandler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Stop the button's loading spinner whatever happens next
	if _, err := h.sender.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.logger.Warn("TELEGRAM", "Failed to answer callback", map[string]interface{}{"error": err.Error()})
	}
	if cb.Message == nil || cb.From == nil {
		return
	}
	userId := strconv.FormatInt(cb.From.ID, 10)

	res, err := h.conversation.HandleSelection(ctx, userId, cb.Data)
	if err != nil {
		h.logger.Error("TELEGRAM", "Failed to handle selection", map[string]interface{}{"user_id": userId, "error": err.Error()})
		res = &dto.ConversationResponse{Replies: []dto.Reply{{Text: response.TryAgainLater}}}
	}
	h.deliver(cb.Message.Chat.ID, res)
}

func (h *TelegramHandler) deliver(chatID int64, res *dto.ConversationResponse) {
	for _, reply := range res.Replies {
		if _, err := h.sender.Send(BuildMessage(chatID, reply)); err != nil {
			h.logger.Error("TELEGRAM", "Failed to send message", map[string]interface{}{
				"chat_id": chatID,
				"error":   err.Error(),
			})
		}
	}
}

// BuildMessage renders a reply. Options become an inline keyboard carrying
// their tokens as callback data; ShowMenu attaches the main menu keyboard.
func BuildMessage(chatID int64, reply dto.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, reply.Text)

	switch {
	case len(reply.Options) > 0:
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reply.Options))
		for _, option := range reply.Options {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(option.Label, option.Token),
			))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	case reply.ShowMenu:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(response.Menu()))
		for _, row := range response.Menu() {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, label := range row {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
		}
		keyboard := tgbotapi.NewReplyKeyboard(rows...)
		keyboard.ResizeKeyboard = true
		msg.ReplyMarkup = keyboard
	}

	return msg
}

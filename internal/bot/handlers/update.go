package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/menus"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	responder       *responder
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	r := newResponder(api, deps, stateManager)
	return &UpdateHandler{
		responder:       r,
		callbackHandler: NewCallbackHandler(r),
		commandHandler:  NewCommandHandler(r),
		textHandler:     NewTextHandler(r),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	var from *tgbotapi.User
	var chatID int64

	switch {
	case update.Message != nil && update.Message.From != nil:
		from = update.Message.From
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		from = update.CallbackQuery.From
		chatID = update.CallbackQuery.Message.Chat.ID
	default:
		return nil
	}

	// Get or create user; the chat id is refreshed so reminders reach the latest chat
	user, err := h.responder.deps.UserService.RegisterUser(ctx, from.ID, chatID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		logger.Error("Error getting/creating user", "telegram_id", from.ID, "error", err)
		return fmt.Errorf("failed to get/create user: %w", err)
	}

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, user)
	}
	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message, user)
	}
	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message, user)
	}
	return h.responder.reply(chatID, "I only understand text and the menu buttons.")
}

package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/menus"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
)

const helpText = `Available commands:
/start - Show the main menu
/status - Which care reminders are due
/growth - Percentiles of the latest measurements
/stats - Today's summary (/stats week for 7 days)
/sleep - Start or stop a sleep session
/visits - Upcoming doctor visits
/profiles - Switch or create baby profiles
/ask <question> - Ask the assistant
/undo - Restore the last deleted entry
/help - Show this message

Use the menu buttons to log feedings, diapers, supplements and care.
Measurements are entered as "weight_g length_cm head_cm", 0 skips a value.
Example: "4200 54 37.5"`

// CommandHandler handles bot commands
type CommandHandler struct {
	*responder
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(r *responder) *CommandHandler {
	return &CommandHandler{responder: r}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	logger.Info("Handling command", "command", message.Command(), "user_id", user.ID)
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		h.resetConversation(user)
		return menus.SendMainMenu(h.api, chatID)
	case "help":
		return h.reply(chatID, helpText)
	case "status":
		return h.showStatus(ctx, chatID, user)
	case "growth":
		return h.showGrowth(ctx, chatID, user)
	case "stats":
		week := strings.EqualFold(strings.TrimSpace(message.CommandArguments()), "week")
		return h.showStats(ctx, chatID, user, week)
	case "sleep":
		return h.toggleSleep(ctx, chatID, user)
	case "visits":
		return h.showVisits(ctx, chatID, user)
	case "profiles":
		return h.showProfiles(ctx, chatID, user)
	case "undo":
		return h.undo(ctx, chatID, user)
	case "ask":
		question := strings.TrimSpace(message.CommandArguments())
		if question == "" {
			return h.prompt(chatID, user, state.WaitingForAIQuestion, "What would you like to ask?")
		}
		return h.ask(ctx, chatID, user, question)
	default:
		return h.reply(chatID, "Unknown command. Use /help to see the available commands.")
	}
}

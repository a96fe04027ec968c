package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/handlers"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
)

var _ domain.BotService = (*Bot)(nil)

// Bot receives Telegram updates and dispatches them to the handlers
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *handlers.UpdateHandler
}

// NewBot authorizes against the Telegram API
func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:     api,
		handler: handlers.NewUpdateHandler(api, deps, stateManager),
	}, nil
}

// API exposes the client so the reminder notifier can share it
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

// Start polls for updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.handler.Handle(ctx, update); err != nil {
				logger.Error("Error handling update", "update_id", update.UpdateID, "error", err)
			}
		}
	}
}

// Stop ends long polling
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

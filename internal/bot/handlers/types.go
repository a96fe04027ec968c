package handlers

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/menus"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/interfaces"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService        interfaces.UserServiceInterface
	ProfileService     interfaces.ProfileServiceInterface
	EntryService       interfaces.EntryServiceInterface
	MeasurementService interfaces.MeasurementServiceInterface
	VisitService       interfaces.VisitServiceInterface
	SleepService       interfaces.SleepServiceInterface
	GrowthService      interfaces.GrowthServiceInterface
	StatsService       interfaces.StatsServiceInterface
	ReminderService    interfaces.ReminderServiceInterface
	AIService          interfaces.AIServiceInterface
	// Location is the caregiver time zone used for entry times and calendar days
	Location *time.Location
}

// responder is shared by the command, callback and text handlers
type responder struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
	errors       *apperrors.Handler
	now          func() time.Time
}

func newResponder(api menus.Sender, deps Dependencies, stateManager state.StateManager) *responder {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &responder{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
		errors:       apperrors.NewHandler(logger.GetLogger()),
		now:          time.Now,
	}
}

// clock returns the current time in the caregiver time zone
func (r *responder) clock() time.Time {
	return r.now().In(r.deps.Location)
}

func (r *responder) reply(chatID int64, text string) error {
	return menus.Send(r.api, chatID, text, nil)
}

func (r *responder) replyWith(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	return menus.Send(r.api, chatID, text, &keyboard)
}

// fail logs err and tells the caregiver what went wrong
func (r *responder) fail(ctx context.Context, chatID int64, err error) error {
	r.errors.Handle(ctx, err)
	if errors.Is(err, apperrors.ErrNoActiveProfile) {
		return r.replyWith(chatID, apperrors.UserMessage(err), keyboards.NoProfileMenu())
	}
	return r.reply(chatID, apperrors.UserMessage(err))
}

// prompt switches the conversation to st and asks for input
func (r *responder) prompt(chatID int64, user *domain.User, st, text string) error {
	r.stateManager.SetUserState(user.TelegramID, st)
	return r.replyWith(chatID, text, keyboards.CancelMenu())
}

func (r *responder) resetConversation(user *domain.User) {
	r.stateManager.ClearUserState(user.TelegramID)
	r.stateManager.ClearTempData(user.TelegramID)
}

// logEntry stores e for the active profile at the current time and confirms it
func (r *responder) logEntry(ctx context.Context, chatID int64, user *domain.User, e domain.LogEntry) error {
	profile, err := r.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	e.ProfileID = profile.ID
	e.Timestamp = r.clock()
	if err := r.deps.EntryService.LogEntry(ctx, &e); err != nil {
		return r.fail(ctx, chatID, err)
	}
	return menus.SendEntryLogged(r.api, chatID, e, r.deps.Location)
}

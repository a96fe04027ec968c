package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/menus"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
)

// oneTapEvents maps a log button to the entry it records
var oneTapEvents = map[string]domain.LogEntry{
	keyboards.EventBreastfed:     {Breastfed: true},
	keyboards.EventStool:         {Stool: true},
	keyboards.EventUrination:     {Urination: true},
	keyboards.EventVomiting:      {Vomiting: true},
	keyboards.EventVitaminD:      {VitaminD: true},
	keyboards.EventVitaminC:      {VitaminC: true},
	keyboards.EventProbiotic:     {Probiotic: true},
	keyboards.EventAntiGas:       {AntiGas: true},
	keyboards.EventIron:          {Iron: true},
	keyboards.EventSterilization: {Sterilization: true},
	keyboards.EventBathing:       {Bathing: true},
}

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	*responder
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(r *responder) *CallbackHandler {
	return &CallbackHandler{responder: r}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *domain.User) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}
	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID
	data := query.Data

	switch {
	case data == keyboards.MainMenuData:
		h.resetConversation(user)
		return menus.SendMainMenu(h.api, chatID)
	case data == keyboards.FeedingMenuData:
		return h.replyWith(chatID, "🍼 What did the baby eat?", keyboards.FeedingMenu())
	case data == keyboards.DiaperMenuData:
		return h.replyWith(chatID, "🧷 What was in the diaper?", keyboards.DiaperMenu())
	case data == keyboards.SupplementsData:
		return h.replyWith(chatID, "💊 What was given?", keyboards.SupplementsMenu())
	case data == keyboards.CareMenuData:
		return h.replyWith(chatID, "🛁 What did you do?", keyboards.CareMenu())
	case data == keyboards.SettingsData:
		return menus.SendSettingsMenu(h.api, chatID, user.BabySex)
	case data == keyboards.StatusData:
		return h.showStatus(ctx, chatID, user)
	case data == keyboards.GrowthData:
		return h.showGrowth(ctx, chatID, user)
	case data == keyboards.StatsData:
		return h.showStats(ctx, chatID, user, false)
	case data == keyboards.SleepData:
		return h.toggleSleep(ctx, chatID, user)
	case data == keyboards.ProfilesData:
		return h.showProfiles(ctx, chatID, user)
	case data == keyboards.UndoData:
		return h.undo(ctx, chatID, user)
	case data == keyboards.NewProfileData:
		h.stateManager.ClearTempData(user.TelegramID)
		return h.prompt(chatID, user, state.WaitingForProfileName, "What is the baby's name?")
	case data == keyboards.AskBreastMilkData:
		return h.prompt(chatID, user, state.WaitingForBreastMilkMl, "How many ml of breast milk? (e.g. 90)")
	case data == keyboards.AskFormulaData:
		return h.prompt(chatID, user, state.WaitingForFormulaMl, "How many ml of formula? (e.g. 90)")
	case data == keyboards.AskTummyData:
		return h.prompt(chatID, user, state.WaitingForTummyMinutes, "How many minutes of tummy time? (e.g. 5 or 2.5)")
	case data == keyboards.MeasurementData:
		return h.prompt(chatID, user, state.WaitingForMeasurement,
			"Enter weight in grams, length in cm and head circumference in cm separated by spaces.\n0 skips a value, e.g. \"4200 54 0\".")
	case data == keyboards.VisitData:
		return h.prompt(chatID, user, state.WaitingForVisit,
			"Enter the visit as \"YYYY-MM-DD HH:MM; doctor; reason\".\nExample: \"2024-07-01 10:30; Dr. Grey; 2 month checkup\"")
	case strings.HasPrefix(data, keyboards.LogPrefix):
		return h.handleOneTap(ctx, chatID, user, strings.TrimPrefix(data, keyboards.LogPrefix))
	case strings.HasPrefix(data, keyboards.DeletePrefix):
		return h.handleDelete(ctx, chatID, user, strings.TrimPrefix(data, keyboards.DeletePrefix))
	case strings.HasPrefix(data, keyboards.NotePrefix):
		h.stateManager.SetTempData(user.TelegramID, state.KeyEntryID, strings.TrimPrefix(data, keyboards.NotePrefix))
		return h.prompt(chatID, user, state.WaitingForEntryNoteEdit, "Send the note for this entry.")
	case strings.HasPrefix(data, keyboards.ProfilePrefix):
		return h.handleSelectProfile(ctx, chatID, user, strings.TrimPrefix(data, keyboards.ProfilePrefix))
	case strings.HasPrefix(data, keyboards.SexPrefix):
		return h.handleSex(ctx, chatID, user, domain.Sex(strings.TrimPrefix(data, keyboards.SexPrefix)))
	default:
		return h.reply(chatID, "Unknown action")
	}
}

func (h *CallbackHandler) handleOneTap(ctx context.Context, chatID int64, user *domain.User, event string) error {
	entry, ok := oneTapEvents[event]
	if !ok {
		return h.reply(chatID, "Unknown action")
	}
	return h.logEntry(ctx, chatID, user, entry)
}

func (h *CallbackHandler) handleDelete(ctx context.Context, chatID int64, user *domain.User, entryID string) error {
	profile, err := h.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return h.fail(ctx, chatID, err)
	}
	deleted, err := h.deps.EntryService.DeleteEntry(ctx, user.TelegramID, profile.ID, entryID)
	if err != nil {
		return h.fail(ctx, chatID, err)
	}
	text := fmt.Sprintf("🗑️ Deleted: %s", menus.DescribeEntry(*deleted))
	return h.replyWith(chatID, text, keyboards.UndoMenu())
}

// undo restores the entry deleted last, while the undo window is open
func (r *responder) undo(ctx context.Context, chatID int64, user *domain.User) error {
	restored, err := r.deps.EntryService.Undo(ctx, user.TelegramID)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	text := fmt.Sprintf("↩️ Restored: %s at %s", menus.DescribeEntry(*restored), restored.Timestamp.In(r.deps.Location).Format("15:04"))
	return r.replyWith(chatID, text, keyboards.EntryActions(restored.ID))
}

func (h *CallbackHandler) handleSelectProfile(ctx context.Context, chatID int64, user *domain.User, profileID string) error {
	profile, err := h.deps.ProfileService.SelectProfile(ctx, user, profileID)
	if err != nil {
		return h.fail(ctx, chatID, err)
	}
	if err := h.reply(chatID, fmt.Sprintf("✅ Now logging for %s", profile.Name)); err != nil {
		return err
	}
	return menus.SendMainMenu(h.api, chatID)
}

func (h *CallbackHandler) handleSex(ctx context.Context, chatID int64, user *domain.User, sex domain.Sex) error {
	if err := h.deps.UserService.SetBabySex(ctx, user, sex); err != nil {
		return h.fail(ctx, chatID, err)
	}
	label := "boys"
	if sex == domain.SexFemale {
		label = "girls"
	}
	return h.replyWith(chatID, fmt.Sprintf("✅ Growth reports now use the WHO tables for %s.", label), keyboards.MainMenu())
}

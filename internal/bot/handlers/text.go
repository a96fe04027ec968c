package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/menus"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

const (
	maxFeedingMl    = 500
	maxTummyMinutes = 180
	maxNoteLen      = 500
)

// TextHandler handles text messages
type TextHandler struct {
	*responder
}

// NewTextHandler creates a new text handler
func NewTextHandler(r *responder) *TextHandler {
	return &TextHandler{responder: r}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	text := strings.TrimSpace(message.Text)
	chatID := message.Chat.ID

	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingForBreastMilkMl:
		return h.handleVolume(ctx, chatID, user, text, func(e *domain.LogEntry, ml float64) { e.BreastMilkMl = ml })
	case state.WaitingForFormulaMl:
		return h.handleVolume(ctx, chatID, user, text, func(e *domain.LogEntry, ml float64) { e.FormulaMl = ml })
	case state.WaitingForTummyMinutes:
		return h.handleTummyTime(ctx, chatID, user, text)
	case state.WaitingForMeasurement:
		return h.handleMeasurement(ctx, chatID, user, text)
	case state.WaitingForProfileName:
		return h.handleProfileName(chatID, user, text)
	case state.WaitingForBirthDate:
		return h.handleBirthDate(ctx, chatID, user, text)
	case state.WaitingForVisit:
		return h.handleVisit(ctx, chatID, user, text)
	case state.WaitingForAIQuestion:
		return h.ask(ctx, chatID, user, text)
	case state.WaitingForEntryNoteEdit:
		return h.handleNote(ctx, chatID, user, text)
	default:
		return h.handleDefaultText(chatID)
	}
}

// parseNumber accepts both "2.5" and "2,5"
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
}

func (h *TextHandler) handleVolume(ctx context.Context, chatID int64, user *domain.User, text string, set func(*domain.LogEntry, float64)) error {
	ml, err := parseNumber(text)
	if err != nil || ml <= 0 || ml > maxFeedingMl {
		return h.reply(chatID, fmt.Sprintf("Please enter the amount in ml, a number between 1 and %d (e.g. 90)", maxFeedingMl))
	}
	var entry domain.LogEntry
	set(&entry, ml)
	h.resetConversation(user)
	return h.logEntry(ctx, chatID, user, entry)
}

func (h *TextHandler) handleTummyTime(ctx context.Context, chatID int64, user *domain.User, text string) error {
	minutes, err := parseNumber(text)
	if err != nil || minutes <= 0 || minutes > maxTummyMinutes {
		return h.reply(chatID, fmt.Sprintf("Please enter minutes, a number between 1 and %d (e.g. 5 or 2.5)", maxTummyMinutes))
	}
	entry := domain.LogEntry{TummyTime: true, TummyTimeSeconds: int(minutes * 60)}
	h.resetConversation(user)
	return h.logEntry(ctx, chatID, user, entry)
}

func (h *TextHandler) handleMeasurement(ctx context.Context, chatID int64, user *domain.User, text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 3 {
		return h.reply(chatID, "Please send up to three numbers: weight_g length_cm head_cm (e.g. \"4200 54 37.5\")")
	}
	values := make([]float64, 3)
	for i, f := range fields {
		v, err := parseNumber(f)
		if err != nil {
			return h.reply(chatID, fmt.Sprintf("%q is not a number. Use 0 to skip a value.", f))
		}
		values[i] = v
	}

	profile, err := h.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return h.fail(ctx, chatID, err)
	}
	m := &domain.Measurement{
		ProfileID:  profile.ID,
		MeasuredAt: h.clock(),
		WeightG:    values[0],
		HeightCm:   values[1],
		HeadCm:     values[2],
	}
	if err := h.deps.MeasurementService.Record(ctx, m); err != nil {
		return h.fail(ctx, chatID, err)
	}
	h.resetConversation(user)
	if err := h.reply(chatID, "✅ Measurement saved"); err != nil {
		return err
	}
	return h.showGrowth(ctx, chatID, user)
}

func (h *TextHandler) handleProfileName(chatID int64, user *domain.User, name string) error {
	if name == "" {
		return h.reply(chatID, "Please send the baby's name.")
	}
	h.stateManager.SetTempData(user.TelegramID, state.KeyProfileName, name)
	return h.prompt(chatID, user, state.WaitingForBirthDate,
		fmt.Sprintf("When was %s born? Send \"YYYY-MM-DD\" or \"YYYY-MM-DD HH:MM\".", name))
}

func (h *TextHandler) handleBirthDate(ctx context.Context, chatID int64, user *domain.User, text string) error {
	name, ok := h.stateManager.GetTempData(user.TelegramID, state.KeyProfileName)
	if !ok {
		h.resetConversation(user)
		return h.replyWith(chatID, "Let's start over. Tap 'New profile'.", keyboards.NoProfileMenu())
	}

	datePart, timePart, _ := strings.Cut(text, " ")
	birthDate, err := time.ParseInLocation("2006-01-02", datePart, h.deps.Location)
	if err != nil {
		return h.reply(chatID, "Please send the date as YYYY-MM-DD, e.g. 2024-05-17")
	}
	timePart = strings.TrimSpace(timePart)

	profile, err := h.deps.ProfileService.CreateProfile(ctx, user, name, birthDate, timePart)
	if err != nil {
		return h.fail(ctx, chatID, err)
	}
	h.resetConversation(user)
	if err := h.reply(chatID, fmt.Sprintf("🎉 Profile %s created, %s old.", profile.Name,
		menus.FormatAge(birthDate, h.clock()))); err != nil {
		return err
	}
	return menus.SendMainMenu(h.api, chatID)
}

// handleVisit parses "YYYY-MM-DD[ HH:MM]; doctor; reason"
func (h *TextHandler) handleVisit(ctx context.Context, chatID int64, user *domain.User, text string) error {
	parts := strings.SplitN(text, ";", 3)
	if len(parts) < 2 {
		return h.reply(chatID, "Please use \"YYYY-MM-DD HH:MM; doctor; reason\"")
	}
	when := strings.TrimSpace(parts[0])
	layout := "2006-01-02 15:04"
	if !strings.Contains(when, ":") {
		layout = "2006-01-02"
	}
	visitedAt, err := time.ParseInLocation(layout, when, h.deps.Location)
	if err != nil {
		return h.reply(chatID, "The date should look like 2024-07-01 or 2024-07-01 10:30")
	}

	profile, err := h.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return h.fail(ctx, chatID, err)
	}
	visit := &domain.DoctorVisit{ProfileID: profile.ID, VisitedAt: visitedAt, Doctor: parts[1]}
	if len(parts) == 3 {
		visit.Reason = parts[2]
	}
	if err := h.deps.VisitService.Record(ctx, visit); err != nil {
		return h.fail(ctx, chatID, err)
	}
	h.resetConversation(user)
	return h.reply(chatID, fmt.Sprintf("🩺 Visit to %s saved for %s", visit.Doctor, visitedAt.Format("2006-01-02 15:04")))
}

func (h *TextHandler) handleNote(ctx context.Context, chatID int64, user *domain.User, note string) error {
	if len([]rune(note)) > maxNoteLen {
		return h.reply(chatID, fmt.Sprintf("The note is too long, keep it under %d characters.", maxNoteLen))
	}
	entryID, ok := h.stateManager.GetTempData(user.TelegramID, state.KeyEntryID)
	if !ok {
		h.resetConversation(user)
		return h.handleDefaultText(chatID)
	}
	profile, err := h.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return h.fail(ctx, chatID, err)
	}
	entry, err := h.deps.EntryService.GetEntry(ctx, profile.ID, entryID)
	if err != nil {
		h.resetConversation(user)
		return h.fail(ctx, chatID, err)
	}
	entry.Notes = note
	if err := h.deps.EntryService.UpdateEntry(ctx, entry); err != nil {
		return h.fail(ctx, chatID, err)
	}
	h.resetConversation(user)
	return h.replyWith(chatID, "📝 Note saved\n"+menus.DescribeEntry(*entry), keyboards.EntryActions(entry.ID))
}

// handleDefaultText handles text when no specific state is set
func (h *TextHandler) handleDefaultText(chatID int64) error {
	return h.replyWith(chatID, "Please use the menu to choose an action.", keyboards.MainMenu())
}

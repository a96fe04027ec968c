package handlers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/database"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
	"github.com/vladimiradmaev/babycare-helper/internal/repository"
	"github.com/vladimiradmaev/babycare-helper/internal/services"
)

const (
	telegramID = int64(42)
	chatID     = int64(4200)
)

type fakeSender struct {
	sent     []tgbotapi.Chattable
	requests int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	require.NotEmpty(t, f.sent)
	msg, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok, "expected a text message")
	return msg
}

// lastButtonData returns the callback data of every inline button of the last message
func (f *fakeSender) lastButtonData(t *testing.T) []string {
	t.Helper()
	markup, ok := f.last(t).ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "expected an inline keyboard")
	var data []string
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil {
				data = append(data, *b.CallbackData)
			}
		}
	}
	return data
}

type harness struct {
	handler *UpdateHandler
	sender  *fakeSender
	users   *services.UserService
	state   *state.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	sleepService := services.NewSleepService(repository.NewSleepRepository(db))
	st := state.NewManager()
	ai, err := services.NewAIService(context.Background(), "", "")
	require.NoError(t, err)

	users := services.NewUserService(userRepo)
	deps := Dependencies{
		UserService:        users,
		ProfileService:     services.NewProfileService(repository.NewProfileRepository(db), userRepo),
		EntryService:       services.NewEntryService(entryRepo, st, time.Minute),
		MeasurementService: services.NewMeasurementService(measurementRepo),
		VisitService:       services.NewVisitService(repository.NewVisitRepository(db)),
		SleepService:       sleepService,
		GrowthService:      services.NewGrowthService(measurementRepo),
		StatsService:       services.NewStatsService(entryRepo, sleepService),
		ReminderService:    services.NewReminderService(reminders.NewEngine(reminders.DefaultConfig(), reminders.IronDosingConfig(0, time.Time{})), entryRepo, time.UTC),
		AIService:          ai,
		Location:           time.UTC,
	}
	sender := &fakeSender{}
	return &harness{
		handler: NewUpdateHandler(sender, deps, st),
		sender:  sender,
		users:   users,
		state:   st,
	}
}

func (h *harness) command(t *testing.T, text string) {
	t.Helper()
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	msg := &tgbotapi.Message{
		From:     &tgbotapi.User{ID: telegramID, UserName: "ada"},
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}
	require.NoError(t, h.handler.Handle(context.Background(), tgbotapi.Update{Message: msg}))
}

func (h *harness) text(t *testing.T, text string) {
	t.Helper()
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: telegramID, UserName: "ada"},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
	require.NoError(t, h.handler.Handle(context.Background(), tgbotapi.Update{Message: msg}))
}

func (h *harness) tap(t *testing.T, data string) {
	t.Helper()
	query := &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: telegramID, UserName: "ada"},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}
	require.NoError(t, h.handler.Handle(context.Background(), tgbotapi.Update{CallbackQuery: query}))
}

func (h *harness) createProfile(t *testing.T) {
	t.Helper()
	h.tap(t, keyboards.NewProfileData)
	h.text(t, "Ada")
	h.text(t, "2024-05-17 06:30")
}

func TestStartShowsMainMenu(t *testing.T) {
	h := newHarness(t)
	h.command(t, "/start")

	msg := h.sender.last(t)
	assert.Equal(t, chatID, msg.ChatID)
	assert.Equal(t, "Markdown", msg.ParseMode)
	assert.Contains(t, h.sender.lastButtonData(t), keyboards.FeedingMenuData)

	user, err := h.users.GetUserByTelegramID(context.Background(), telegramID)
	require.NoError(t, err)
	assert.Equal(t, chatID, user.ChatID)
}

func TestLoggingRequiresProfile(t *testing.T) {
	h := newHarness(t)
	h.tap(t, keyboards.LogPrefix+keyboards.EventStool)

	assert.Equal(t, "Create or select a baby profile first", h.sender.last(t).Text)
	assert.Equal(t, []string{keyboards.NewProfileData}, h.sender.lastButtonData(t))
	assert.Equal(t, 1, h.sender.requests, "callback must be answered")
}

func TestProfileCreationFlow(t *testing.T) {
	h := newHarness(t)
	h.tap(t, keyboards.NewProfileData)
	assert.Equal(t, state.WaitingForProfileName, h.state.GetUserState(telegramID))

	h.text(t, "Ada")
	assert.Equal(t, state.WaitingForBirthDate, h.state.GetUserState(telegramID))

	h.text(t, "17/05/2024")
	assert.Contains(t, h.sender.last(t).Text, "YYYY-MM-DD")
	assert.Equal(t, state.WaitingForBirthDate, h.state.GetUserState(telegramID))

	h.text(t, "2024-05-17 06:30")
	require.GreaterOrEqual(t, len(h.sender.sent), 2)
	created := h.sender.sent[len(h.sender.sent)-2].(tgbotapi.MessageConfig)
	assert.Contains(t, created.Text, "Profile Ada created")
	assert.Equal(t, state.None, h.state.GetUserState(telegramID))

	h.command(t, "/profiles")
	assert.Contains(t, h.sender.last(t).Text, "Ada, born 2024-05-17")
}

func TestLogDeleteUndo(t *testing.T) {
	h := newHarness(t)
	h.createProfile(t)

	h.tap(t, keyboards.LogPrefix+keyboards.EventStool)
	logged := h.sender.last(t)
	assert.Contains(t, logged.Text, "✅ Logged at")
	assert.Contains(t, logged.Text, "💩 Stool")

	var deleteData string
	for _, d := range h.sender.lastButtonData(t) {
		if len(d) > len(keyboards.DeletePrefix) && d[:len(keyboards.DeletePrefix)] == keyboards.DeletePrefix {
			deleteData = d
		}
	}
	require.NotEmpty(t, deleteData)

	h.tap(t, deleteData)
	assert.Contains(t, h.sender.last(t).Text, "🗑️ Deleted: 💩 Stool")
	assert.Contains(t, h.sender.lastButtonData(t), keyboards.UndoData)

	h.tap(t, keyboards.UndoData)
	assert.Contains(t, h.sender.last(t).Text, "↩️ Restored: 💩 Stool")

	h.command(t, "/undo")
	assert.Equal(t, "It is too late to undo this deletion", h.sender.last(t).Text)
}

func TestFormulaVolumeFlow(t *testing.T) {
	h := newHarness(t)
	h.createProfile(t)

	h.tap(t, keyboards.AskFormulaData)
	assert.Equal(t, state.WaitingForFormulaMl, h.state.GetUserState(telegramID))

	h.text(t, "lots")
	assert.Contains(t, h.sender.last(t).Text, "amount in ml")
	assert.Equal(t, state.WaitingForFormulaMl, h.state.GetUserState(telegramID))

	h.text(t, "90")
	assert.Contains(t, h.sender.last(t).Text, "🥛 Formula 90 ml")
	assert.Equal(t, state.None, h.state.GetUserState(telegramID))

	h.command(t, "/stats")
	assert.Contains(t, h.sender.last(t).Text, "Feedings: 1")
}

func TestTummyTimeAndNote(t *testing.T) {
	h := newHarness(t)
	h.createProfile(t)

	h.tap(t, keyboards.AskTummyData)
	h.text(t, "2,5")
	assert.Contains(t, h.sender.last(t).Text, "🐢 Tummy time 2 min")

	var noteData string
	for _, d := range h.sender.lastButtonData(t) {
		if len(d) > len(keyboards.NotePrefix) && d[:len(keyboards.NotePrefix)] == keyboards.NotePrefix {
			noteData = d
		}
	}
	require.NotEmpty(t, noteData)

	h.tap(t, noteData)
	assert.Equal(t, state.WaitingForEntryNoteEdit, h.state.GetUserState(telegramID))
	h.text(t, "happy on the play mat")
	assert.Contains(t, h.sender.last(t).Text, "📝 Note saved")
	assert.Contains(t, h.sender.last(t).Text, "happy on the play mat")
}

func TestMeasurementShowsGrowth(t *testing.T) {
	h := newHarness(t)
	h.createProfile(t)
	h.tap(t, keyboards.SexPrefix+string(domain.SexFemale))

	user, err := h.users.GetUserByTelegramID(context.Background(), telegramID)
	require.NoError(t, err)
	assert.Equal(t, domain.SexFemale, user.BabySex)

	h.tap(t, keyboards.MeasurementData)
	h.text(t, "4200 abc")
	assert.Contains(t, h.sender.last(t).Text, "is not a number")

	h.text(t, "4200 54 0")
	report := h.sender.last(t).Text
	assert.Contains(t, report, "girls tables")
	assert.Contains(t, report, "⚖️ Weight: 4.20 kg")
	assert.Contains(t, report, "🧠 Head: not measured yet")
}

func TestStatusAndSleep(t *testing.T) {
	h := newHarness(t)
	h.createProfile(t)

	h.command(t, "/status")
	status := h.sender.last(t).Text
	assert.Contains(t, status, "📋 Ada today")
	assert.Contains(t, status, "⏰ Feeding: No feeding recorded yet")

	h.command(t, "/sleep")
	assert.Contains(t, h.sender.last(t).Text, "fell asleep")
	h.tap(t, keyboards.SleepData)
	assert.Contains(t, h.sender.last(t).Text, "woke up")
}

func TestVisitFlow(t *testing.T) {
	h := newHarness(t)
	h.createProfile(t)

	next := time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02")
	h.tap(t, keyboards.VisitData)
	h.text(t, next+" 10:30; Dr. Grey; checkup")
	assert.Contains(t, h.sender.last(t).Text, "Visit to Dr. Grey saved")

	h.command(t, "/visits")
	assert.Contains(t, h.sender.last(t).Text, next+" 10:30, Dr. Grey (checkup)")
}

func TestAskWithoutAssistant(t *testing.T) {
	h := newHarness(t)
	h.command(t, "/ask how much should she eat?")
	assert.Equal(t, "The assistant is not configured on this bot.", h.sender.last(t).Text)

	h.command(t, "/ask")
	assert.Equal(t, state.WaitingForAIQuestion, h.state.GetUserState(telegramID))
}

func TestUnknownInput(t *testing.T) {
	h := newHarness(t)
	h.command(t, "/dance")
	assert.Contains(t, h.sender.last(t).Text, "Unknown command")

	h.text(t, "hello")
	assert.Equal(t, "Please use the menu to choose an action.", h.sender.last(t).Text)

	h.tap(t, "log:nonsense")
	assert.Equal(t, "Unknown action", h.sender.last(t).Text)
}

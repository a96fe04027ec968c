package bot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

type recordingSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if s.err != nil {
		return tgbotapi.Message{}, s.err
	}
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, nil
}

func (s *recordingSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func TestNotifierSendsTitleAndBody(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender)

	err := n.Notify(context.Background(), domain.Notification{
		ChatID: 7, Title: "🍼 Time to feed", Body: "Ada: Last feeding 2h 10m ago at 09:00.", Tag: "feeding:p1:7",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, int64(7), msg.ChatID)
	assert.Equal(t, "🍼 Time to feed\nAda: Last feeding 2h 10m ago at 09:00.", msg.Text)
	assert.IsType(t, tgbotapi.InlineKeyboardMarkup{}, msg.ReplyMarkup)
}

func TestNotifierErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("forbidden: bot was blocked by the user")}
	n := NewNotifier(sender)

	err := n.Notify(context.Background(), domain.Notification{ChatID: 7, Title: "x", Tag: "dosing:p1:7"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dosing:p1:7")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sender.err = nil
	assert.ErrorIs(t, n.Notify(ctx, domain.Notification{ChatID: 7, Title: "x"}), context.Canceled)
	assert.Empty(t, sender.sent)
}

package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/menus"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

var _ domain.Notifier = (*Notifier)(nil)

// Notifier delivers reminder notifications as chat messages
type Notifier struct {
	api menus.Sender
}

func NewNotifier(api menus.Sender) *Notifier {
	return &Notifier{api: api}
}

// Notify sends the title and body with the main menu so the caregiver can log right away
func (n *Notifier) Notify(ctx context.Context, msg domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := msg.Title
	if msg.Body != "" {
		text += "\n" + msg.Body
	}
	m := tgbotapi.NewMessage(msg.ChatID, text)
	m.ReplyMarkup = keyboards.MainMenu()
	if _, err := n.api.Send(m); err != nil {
		return fmt.Errorf("failed to send notification %s: %w", msg.Tag, err)
	}
	return nil
}

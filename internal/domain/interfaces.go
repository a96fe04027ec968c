package domain

import (
	"context"
)

// Notification is a push request. Tag deduplicates repeated requests.
type Notification struct {
	ChatID int64
	Title  string
	Body   string
	Tag    string
}

// Notifier delivers notifications to a caregiver
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// BotService handles telegram bot operations
type BotService interface {
	Start(ctx context.Context) error
	Stop()
}

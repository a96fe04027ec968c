package errors

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundMatchesSentinel(t *testing.T) {
	err := NewNotFoundError(ErrProfileNotFound, "abc")

	assert.True(t, stderrors.Is(err, ErrProfileNotFound))
	assert.False(t, stderrors.Is(err, ErrEntryNotFound))
	assert.Equal(t, "abc", err.Context["id"])

	wrapped := fmt.Errorf("loading status: %w", err)
	assert.True(t, stderrors.Is(wrapped, ErrProfileNotFound))
}

func TestWrapUnwrapsInternal(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewDatabaseError(cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotEmpty(t, err.Source)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Create or select a baby profile first", UserMessage(ErrNoActiveProfile))
	assert.Equal(t, "Volume must not be negative", UserMessage(NewValidationError("Volume must not be negative")))
	assert.Contains(t, UserMessage(NewTimeoutError("gemini")), "busy")
	assert.Contains(t, UserMessage(NewDatabaseError(stderrors.New("x"))), "saving")
	assert.Contains(t, UserMessage(stderrors.New("plain")), "Something went wrong")
	assert.Equal(t, "Log entry not found", UserMessage(NewNotFoundError(ErrEntryNotFound, "e1")))
	assert.Contains(t, UserMessage(New(ErrorType("mystery"), "X", "secret detail")), "Something went wrong")
}

func TestHandlerLogsBySeverity(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	h.Handle(context.Background(), NewValidationError("bad volume"))
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	h.Handle(context.Background(), NewDatabaseError(stderrors.New("boom")))
	assert.Contains(t, buf.String(), "level=ERROR")

	buf.Reset()
	h.Handle(context.Background(), nil)
	assert.Empty(t, buf.String())
}

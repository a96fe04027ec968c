package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType classifies an AppError for logging and for the reply shown in chat
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeInternal   ErrorType = "internal"
)

// policy decides how an error type is logged and what the caregiver sees.
// An empty reply means the error's own Message is safe to show.
type policy struct {
	level  slog.Level
	logMsg string
	reply  string
}

const (
	replyBusy    = "The service is busy right now. Please try again in a few minutes."
	replySaving  = "Something went wrong while saving. Please try again."
	replyGeneric = "Something went wrong. Please try again."
)

var policies = map[ErrorType]policy{
	ErrorTypeValidation: {level: slog.LevelWarn, logMsg: "Rejected input"},
	ErrorTypeNotFound:   {level: slog.LevelInfo, logMsg: "Record not found"},
	ErrorTypeDatabase:   {level: slog.LevelError, logMsg: "Storage failure", reply: replySaving},
	ErrorTypeExternal:   {level: slog.LevelError, logMsg: "Assistant provider failure", reply: replyBusy},
	ErrorTypeTimeout:    {level: slog.LevelError, logMsg: "Operation timed out", reply: replyBusy},
	ErrorTypeInternal:   {level: slog.LevelError, logMsg: "Internal error", reply: replySaving},
}

func policyFor(t ErrorType) policy {
	if p, ok := policies[t]; ok {
		return p
	}
	return policy{level: slog.LevelError, logMsg: "Unknown error type", reply: replyGeneric}
}

// AppError carries a stable code, a caregiver-safe message and the underlying cause
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]any
	Source   string
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches another AppError by type and code, so sentinels survive re-creation
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext attaches a key/value that is logged with the error
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// LogFields returns the error as slog key/value pairs
func (e *AppError) LogFields() []any {
	fields := []any{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}
	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}
	for k, v := range e.Context {
		fields = append(fields, k, v)
	}
	return fields
}

// caller reports the file:line of whoever called New or Wrap
func caller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s:%d", file, line)
}

func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  caller(),
		Context: make(map[string]any),
	}
}

func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   caller(),
		Context:  make(map[string]any),
	}
}

// Handler logs errors at the level their type calls for
type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle logs err. A nil err is ignored.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
		return
	}
	p := policyFor(appErr.Type)
	h.logger.Log(ctx, p.level, p.logMsg, appErr.LogFields()...)
}

// UserMessage returns the text to show the caregiver for err
func UserMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return replyGeneric
	}
	if reply := policyFor(appErr.Type).reply; reply != "" {
		return reply
	}
	return appErr.Message
}

// Sentinels compared with errors.Is
var (
	ErrInvalidEntry    = New(ErrorTypeValidation, "INVALID_ENTRY", "An entry must record at least one event")
	ErrNoActiveProfile = New(ErrorTypeValidation, "NO_ACTIVE_PROFILE", "Create or select a baby profile first")
	ErrUndoExpired     = New(ErrorTypeValidation, "UNDO_EXPIRED", "It is too late to undo this deletion")
	ErrUserNotFound    = New(ErrorTypeNotFound, "USER_NOT_FOUND", "User not found")
	ErrProfileNotFound = New(ErrorTypeNotFound, "PROFILE_NOT_FOUND", "Baby profile not found")
	ErrEntryNotFound   = New(ErrorTypeNotFound, "ENTRY_NOT_FOUND", "Log entry not found")

	ErrMeasurementNotFound = New(ErrorTypeNotFound, "MEASUREMENT_NOT_FOUND", "Measurement not found")
)

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "VALIDATION", message)
}

// NewNotFoundError builds an error matching sentinel (by type and code) with the record id attached.
func NewNotFoundError(sentinel *AppError, id string) *AppError {
	return New(ErrorTypeNotFound, sentinel.Code, sentinel.Message).WithContext("id", id)
}

func NewDatabaseError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
}

func NewExternalAPIError(err error, api string) *AppError {
	return Wrap(err, ErrorTypeExternal, "EXTERNAL_API", fmt.Sprintf("%s API error", api)).
		WithContext("api", api)
}

func NewTimeoutError(operation string) *AppError {
	return New(ErrorTypeTimeout, "TIMEOUT", fmt.Sprintf("%s operation timed out", operation)).
		WithContext("operation", operation)
}

func NewInternalError(err error) *AppError {
	return Wrap(err, ErrorTypeInternal, "INTERNAL", "Internal server error")
}

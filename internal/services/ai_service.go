package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	apperrors "github.com/vladimiradmaev/babycare-helper/internal/errors"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
	"github.com/vladimiradmaev/babycare-helper/internal/metrics"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
	"google.golang.org/api/option"
)

const (
	geminiModel    = "gemini-1.5-flash"
	aiTimeout      = 30 * time.Second
	maxQuestionLen = 1000
)

const assistantPrompt = `You are a calm, practical assistant for parents of an infant under two years old.

REQUIREMENTS:
- Answer in plain English, in at most 6 short sentences
- Use the care log summary below when it is relevant
- You are not a doctor: for fever, breathing problems, dehydration, or anything urgent, tell the parent to contact a pediatrician or emergency services
- Never invent measurements or events that are not in the summary
- Do not use markdown headings`

// chatProvider is one LLM backend able to answer a single-turn question
type chatProvider interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type geminiProvider struct {
	client *genai.Client
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	model := p.client.GenerativeModel(geminiModel)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

type openAIProvider struct {
	client *openai.Client
}

func (p *openAIProvider) Name() string { return "openai" }

func (p *openAIProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// AIService answers caregiver questions, trying Gemini first and OpenAI second
type AIService struct {
	providers []chatProvider
	closers   []func() error
}

// NewAIService creates the providers whose keys are set. With no keys the service is disabled.
func NewAIService(ctx context.Context, geminiAPIKey, openaiAPIKey string) (*AIService, error) {
	s := &AIService{}
	if geminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(geminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.providers = append(s.providers, &geminiProvider{client: client})
		s.closers = append(s.closers, client.Close)
	}
	if openaiAPIKey != "" {
		s.providers = append(s.providers, &openAIProvider{client: openai.NewClient(openaiAPIKey)})
	}
	return s, nil
}

// Enabled reports whether any provider is configured
func (s *AIService) Enabled() bool {
	return s != nil && len(s.providers) > 0
}

// Ask answers question using the care summary as context
func (s *AIService) Ask(ctx context.Context, question, careSummary string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", apperrors.NewValidationError("Ask a question after /ask, for example: /ask is 90 ml enough at 3 weeks?")
	}
	if len([]rune(question)) > maxQuestionLen {
		return "", apperrors.NewValidationError("The question is too long")
	}
	if !s.Enabled() {
		return "", apperrors.NewValidationError("The assistant is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	prompt := fmt.Sprintf("CARE LOG SUMMARY:\n%s\n\nQUESTION:\n%s", careSummary, question)
	var lastErr error
	for _, p := range s.providers {
		answer, err := p.Complete(ctx, assistantPrompt, prompt)
		answer = strings.TrimSpace(answer)
		if err == nil && answer != "" {
			metrics.AIRequests.WithLabelValues(p.Name(), "ok").Inc()
			return answer, nil
		}
		if err == nil {
			err = errors.New("empty answer")
		}
		metrics.AIRequests.WithLabelValues(p.Name(), "error").Inc()
		logger.Warn("Assistant provider failed", "provider", p.Name(), "error", err)
		lastErr = err
		if ctx.Err() != nil {
			return "", apperrors.NewTimeoutError("assistant")
		}
	}
	return "", apperrors.NewExternalAPIError(lastErr, "assistant")
}

// Close releases the provider clients
func (s *AIService) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// CareSummary renders reminder statuses as the plain-text context for Ask
func CareSummary(profileName string, ageWeeks int, statuses []reminders.Status) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Baby: %s, %d weeks old\n", profileName, ageWeeks)
	for _, st := range statuses {
		due := ""
		if st.Due {
			due = " (due)"
		}
		fmt.Fprintf(&sb, "- %s: %s; target: %s%s\n", st.Title, st.CurrentStatus, st.TargetDescription, due)
	}
	return strings.TrimSpace(sb.String())
}

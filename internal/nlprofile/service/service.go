// Package service extracts a structured system profile from a free-text
// description using a chat-completion model. The model's output is never
// trusted directly: it always passes through the same normalization the
// classify endpoint applies, so a hallucinated flag name or mistyped value
// surfaces as a warning or validation error, not a silent misclassification.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"regent/internal/classification/engine"
	dErrors "regent/pkg/domain-errors"
	"regent/pkg/platform/audit"
	"regent/pkg/platform/circuit"
	"regent/pkg/requestcontext"
)

// AuditEmitter records compliance events. Implemented by audit.Publisher.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// CompletionClient is the slice of the OpenAI client the extractor needs.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const systemPrompt = `You translate descriptions of AI systems into a JSON object for a regulatory
risk screening. Respond with JSON only, no prose, using this shape:
{"role": "provider|deployer|provider_and_deployer|importer|distributor",
 "institution_type": "bank|insurer|payment_provider|asset_manager|crypto_provider|other",
 "use_case_id": "",
 "profile": {"<flag_name>": true}}
Only include profile flags you are confident about, with boolean values.`

// Extracted is the structured profile pulled from a description, after
// normalization. Warnings carry everything the normalizer flagged, including
// unknown flag names the model invented.
type Extracted struct {
	Role            string         `json:"role"`
	InstitutionType string         `json:"institution_type,omitempty"`
	UseCaseID       string         `json:"use_case_id,omitempty"`
	Profile         map[string]any `json:"profile"`
	Warnings        []string       `json:"warnings,omitempty"`
}

type Service struct {
	client  CompletionClient
	model   string
	breaker *circuit.Breaker
	auditor AuditEmitter
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithAuditEmitter enables audit-trail emission.
func WithAuditEmitter(a AuditEmitter) Option {
	return func(s *Service) { s.auditor = a }
}

func NewService(client CompletionClient, model string, logger *slog.Logger, opts ...Option) *Service {
	if model == "" {
		model = openai.GPT4oMini
	}
	s := &Service{
		client:  client,
		model:   model,
		breaker: circuit.New("nlprofile", circuit.WithFailureThreshold(5)),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract asks the model for a profile and validates the answer.
func (s *Service) Extract(ctx context.Context, description string) (Extracted, error) {
	if strings.TrimSpace(description) == "" {
		return Extracted{}, dErrors.NewValidation("invalid request", map[string]string{
			"description": "description is required",
		})
	}
	if !s.breaker.Allow(requestcontext.Now(ctx)) {
		return Extracted{}, dErrors.New(dErrors.CodeUnavailable, "profile extraction temporarily disabled")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: description},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.ErrorContext(ctx, "profile extraction circuit opened", "breaker", s.breaker.Name())
		}
		s.logger.ErrorContext(ctx, "profile extraction call failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return Extracted{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "profile extraction unavailable")
	}
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "profile extraction circuit closed", "breaker", s.breaker.Name())
	}
	if len(resp.Choices) == 0 {
		return Extracted{}, dErrors.New(dErrors.CodeUnavailable, "profile extraction returned no answer")
	}

	var extracted Extracted
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &extracted); err != nil {
		s.logger.WarnContext(ctx, "profile extraction returned malformed JSON",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return Extracted{}, dErrors.New(dErrors.CodeUnavailable, "profile extraction returned malformed output")
	}

	// Normalization both validates the model's answer and reports unknown
	// flags as warnings. The normalized profile itself is discarded; the
	// caller feeds the extracted input into /v1/classify.
	_, warnings, err := engine.Normalize(engine.Input{
		Role:            extracted.Role,
		InstitutionType: extracted.InstitutionType,
		UseCaseID:       extracted.UseCaseID,
		Flags:           extracted.Profile,
	})
	if err != nil {
		return Extracted{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "extracted profile failed validation")
	}
	extracted.Warnings = warnings
	if extracted.Profile == nil {
		extracted.Profile = map[string]any{}
	}
	s.emitAudit(ctx, extracted)
	return extracted, nil
}

func (s *Service) emitAudit(ctx context.Context, extracted Extracted) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Category:  audit.CategoryOperations,
		Action:    audit.ActionProfileExtracted,
		Subject:   requestcontext.Subject(ctx),
		RequestID: requestcontext.RequestID(ctx),
		UseCaseID: extracted.UseCaseID,
		Reason:    extracted.Role,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}

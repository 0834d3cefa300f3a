// Package briefing writes a short pilot briefing for a simulation run.
// Without an API key it returns the localized verdict message and the run facts.
package briefing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/yegors/aeroguard/internal/i18n"
	"github.com/yegors/aeroguard/pkg/logger"
)

// Source names where a briefing's text came from
const (
	SourceStatic = "static"
	SourceLLM    = "llm"
)

var errEmptyCompletion = errors.New("completion returned no text")

// Config represents the briefing configuration
type Config struct {
	Enabled   bool
	APIKey    string
	Model     string
	Timeout   time.Duration
	MaxTokens int
}

// Briefing is the text returned for a run
type Briefing struct {
	RunID    string       `json:"run_id"`
	Language string       `json:"language"`
	Outcome  i18n.Outcome `json:"outcome"`
	Text     string       `json:"text"`
	Source   string       `json:"source"`
}

// Completer turns a system and user prompt into text
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service produces briefings
type Service struct {
	aggregator *Aggregator
	completer  Completer
	timeout    time.Duration
	logger     *logger.Logger
}

// NewService creates a briefing service. A nil completer always yields static briefings.
func NewService(aggregator *Aggregator, completer Completer, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		aggregator: aggregator,
		completer:  completer,
		timeout:    timeout,
		logger:     log.Named("briefing"),
	}
}

// Enabled reports whether briefings are written by the language model
func (s *Service) Enabled() bool {
	return s.completer != nil
}

// Brief writes the briefing for a recorded run.
// A failed completion falls back to the static briefing.
func (s *Service) Brief(ctx context.Context, runID, lang string) (*Briefing, error) {
	bc, err := s.aggregator.Collect(ctx, runID, lang)
	if err != nil {
		return nil, err
	}

	outcome := i18n.OutcomeFor(bc.Language, bc.Run.Assessment.Verdict)
	b := &Briefing{
		RunID:    runID,
		Language: bc.Language,
		Outcome:  outcome,
		Text:     staticText(outcome, bc),
		Source:   SourceStatic,
	}

	if s.completer == nil {
		return b, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.completer.Complete(ctx, systemPrompt(bc.Language), bc.Facts())
	if err != nil {
		s.logger.Warn("Falling back to static briefing",
			logger.String("run_id", runID),
			logger.Error(err))
		return b, nil
	}

	b.Text = text
	b.Source = SourceLLM
	return b, nil
}

func staticText(outcome i18n.Outcome, bc *Context) string {
	return outcome.Headline + "\n" + outcome.Detail + "\n\n" + bc.Facts()
}

func systemPrompt(lang string) string {
	return fmt.Sprintf("You are a flight operations officer. Using only the facts given, "+
		"write a briefing of at most four sentences for the pilot explaining whether the "+
		"planned flight stays inside the aircraft's envelope and why. "+
		"Answer in the language with code %s.", lang)
}

// OpenAICompleter completes prompts with the OpenAI chat completions API
type OpenAICompleter struct {
	client    openai.Client
	model     string
	maxTokens int
}

// NewOpenAICompleter creates a completer from the briefing configuration
func NewOpenAICompleter(cfg Config, opts ...option.RequestOption) *OpenAICompleter {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &OpenAICompleter{
		client:    openai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Complete sends one chat completion request
func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to request briefing: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}

package question

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"mathmystery/internal/llm"
)

const (
	questionMaxTokens = 1024
	hintMaxTokens     = 256
	oracleMaxTokens   = 2048
	deepMaxTokens     = 8192

	generationTemperature = 0.7
)

// Service produces questions, hints, and oracle answers. Every method
// degrades to canned content instead of returning an error, so callers
// always have something to show.
type Service struct {
	provider llm.Provider
	log      *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider llm.Provider, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{provider: provider, log: log}
}

// questionOutput is the raw provider response before validation.
type questionOutput struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// oracleOutput is the raw provider response for oracle answers.
type oracleOutput struct {
	Text    string     `json:"text"`
	Sources []Citation `json:"sources"`
}

// Generate produces a question for the topic at the given difficulty.
// The difficulty is clamped to the supported range. On any provider or
// validation failure a canned question is returned instead.
func (s *Service) Generate(ctx context.Context, topic Topic, difficulty int) *Question {
	difficulty = ClampDifficulty(difficulty)

	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionMessage(topic, difficulty)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   questionMaxTokens,
		Temperature: generationTemperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		s.log.Warn("question generation failed, using fallback",
			"topic", topic, "difficulty", difficulty, "error", err)
		return fallbackQuestion(topic, difficulty)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		s.log.Warn("question response unparseable, using fallback",
			"topic", topic, "error", err)
		return fallbackQuestion(topic, difficulty)
	}

	q := &Question{
		ID:            uuid.NewString(),
		Topic:         topic,
		Difficulty:    difficulty,
		Text:          raw.Text,
		Options:       raw.Options,
		CorrectAnswer: raw.CorrectAnswer,
		Explanation:   raw.Explanation,
	}

	if err := validateQuestion(q); err != nil {
		s.log.Warn("generated question rejected, using fallback",
			"topic", topic, "error", err)
		return fallbackQuestion(topic, difficulty)
	}

	return q
}

// Hint produces a short hint for the given question text. On failure a
// generic hint is returned.
func (s *Service) Hint(ctx context.Context, questionText string) string {
	ctx = llm.WithPurpose(ctx, "hint")

	req := llm.Request{
		System: hintSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHintMessage(questionText)},
		},
		MaxTokens:   hintMaxTokens,
		Temperature: generationTemperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		s.log.Warn("hint generation failed, using fallback", "error", err)
		return fallbackHint
	}

	hint := decodeText(resp.Content)
	if hint == "" {
		return fallbackHint
	}
	return hint
}

// Explain answers a free-form math question. In deep mode the answer is
// longer and carries no citations. On failure an apology is returned.
func (s *Service) Explain(ctx context.Context, query string, deep bool) *OracleAnswer {
	system := oracleSystemPrompt
	maxTokens := oracleMaxTokens
	purpose := "oracle"
	if deep {
		system = oracleDeepSystemPrompt
		maxTokens = deepMaxTokens
		purpose = "oracle-deep"
	}

	ctx = llm.WithPurpose(ctx, purpose)

	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: query},
		},
		Schema:      OracleSchema,
		MaxTokens:   maxTokens,
		Temperature: generationTemperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		s.log.Warn("oracle answer failed, using fallback", "deep", deep, "error", err)
		return &OracleAnswer{Text: fallbackOracleText}
	}

	var raw oracleOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil || raw.Text == "" {
		s.log.Warn("oracle response unparseable, using fallback", "error", err)
		return &OracleAnswer{Text: fallbackOracleText}
	}

	if deep {
		raw.Sources = nil
	}
	return &OracleAnswer{Text: raw.Text, Sources: raw.Sources}
}

// validateQuestion checks structural properties the schema cannot
// express, in particular that the correct answer appears among the
// options.
func validateQuestion(q *Question) error {
	if q.Text == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("expected %d options, got %d", OptionCount, len(q.Options))
	}
	found := false
	for _, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("option is empty")
		}
		if opt == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("correct answer %q not among options", q.CorrectAnswer)
	}
	if q.Explanation == "" {
		return fmt.Errorf("explanation is empty")
	}
	return nil
}

// decodeText extracts plain text from a response that may be either a
// bare JSON string or raw text.
func decodeText(content json.RawMessage) string {
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}
	return string(content)
}

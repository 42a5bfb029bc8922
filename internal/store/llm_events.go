package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LLMEventData captures one LLM API call for the event log.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM event with its assigned id and timestamp.
type LLMEventRecord struct {
	ID        int64
	Timestamp time.Time
	LLMEventData
}

// AppendLLMEvent records an LLM API call.
func (s *Store) AppendLLMEvent(ctx context.Context, data LLMEventData) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO llm_events
			(provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
		data.RequestBody, data.ResponseBody)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

// LLMEvents returns the most recent events, newest first.
// limit <= 0 means no limit.
func (s *Store) LLMEvents(ctx context.Context, limit int) ([]LLMEventRecord, error) {
	q := `SELECT id, timestamp, provider, model, purpose, input_tokens,
		output_tokens, latency_ms, success, error_message, request_body, response_body
		FROM llm_events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEventRecord
	for rows.Next() {
		var r LLMEventRecord
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Provider, &r.Model,
			&r.Purpose, &r.InputTokens, &r.OutputTokens, &r.LatencyMs,
			&r.Success, &r.ErrorMessage, &r.RequestBody, &r.ResponseBody); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LLMEvent returns one event by id, or nil if it does not exist.
func (s *Store) LLMEvent(ctx context.Context, id int64) (*LLMEventRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, timestamp, provider, model,
		purpose, input_tokens, output_tokens, latency_ms, success,
		error_message, request_body, response_body
		FROM llm_events WHERE id = ?`, id)

	var r LLMEventRecord
	err := row.Scan(&r.ID, &r.Timestamp, &r.Provider, &r.Model, &r.Purpose,
		&r.InputTokens, &r.OutputTokens, &r.LatencyMs, &r.Success,
		&r.ErrorMessage, &r.RequestBody, &r.ResponseBody)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query llm event %d: %w", id, err)
	}
	return &r, nil
}

// Reset deletes all users, the session and the event log.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"users", "session", "llm_events"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mathmystery/internal/account"
)

// Session returns the current session snapshot, or nil if nobody is
// signed in.
func (s *Store) Session(ctx context.Context) (*account.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT user_id, name, email, username, role, password, lives, score, level FROM session WHERE id = 1")
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return u, nil
}

// SetSession replaces the session snapshot with a copy of u.
// Passing nil clears it; clearing an empty slot is not an error.
func (s *Store) SetSession(ctx context.Context, u *account.User) error {
	if u == nil {
		_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE id = 1")
		if err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	}

	lives, score, level := progressValues(u)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, user_id, name, email, username, role, password, lives, score, level)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			email = excluded.email,
			username = excluded.username,
			role = excluded.role,
			password = excluded.password,
			lives = excluded.lives,
			score = excluded.score,
			level = excluded.level`,
		u.ID, u.Name, u.Email, u.Username, string(u.Role), u.Password, lives, score, level)
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// SaveProgress writes a student's score, level and lives to their user
// record and, when that student is the current session, to the session
// snapshot, both in one transaction so no reader observes them disagreeing.
func (s *Store) SaveProgress(ctx context.Context, userID string, score, level, lives int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save progress: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE users SET score = ?, level = ?, lives = ? WHERE id = ?",
		score, level, lives, userID)
	if err != nil {
		return fmt.Errorf("update user progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user progress: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("save progress: no user with id %s", userID)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE session SET score = ?, level = ?, lives = ? WHERE id = 1 AND user_id = ?",
		score, level, lives, userID)
	if err != nil {
		return fmt.Errorf("update session progress: %w", err)
	}

	return tx.Commit()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mathmystery/internal/account"
)

// userColumns is the scan order shared by user and session reads.
const userColumns = "id, name, email, username, role, password, lives, score, level"

// Users returns all user records, oldest registration first.
func (s *Store) Users(ctx context.Context) ([]*account.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*account.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// User returns the record with the given id, or nil if none exists.
func (s *Store) User(ctx context.Context, id string) (*account.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// UserByUsername returns the record with the given username, or nil if
// none exists.
func (s *Store) UserByUsername(ctx context.Context, username string) (*account.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// UserByEmail returns the record with the given email, or nil if none
// exists.
func (s *Store) UserByEmail(ctx context.Context, email string) (*account.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// PutUser inserts or replaces the record by id.
func (s *Store) PutUser(ctx context.Context, u *account.User) error {
	lives, score, level := progressValues(u)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, username, role, password, lives, score, level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
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
		return fmt.Errorf("put user %s: %w", u.ID, err)
	}
	return nil
}

// DeleteUser removes the record with the given id. Deleting an unknown id
// is not an error. If the deleted user is the current session, the session
// is cleared as well.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM session WHERE user_id = ?", id); err != nil {
		return fmt.Errorf("clear session for %s: %w", id, err)
	}
	return tx.Commit()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*account.User, error) {
	var u account.User
	var role string
	var lives, score, level sql.NullInt64

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &role, &u.Password,
		&lives, &score, &level)
	if err != nil {
		return nil, err
	}
	u.Role = account.Role(role)

	// Progress columns travel together; a record written without them
	// (teacher, admin, legacy rows) stays progress-free.
	if lives.Valid && score.Valid && level.Valid {
		u.Progress = &account.Progress{
			Lives: int(lives.Int64),
			Score: int(score.Int64),
			Level: int(level.Int64),
		}
	}
	return &u, nil
}

func progressValues(u *account.User) (lives, score, level sql.NullInt64) {
	if u.Progress == nil {
		return
	}
	lives = sql.NullInt64{Int64: int64(u.Progress.Lives), Valid: true}
	score = sql.NullInt64{Int64: int64(u.Progress.Score), Valid: true}
	level = sql.NullInt64{Int64: int64(u.Progress.Level), Valid: true}
	return
}

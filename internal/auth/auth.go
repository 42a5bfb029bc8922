// Package auth handles login, registration and the singleton session.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"mathmystery/internal/account"
	"mathmystery/internal/store"
)

// Admin credential environment overrides. The defaults match the
// out-of-the-box credential documented in the README.
const (
	adminUserEnv = "MATHMYSTERY_ADMIN_USERNAME"
	adminPassEnv = "MATHMYSTERY_ADMIN_PASSWORD"

	defaultAdminUsername = "Admin"
	defaultAdminPassword = "Admin"

	adminID = "admin-001"
)

// ErrInvalidCredentials is returned when a login attempt does not match
// any known identity.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid username or password"
}

// ErrDuplicateIdentity is returned when a registration reuses a
// username or email already taken by another account.
type ErrDuplicateIdentity struct {
	Field string // "username" or "email"
	Value string
}

func (e *ErrDuplicateIdentity) Error() string {
	return fmt.Sprintf("%s %q is already taken", e.Field, e.Value)
}

// Manager authenticates users against the store and tracks the current
// session. The admin identity lives outside the store entirely.
type Manager struct {
	store *store.Store
	log   *slog.Logger
}

// New creates a Manager over the given store.
func New(st *store.Store, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Manager{store: st, log: log}
}

// Login checks the credentials and, on success, records the user as the
// current session and returns them. The admin credential is checked
// first and never touches the users table.
func (m *Manager) Login(ctx context.Context, username, password string) (*account.User, error) {
	if admin := m.matchAdmin(username, password); admin != nil {
		if err := m.store.SetSession(ctx, admin); err != nil {
			return nil, err
		}
		m.log.Info("admin logged in")
		return admin, nil
	}

	u, err := m.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Password != password {
		return nil, &ErrInvalidCredentials{}
	}

	if err := m.store.SetSession(ctx, u); err != nil {
		return nil, err
	}
	m.log.Info("user logged in", "user", u.ID, "role", u.Role)
	return u, nil
}

// Register creates a new account and logs it in. Only student and
// teacher roles can self-register. Students start with fresh progress.
// On a duplicate username or email the store is left unchanged.
func (m *Manager) Register(ctx context.Context, name, email, username, password string, role account.Role) (*account.User, error) {
	if role != account.RoleStudent && role != account.RoleTeacher {
		return nil, fmt.Errorf("role %q cannot self-register", role)
	}
	if name == "" || email == "" || username == "" || password == "" {
		return nil, fmt.Errorf("all registration fields are required")
	}

	if existing, err := m.store.UserByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil || strings.EqualFold(username, m.adminUsername()) {
		return nil, &ErrDuplicateIdentity{Field: "username", Value: username}
	}
	if existing, err := m.store.UserByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &ErrDuplicateIdentity{Field: "email", Value: email}
	}

	u := &account.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Username: username,
		Role:     role,
		Password: password,
	}
	if role == account.RoleStudent {
		u.Progress = account.NewProgress()
	}

	if err := m.store.PutUser(ctx, u); err != nil {
		return nil, err
	}
	if err := m.store.SetSession(ctx, u); err != nil {
		return nil, err
	}
	m.log.Info("user registered", "user", u.ID, "role", u.Role)
	return u, nil
}

// Logout clears the current session. Logging out with no session is a
// no-op.
func (m *Manager) Logout(ctx context.Context) error {
	return m.store.SetSession(ctx, nil)
}

// Current returns the signed-in user, or nil if nobody is signed in.
// Store-backed users are re-read from the users table so a restored
// session reflects progress saved since the session row was written.
func (m *Manager) Current(ctx context.Context) (*account.User, error) {
	sess, err := m.store.Session(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if sess.Role == account.RoleAdmin {
		return sess, nil
	}

	u, err := m.store.User(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// The account was deleted out from under the session.
		if err := m.store.SetSession(ctx, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return u, nil
}

// matchAdmin returns the admin identity when the credentials match, nil
// otherwise.
func (m *Manager) matchAdmin(username, password string) *account.User {
	if username != m.adminUsername() || password != m.adminPassword() {
		return nil
	}
	return &account.User{
		ID:       adminID,
		Name:     "Administrator",
		Username: m.adminUsername(),
		Role:     account.RoleAdmin,
	}
}

func (m *Manager) adminUsername() string {
	if v := os.Getenv(adminUserEnv); v != "" {
		return v
	}
	return defaultAdminUsername
}

func (m *Manager) adminPassword() string {
	if v := os.Getenv(adminPassEnv); v != "" {
		return v
	}
	return defaultAdminPassword
}

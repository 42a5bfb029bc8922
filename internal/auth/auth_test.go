package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathmystery/internal/account"
	"mathmystery/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	st := openTestStore(t)
	return New(st, nil), st
}

func TestRegisterStudent(t *testing.T) {
	m, st := newTestManager(t)

	u, err := m.Register(t.Context(), "Ana García", "ana@school.test", "ana", "secret", account.RoleStudent)
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, account.RoleStudent, u.Role)
	require.NotNil(t, u.Progress)
	assert.Equal(t, account.MaxLives, u.Progress.Lives)
	assert.Equal(t, 0, u.Progress.Score)
	assert.Equal(t, account.MinLevel, u.Progress.Level)

	// Registration signs the user in.
	sess, err := st.Session(t.Context())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, u.ID, sess.ID)
}

func TestRegisterTeacherHasNoProgress(t *testing.T) {
	m, _ := newTestManager(t)

	u, err := m.Register(t.Context(), "Prof. Ruiz", "ruiz@school.test", "ruiz", "secret", account.RoleTeacher)
	require.NoError(t, err)
	assert.Nil(t, u.Progress)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Register(t.Context(), "X", "x@x.test", "x", "pw", account.RoleAdmin)
	assert.Error(t, err)
}

func TestRegisterDuplicates(t *testing.T) {
	m, st := newTestManager(t)

	_, err := m.Register(t.Context(), "Ana", "ana@school.test", "ana", "pw", account.RoleStudent)
	require.NoError(t, err)

	var dup *ErrDuplicateIdentity

	_, err = m.Register(t.Context(), "Other", "other@school.test", "ana", "pw", account.RoleStudent)
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "username", dup.Field)

	_, err = m.Register(t.Context(), "Other", "ana@school.test", "other", "pw", account.RoleStudent)
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)

	// The failed attempts did not write anything.
	users, err := st.Users(t.Context())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterRejectsAdminUsername(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Register(t.Context(), "Impostor", "imp@x.test", "Admin", "pw", account.RoleStudent)
	var dup *ErrDuplicateIdentity
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "username", dup.Field)
}

func TestLogin(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Register(t.Context(), "Ana", "ana@school.test", "ana", "secret", account.RoleStudent)
	require.NoError(t, err)
	require.NoError(t, m.Logout(t.Context()))

	u, err := m.Login(t.Context(), "ana", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)

	var invalid *ErrInvalidCredentials
	_, err = m.Login(t.Context(), "ana", "wrong")
	assert.ErrorAs(t, err, &invalid)
	_, err = m.Login(t.Context(), "nobody", "secret")
	assert.ErrorAs(t, err, &invalid)
}

func TestAdminLogin(t *testing.T) {
	m, st := newTestManager(t)

	u, err := m.Login(t.Context(), "Admin", "Admin")
	require.NoError(t, err)
	assert.Equal(t, account.RoleAdmin, u.Role)
	assert.Equal(t, adminID, u.ID)

	// The admin never lands in the users table.
	users, err := st.Users(t.Context())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAdminCredentialOverride(t *testing.T) {
	t.Setenv(adminUserEnv, "root")
	t.Setenv(adminPassEnv, "hunter2")

	m, _ := newTestManager(t)

	var invalid *ErrInvalidCredentials
	_, err := m.Login(t.Context(), "Admin", "Admin")
	assert.ErrorAs(t, err, &invalid)

	u, err := m.Login(t.Context(), "root", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, account.RoleAdmin, u.Role)
}

func TestCurrentRefreshesFromStore(t *testing.T) {
	m, st := newTestManager(t)

	u, err := m.Register(t.Context(), "Ana", "ana@school.test", "ana", "pw", account.RoleStudent)
	require.NoError(t, err)

	// Progress advances after the session row was written.
	require.NoError(t, st.SaveProgress(t.Context(), u.ID, 50, 2, 5))

	cur, err := m.Current(t.Context())
	require.NoError(t, err)
	require.NotNil(t, cur)
	require.NotNil(t, cur.Progress)
	assert.Equal(t, 50, cur.Progress.Score)
	assert.Equal(t, 2, cur.Progress.Level)
}

func TestCurrentClearsStaleSession(t *testing.T) {
	m, st := newTestManager(t)

	u, err := m.Register(t.Context(), "Ana", "ana@school.test", "ana", "pw", account.RoleStudent)
	require.NoError(t, err)

	require.NoError(t, st.DeleteUser(t.Context(), u.ID))

	cur, err := m.Current(t.Context())
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestLogoutTwice(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Login(t.Context(), "Admin", "Admin")
	require.NoError(t, err)

	require.NoError(t, m.Logout(t.Context()))
	require.NoError(t, m.Logout(t.Context()))

	cur, err := m.Current(t.Context())
	require.NoError(t, err)
	assert.Nil(t, cur)
}

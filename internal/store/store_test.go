package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mathmystery/internal/account"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func student(id, username, email string) *account.User {
	return &account.User{
		ID:       id,
		Name:     "Student " + id,
		Email:    email,
		Username: username,
		Role:     account.RoleStudent,
		Password: "secret",
		Progress: account.NewProgress(),
	}
}

func TestPutAndGetUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := student("u1", "ana", "ana@example.com")
	require.NoError(t, s.PutUser(ctx, u))

	got, err := s.User(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "ana", got.Username)
	require.NotNil(t, got.Progress)
	require.Equal(t, 5, got.Progress.Lives)
	require.Equal(t, 1, got.Progress.Level)
}

func TestUserWithoutProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	teacher := &account.User{
		ID: "t1", Name: "Prof", Email: "prof@example.com",
		Username: "prof", Role: account.RoleTeacher, Password: "pw",
	}
	require.NoError(t, s.PutUser(ctx, teacher))

	got, err := s.User(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, got.Progress)
}

func TestUserNotFound(t *testing.T) {
	s := openTestStore(t)

	got, err := s.User(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUsersOrderAndUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutUser(ctx, student("u1", "ana", "ana@example.com")))
	require.NoError(t, s.PutUser(ctx, student("u2", "ben", "ben@example.com")))

	// Upsert keeps a single row.
	u1 := student("u1", "ana", "ana@example.com")
	u1.Progress.Score = 120
	require.NoError(t, s.PutUser(ctx, u1))

	users, err := s.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, 120, users[0].Progress.Score)
}

func TestDuplicateUsernameRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutUser(ctx, student("u1", "ana", "ana@example.com")))
	err := s.PutUser(ctx, student("u2", "ana", "other@example.com"))
	require.Error(t, err)
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, err := s.Session(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	u := student("u1", "ana", "ana@example.com")
	require.NoError(t, s.PutUser(ctx, u))
	require.NoError(t, s.SetSession(ctx, u))

	got, err = s.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "u1", got.ID)

	// Clearing twice is fine.
	require.NoError(t, s.SetSession(ctx, nil))
	require.NoError(t, s.SetSession(ctx, nil))

	got, err = s.Session(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSaveProgressUpdatesUserAndSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := student("u1", "ana", "ana@example.com")
	require.NoError(t, s.PutUser(ctx, u))
	require.NoError(t, s.SetSession(ctx, u))

	require.NoError(t, s.SaveProgress(ctx, "u1", 150, 2, 4))

	user, err := s.User(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 150, user.Progress.Score)
	require.Equal(t, 2, user.Progress.Level)
	require.Equal(t, 4, user.Progress.Lives)

	sess, err := s.Session(ctx)
	require.NoError(t, err)
	require.Equal(t, 150, sess.Progress.Score)
	require.Equal(t, 4, sess.Progress.Lives)
}

func TestSaveProgressLeavesOtherSessionAlone(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutUser(ctx, student("u1", "ana", "ana@example.com")))
	other := student("u2", "ben", "ben@example.com")
	require.NoError(t, s.PutUser(ctx, other))
	require.NoError(t, s.SetSession(ctx, other))

	require.NoError(t, s.SaveProgress(ctx, "u1", 99, 1, 3))

	sess, err := s.Session(ctx)
	require.NoError(t, err)
	require.Equal(t, "u2", sess.ID)
	require.Equal(t, 0, sess.Progress.Score)
}

func TestSaveProgressUnknownUser(t *testing.T) {
	s := openTestStore(t)
	require.Error(t, s.SaveProgress(context.Background(), "ghost", 1, 1, 1))
}

func TestDeleteUserClearsMatchingSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := student("u1", "ana", "ana@example.com")
	require.NoError(t, s.PutUser(ctx, u))
	require.NoError(t, s.SetSession(ctx, u))

	require.NoError(t, s.DeleteUser(ctx, "u1"))

	users, err := s.Users(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	sess, err := s.Session(ctx)
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestLLMEventLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendLLMEvent(ctx, LLMEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-gen",
		InputTokens: 120, OutputTokens: 80, LatencyMs: 900, Success: true,
	}))
	require.NoError(t, s.AppendLLMEvent(ctx, LLMEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "hint",
		Success: false, ErrorMessage: "rate limited",
	}))

	events, err := s.LLMEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "hint", events[0].Purpose) // newest first

	one, err := s.LLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, one)
	require.Equal(t, "question-gen", one.Purpose)

	missing, err := s.LLMEvent(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, missing)
}

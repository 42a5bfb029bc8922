package game

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathmystery/internal/account"
	"mathmystery/internal/store"
)

func TestApply(t *testing.T) {
	fresh := State{Phase: PhaseActive, Lives: 5, Score: 0, Level: 1}

	tests := []struct {
		name    string
		start   State
		outcome Outcome
		want    State
	}{
		{
			name:    "correct scores at current level",
			start:   fresh,
			outcome: OutcomeCorrect,
			want:    State{Phase: PhaseResolved, Lives: 5, Score: 10, Level: 1, Streak: 1},
		},
		{
			name:    "correct at level 3",
			start:   State{Phase: PhaseActive, Lives: 3, Score: 100, Level: 3, Streak: 1},
			outcome: OutcomeCorrect,
			want:    State{Phase: PhaseResolved, Lives: 3, Score: 130, Level: 3, Streak: 2},
		},
		{
			name:    "fifth in a row levels up and restores a life",
			start:   State{Phase: PhaseActive, Lives: 3, Score: 40, Level: 1, Streak: 4},
			outcome: OutcomeCorrect,
			want:    State{Phase: PhaseResolved, Lives: 4, Score: 50, Level: 2, Streak: 5},
		},
		{
			name:    "level up scores at the level before the bump",
			start:   State{Phase: PhaseActive, Lives: 5, Score: 0, Level: 2, Streak: 4},
			outcome: OutcomeCorrect,
			want:    State{Phase: PhaseResolved, Lives: 5, Score: 20, Level: 3, Streak: 5},
		},
		{
			name:    "level caps at five",
			start:   State{Phase: PhaseActive, Lives: 2, Score: 0, Level: 5, Streak: 9},
			outcome: OutcomeCorrect,
			want:    State{Phase: PhaseResolved, Lives: 3, Score: 50, Level: 5, Streak: 10},
		},
		{
			name:    "lives cap at five",
			start:   State{Phase: PhaseActive, Lives: 5, Score: 0, Level: 1, Streak: 4},
			outcome: OutcomeCorrect,
			want:    State{Phase: PhaseResolved, Lives: 5, Score: 10, Level: 2, Streak: 5},
		},
		{
			name:    "wrong answer breaks the streak and costs a life",
			start:   State{Phase: PhaseActive, Lives: 5, Score: 30, Level: 2, Streak: 3},
			outcome: OutcomeWrong,
			want:    State{Phase: PhaseResolved, Lives: 4, Score: 30, Level: 2, Streak: 0},
		},
		{
			name:    "timeout counts as wrong",
			start:   State{Phase: PhaseActive, Lives: 2, Score: 30, Level: 2, Streak: 4},
			outcome: OutcomeTimeout,
			want:    State{Phase: PhaseResolved, Lives: 1, Score: 30, Level: 2, Streak: 0},
		},
		{
			name:    "last life ends the run",
			start:   State{Phase: PhaseActive, Lives: 1, Score: 80, Level: 3, Streak: 2},
			outcome: OutcomeWrong,
			want:    State{Phase: PhaseGameOver, Lives: 0, Score: 80, Level: 3, Streak: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apply(tt.start, tt.outcome))
		})
	}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func putStudent(t *testing.T, st *store.Store, id string, prog *account.Progress) {
	t.Helper()
	require.NoError(t, st.PutUser(t.Context(), &account.User{
		ID:       id,
		Name:     "Ana",
		Email:    id + "@school.test",
		Username: id,
		Role:     account.RoleStudent,
		Password: "pw",
		Progress: prog,
	}))
}

func newTestEngine(t *testing.T, prog *account.Progress) (*Engine, *store.Store) {
	st := openTestStore(t)
	putStudent(t, st, "s1", prog)
	return NewEngine(st, nil, "s1"), st
}

func storedProgress(t *testing.T, st *store.Store, id string) *account.Progress {
	t.Helper()
	u, err := st.User(t.Context(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotNil(t, u.Progress)
	return u.Progress
}

func TestStartLoadsPersistedProgress(t *testing.T) {
	e, _ := newTestEngine(t, &account.Progress{Lives: 3, Score: 120, Level: 4})

	s, err := e.Start(t.Context())
	require.NoError(t, err)

	assert.Equal(t, PhaseActive, s.Phase)
	assert.Equal(t, 3, s.Lives)
	assert.Equal(t, 120, s.Score)
	assert.Equal(t, 4, s.Level)
	assert.Equal(t, 0, s.Streak)
}

func TestStartWithNoLivesIsGameOver(t *testing.T) {
	e, _ := newTestEngine(t, &account.Progress{Lives: 0, Score: 200, Level: 3})

	s, err := e.Start(t.Context())
	require.NoError(t, err)
	assert.Equal(t, PhaseGameOver, s.Phase)
}

func TestFiveCorrectAnswersAtLevelOne(t *testing.T) {
	e, st := newTestEngine(t, account.NewProgress())

	_, err := e.Start(t.Context())
	require.NoError(t, err)

	var s State
	for i := 0; i < 5; i++ {
		s, err = e.Answer(t.Context(), true)
		require.NoError(t, err)
		s = e.Next()
	}

	assert.Equal(t, 50, s.Score)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 5, s.Lives)
	assert.Equal(t, 5, s.Streak)

	// Every answer was persisted, not just the last.
	prog := storedProgress(t, st, "s1")
	assert.Equal(t, 50, prog.Score)
	assert.Equal(t, 2, prog.Level)
	assert.Equal(t, 5, prog.Lives)
}

func TestEachResolutionPersists(t *testing.T) {
	e, st := newTestEngine(t, account.NewProgress())

	_, err := e.Start(t.Context())
	require.NoError(t, err)

	_, err = e.Answer(t.Context(), true)
	require.NoError(t, err)
	assert.Equal(t, 10, storedProgress(t, st, "s1").Score)

	e.Next()
	_, err = e.Answer(t.Context(), false)
	require.NoError(t, err)
	assert.Equal(t, 4, storedProgress(t, st, "s1").Lives)
}

func TestGameOverPersistsZeroLives(t *testing.T) {
	e, st := newTestEngine(t, &account.Progress{Lives: 1, Score: 80, Level: 3})

	_, err := e.Start(t.Context())
	require.NoError(t, err)

	s, err := e.Answer(t.Context(), false)
	require.NoError(t, err)
	assert.Equal(t, PhaseGameOver, s.Phase)

	prog := storedProgress(t, st, "s1")
	assert.Equal(t, 0, prog.Lives)
	assert.Equal(t, 80, prog.Score)
	assert.Equal(t, 3, prog.Level)
}

func TestNextIsNoOpAtGameOver(t *testing.T) {
	e, _ := newTestEngine(t, &account.Progress{Lives: 1, Score: 0, Level: 1})

	_, err := e.Start(t.Context())
	require.NoError(t, err)
	_, err = e.Answer(t.Context(), false)
	require.NoError(t, err)

	s := e.Next()
	assert.Equal(t, PhaseGameOver, s.Phase)
}

func TestRetryRestoresLivesKeepsScore(t *testing.T) {
	e, st := newTestEngine(t, &account.Progress{Lives: 1, Score: 150, Level: 4})

	_, err := e.Start(t.Context())
	require.NoError(t, err)
	_, err = e.Answer(t.Context(), false)
	require.NoError(t, err)

	s, err := e.Retry(t.Context())
	require.NoError(t, err)

	assert.Equal(t, PhaseActive, s.Phase)
	assert.Equal(t, account.MaxLives, s.Lives)
	assert.Equal(t, 150, s.Score)
	assert.Equal(t, 4, s.Level)
	assert.Equal(t, 0, s.Streak)

	prog := storedProgress(t, st, "s1")
	assert.Equal(t, account.MaxLives, prog.Lives)
	assert.Equal(t, 150, prog.Score)
}

func TestRetryOutsideGameOver(t *testing.T) {
	e, _ := newTestEngine(t, account.NewProgress())

	_, err := e.Start(t.Context())
	require.NoError(t, err)

	_, err = e.Retry(t.Context())
	assert.Error(t, err)
}

func TestResolveWithoutActiveQuestion(t *testing.T) {
	e, _ := newTestEngine(t, account.NewProgress())

	// Before Start.
	_, err := e.Answer(t.Context(), true)
	assert.Error(t, err)

	_, err = e.Start(t.Context())
	require.NoError(t, err)
	_, err = e.Answer(t.Context(), true)
	require.NoError(t, err)

	// Already resolved, feedback showing.
	_, err = e.Answer(t.Context(), true)
	assert.Error(t, err)
}

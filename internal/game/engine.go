package game

import (
	"context"
	"fmt"
	"log/slog"

	"mathmystery/internal/account"
	"mathmystery/internal/store"
)

// Engine drives one student's run against the store. Progress is
// reloaded on Start and written back after every resolution, so a crash
// or quit mid-run loses at most the unanswered question.
type Engine struct {
	store  *store.Store
	log    *slog.Logger
	userID string
	state  State
}

// NewEngine creates an Engine for the given student.
func NewEngine(st *store.Store, log *slog.Logger, userID string) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{store: st, log: log, userID: userID, state: State{Phase: PhaseIdle}}
}

// State returns the current snapshot.
func (e *Engine) State() State {
	return e.state
}

// Start loads the student's persisted progress and begins a run. The
// streak always starts at zero. A student who previously ran out of
// lives resumes at game over and must Retry.
func (e *Engine) Start(ctx context.Context) (State, error) {
	u, err := e.store.User(ctx, e.userID)
	if err != nil {
		return e.state, err
	}
	if u == nil {
		return e.state, fmt.Errorf("student %s not found", e.userID)
	}

	prog := u.Progress
	if prog == nil {
		prog = account.NewProgress()
	}

	e.state = State{
		Phase:  PhaseActive,
		Lives:  prog.Lives,
		Score:  prog.Score,
		Level:  prog.Level,
		Streak: 0,
	}
	if prog.Lives <= 0 {
		e.state.Phase = PhaseGameOver
	}
	return e.state, nil
}

// Answer resolves the active question as correct or wrong and persists
// the result.
func (e *Engine) Answer(ctx context.Context, correct bool) (State, error) {
	if correct {
		return e.resolve(ctx, OutcomeCorrect)
	}
	return e.resolve(ctx, OutcomeWrong)
}

// Timeout resolves the active question as unanswered and persists the
// result. Scoring-wise a timeout is a wrong answer.
func (e *Engine) Timeout(ctx context.Context) (State, error) {
	return e.resolve(ctx, OutcomeTimeout)
}

// Next moves from feedback back to an active question. Calling Next in
// any other phase, game over included, changes nothing.
func (e *Engine) Next() State {
	if e.state.Phase == PhaseResolved {
		e.state.Phase = PhaseActive
	}
	return e.state
}

// Retry restores a full set of lives after game over, keeping score and
// level, and persists immediately.
func (e *Engine) Retry(ctx context.Context) (State, error) {
	if e.state.Phase != PhaseGameOver {
		return e.state, fmt.Errorf("retry is only valid at game over, not %s", e.state.Phase)
	}

	e.state.Lives = account.MaxLives
	e.state.Streak = 0
	e.state.Phase = PhaseActive

	if err := e.persist(ctx); err != nil {
		return e.state, err
	}
	e.log.Info("run retried", "user", e.userID, "score", e.state.Score, "level", e.state.Level)
	return e.state, nil
}

func (e *Engine) resolve(ctx context.Context, o Outcome) (State, error) {
	if e.state.Phase != PhaseActive {
		return e.state, fmt.Errorf("no active question to resolve in phase %s", e.state.Phase)
	}

	e.state = apply(e.state, o)

	if err := e.persist(ctx); err != nil {
		return e.state, err
	}

	if e.state.Phase == PhaseGameOver {
		e.log.Info("game over", "user", e.userID, "score", e.state.Score, "level", e.state.Level)
	}
	return e.state, nil
}

func (e *Engine) persist(ctx context.Context) error {
	return e.store.SaveProgress(ctx, e.userID, e.state.Score, e.state.Level, e.state.Lives)
}

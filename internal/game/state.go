// Package game implements the quiz run state machine: lives, score,
// level and streak, with progress persisted after every resolution.
package game

import "mathmystery/internal/account"

// Phase is where a run currently stands.
type Phase int

const (
	// PhaseIdle is the state before Start.
	PhaseIdle Phase = iota
	// PhaseActive means a question is in front of the student.
	PhaseActive
	// PhaseResolved means the last question was answered or timed out
	// and feedback is showing. Next returns to PhaseActive.
	PhaseResolved
	// PhaseGameOver means lives ran out. Only Retry leaves this phase.
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseResolved:
		return "resolved"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Outcome is how a question was resolved.
type Outcome int

const (
	OutcomeCorrect Outcome = iota
	OutcomeWrong
	OutcomeTimeout
)

// Points awarded per correct answer is the current level times this.
const pointsPerLevel = 10

// streakStep is the streak length that triggers a level up and a bonus
// life.
const streakStep = 5

// State is a snapshot of a run. Streak is per-run and never persisted;
// the rest mirrors the student's stored progress.
type State struct {
	Phase  Phase
	Lives  int
	Score  int
	Level  int
	Streak int
}

// apply resolves one question outcome against s and returns the new
// state. A correct answer scores at the level it was asked at, before
// any level up from the streak.
func apply(s State, o Outcome) State {
	switch o {
	case OutcomeCorrect:
		s.Score += s.Level * pointsPerLevel
		s.Streak++
		if s.Streak%streakStep == 0 {
			if s.Level < account.MaxLevel {
				s.Level++
			}
			if s.Lives < account.MaxLives {
				s.Lives++
			}
		}
		s.Phase = PhaseResolved

	case OutcomeWrong, OutcomeTimeout:
		s.Streak = 0
		s.Lives--
		if s.Lives <= 0 {
			s.Lives = 0
			s.Phase = PhaseGameOver
		} else {
			s.Phase = PhaseResolved
		}
	}
	return s
}

package play

import (
	"time"

	"mathmystery/internal/game"
	"mathmystery/internal/question"
)

// startedMsg is sent when the run has loaded its persisted progress.
type startedMsg struct {
	State game.State
	Err   error
}

// questionMsg delivers a generated question. Seq ties it to the request
// that asked for it; anything but the latest sequence is dropped.
type questionMsg struct {
	Seq      uint64
	Question *question.Question
}

// hintMsg delivers a hint for the question identified by Seq.
type hintMsg struct {
	Seq  uint64
	Hint string
}

// tickMsg advances the countdown for the question identified by Seq.
type tickMsg struct {
	Seq uint64
	At  time.Time
}

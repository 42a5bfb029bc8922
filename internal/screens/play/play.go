// Package play implements a quiz run in one topic world.
package play

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"mathmystery/internal/game"
	"mathmystery/internal/question"
	"mathmystery/internal/router"
	"mathmystery/internal/screen"
	"mathmystery/internal/ui/components"
	"mathmystery/internal/ui/layout"
)

// questionTime is the per-question countdown.
const questionTime = 30 * time.Second

// PlayScreen runs questions for one topic until the student leaves or
// runs out of lives.
type PlayScreen struct {
	engine *game.Engine
	svc    *question.Service
	topic  question.Topic

	// seq numbers every question fetch. Question, hint and tick
	// messages carry the sequence they belong to; stale ones are
	// dropped on arrival.
	seq uint64

	state      game.State
	current    *question.Question
	choices    components.MultiChoice
	hint       string
	hintBusy   bool
	loading    bool
	remaining  int
	timedOut   bool
	lastPoints int
	leveledUp  bool
	errMsg     string

	gameOverMenu components.Menu
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a play screen for the given topic.
func New(engine *game.Engine, svc *question.Service, topic question.Topic) *PlayScreen {
	s := &PlayScreen{
		engine:  engine,
		svc:     svc,
		topic:   topic,
		loading: true,
	}
	s.gameOverMenu = components.NewMenu([]components.MenuItem{
		{Label: "Try again", Action: s.retryAction},
		{Label: "Back to the map", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
	})
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	return func() tea.Msg {
		state, err := s.engine.Start(context.Background())
		return startedMsg{State: state, Err: err}
	}
}

func (s *PlayScreen) Title() string {
	return string(s.topic) + " World"
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)

	case questionMsg:
		return s.handleQuestion(msg)

	case hintMsg:
		if msg.Seq == s.seq {
			s.hint = msg.Hint
			s.hintBusy = false
		}
		return s, nil

	case tickMsg:
		return s.handleTick(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *PlayScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		s.loading = false
		return s, nil
	}
	s.state = msg.State
	if s.state.Phase == game.PhaseGameOver {
		s.loading = false
		return s, nil
	}
	return s, s.fetchQuestion()
}

// fetchQuestion bumps the sequence and asks for the next question. Any
// in-flight fetch from an earlier sequence becomes an orphan.
func (s *PlayScreen) fetchQuestion() tea.Cmd {
	s.seq++
	seq := s.seq
	s.loading = true
	s.current = nil
	s.hint = ""
	s.hintBusy = false
	s.timedOut = false

	topic, level := s.topic, s.state.Level
	return func() tea.Msg {
		q := s.svc.Generate(context.Background(), topic, level)
		return questionMsg{Seq: seq, Question: q}
	}
}

func (s *PlayScreen) handleQuestion(msg questionMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != s.seq {
		return s, nil
	}
	s.loading = false
	s.current = msg.Question
	s.choices = components.NewMultiChoice(msg.Question.Options, msg.Question.CorrectAnswer)
	s.remaining = int(questionTime.Seconds())
	return s, s.tickCmd(msg.Seq)
}

func (s *PlayScreen) tickCmd(seq uint64) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{Seq: seq, At: t}
	})
}

// handleTick drives the countdown. Ticks stop counting the moment the
// question resolves; a stale tick from a previous question is ignored.
func (s *PlayScreen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != s.seq || s.current == nil || s.choices.Revealed || s.state.Phase != game.PhaseActive {
		return s, nil
	}

	s.remaining--
	if s.remaining > 0 {
		return s, s.tickCmd(msg.Seq)
	}

	// Time ran out: resolves like a wrong answer.
	s.timedOut = true
	s.choices.Revealed = true
	state, err := s.engine.Timeout(context.Background())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.state = state
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.state.Phase == game.PhaseGameOver {
		var cmd tea.Cmd
		s.gameOverMenu, cmd = s.gameOverMenu.Update(msg)
		return s, cmd
	}

	if s.loading || s.current == nil {
		return s, nil
	}

	// Feedback showing: any key moves on.
	if s.choices.Revealed {
		s.state = s.engine.Next()
		return s, s.fetchQuestion()
	}

	if msg.String() == "h" && !s.hintBusy && s.hint == "" {
		return s, s.fetchHint()
	}

	wasRevealed := s.choices.Revealed
	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	if !wasRevealed && s.choices.Revealed {
		prev := s.state
		state, err := s.engine.Answer(context.Background(), s.choices.IsCorrect())
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.state = state
		s.lastPoints = state.Score - prev.Score
		s.leveledUp = state.Level > prev.Level
	}
	return s, cmd
}

// fetchHint asks for a hint tied to the current question's sequence.
func (s *PlayScreen) fetchHint() tea.Cmd {
	s.hintBusy = true
	seq := s.seq
	text := s.current.Text
	return func() tea.Msg {
		return hintMsg{Seq: seq, Hint: s.svc.Hint(context.Background(), text)}
	}
}

func (s *PlayScreen) retryAction() tea.Cmd {
	state, err := s.engine.Retry(context.Background())
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.state = state
	return s.fetchQuestion()
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.state.Phase == game.PhaseGameOver:
		return []layout.KeyHint{
			{Key: "Up/Down", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	case s.current != nil && s.choices.Revealed:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next question"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "H", Description: "Hint"},
			{Key: "Esc", Description: "Leave"},
		}
	}
}

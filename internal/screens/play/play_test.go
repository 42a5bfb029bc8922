package play

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"mathmystery/internal/account"
	"mathmystery/internal/game"
	"mathmystery/internal/llm"
	"mathmystery/internal/question"
	"mathmystery/internal/screen"
	"mathmystery/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testQuestionJSON() json.RawMessage {
	return json.RawMessage(`{
		"text": "What is 2 + 3?",
		"options": ["4", "5", "6", "7"],
		"correct_answer": "5",
		"explanation": "Adding 2 and 3 gives 5."
	}`)
}

func testPlayScreen(t *testing.T, prog *account.Progress, responses ...llm.MockResponse) (*PlayScreen, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	if err := st.PutUser(t.Context(), &account.User{
		ID:       "s1",
		Name:     "Ana",
		Email:    "ana@school.test",
		Username: "ana",
		Role:     account.RoleStudent,
		Password: "pw",
		Progress: prog,
	}); err != nil {
		t.Fatal(err)
	}

	engine := game.NewEngine(st, nil, "s1")
	svc := question.NewService(llm.NewMockProvider(responses...), nil)
	return New(engine, svc, question.TopicAlgebra), st
}

// deliverQuestion walks the screen through start and question arrival.
func deliverQuestion(t *testing.T, s *PlayScreen) *PlayScreen {
	t.Helper()

	state, err := s.engine.Start(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	scr, cmd := s.Update(startedMsg{State: state})
	s = scr.(*PlayScreen)
	if cmd == nil {
		t.Fatal("expected a fetch command after start")
	}

	msg := cmd()
	qmsg, ok := msg.(questionMsg)
	if !ok {
		t.Fatalf("expected questionMsg, got %T", msg)
	}
	scr, _ = s.Update(qmsg)
	return scr.(*PlayScreen)
}

func TestPlayScreen_Title(t *testing.T) {
	s, _ := testPlayScreen(t, account.NewProgress())
	if s.Title() != "Algebra World" {
		t.Errorf("Title = %q, want %q", s.Title(), "Algebra World")
	}
}

func TestPlayScreen_QuestionArrives(t *testing.T) {
	s, _ := testPlayScreen(t, account.NewProgress(),
		llm.MockResponse{Content: testQuestionJSON()})
	s = deliverQuestion(t, s)

	if s.loading {
		t.Error("expected loading to end once the question arrives")
	}
	if s.current == nil {
		t.Fatal("expected a question")
	}
	if s.remaining != int(questionTime.Seconds()) {
		t.Errorf("remaining = %d, want %d", s.remaining, int(questionTime.Seconds()))
	}
}

func TestPlayScreen_StaleQuestionDiscarded(t *testing.T) {
	s, _ := testPlayScreen(t, account.NewProgress(),
		llm.MockResponse{Content: testQuestionJSON()})
	s = deliverQuestion(t, s)
	got := s.current

	// A leftover result from an earlier fetch must not replace the
	// current question.
	stale := questionMsg{Seq: s.seq - 1, Question: &question.Question{ID: "stale"}}
	scr, _ := s.Update(stale)
	s = scr.(*PlayScreen)

	if s.current != got {
		t.Error("stale question replaced the current one")
	}
}

func TestPlayScreen_CorrectAnswerScores(t *testing.T) {
	s, st := testPlayScreen(t, account.NewProgress(),
		llm.MockResponse{Content: testQuestionJSON()})
	s = deliverQuestion(t, s)

	// Option 2 is "5", the correct answer.
	scr, _ := s.Update(keyPress('2'))
	s = scr.(*PlayScreen)

	if !s.choices.Revealed {
		t.Fatal("expected answer to be revealed")
	}
	if !s.choices.IsCorrect() {
		t.Fatal("expected option 2 to be correct")
	}
	if s.state.Score != 10 {
		t.Errorf("score = %d, want 10", s.state.Score)
	}
	if s.lastPoints != 10 {
		t.Errorf("lastPoints = %d, want 10", s.lastPoints)
	}

	// The result was persisted immediately.
	u, err := st.User(t.Context(), "s1")
	if err != nil || u == nil || u.Progress == nil {
		t.Fatal("expected persisted progress")
	}
	if u.Progress.Score != 10 {
		t.Errorf("persisted score = %d, want 10", u.Progress.Score)
	}
}

func TestPlayScreen_WrongAnswerCostsALife(t *testing.T) {
	s, _ := testPlayScreen(t, account.NewProgress(),
		llm.MockResponse{Content: testQuestionJSON()})
	s = deliverQuestion(t, s)

	scr, _ := s.Update(keyPress('1'))
	s = scr.(*PlayScreen)

	if s.choices.IsCorrect() {
		t.Fatal("expected option 1 to be wrong")
	}
	if s.state.Lives != account.MaxLives-1 {
		t.Errorf("lives = %d, want %d", s.state.Lives, account.MaxLives-1)
	}
	if s.state.Streak != 0 {
		t.Errorf("streak = %d, want 0", s.state.Streak)
	}
}

func TestPlayScreen_TimeoutResolvesAsWrong(t *testing.T) {
	s, _ := testPlayScreen(t, account.NewProgress(),
		llm.MockResponse{Content: testQuestionJSON()})
	s = deliverQuestion(t, s)

	s.remaining = 1
	scr, _ := s.Update(tickMsg{Seq: s.seq, At: time.Now()})
	s = scr.(*PlayScreen)

	if !s.timedOut {
		t.Error("expected timeout")
	}
	if !s.choices.Revealed {
		t.Error("expected the answer to be revealed on timeout")
	}
	if s.state.Lives != account.MaxLives-1 {
		t.Errorf("lives = %d, want %d", s.state.Lives, account.MaxLives-1)
	}
}

func TestPlayScreen_StaleTickIgnored(t *testing.T) {
	s, _ := testPlayScreen(t, account.NewProgress(),
		llm.MockResponse{Content: testQuestionJSON()})
	s = deliverQuestion(t, s)

	before := s.remaining
	scr, _ := s.Update(tickMsg{Seq: s.seq - 1, At: time.Now()})
	s = scr.(*PlayScreen)

	if s.remaining != before {
		t.Error("stale tick advanced the countdown")
	}
}

func TestPlayScreen_GameOverAndRetry(t *testing.T) {
	s, st := testPlayScreen(t, &account.Progress{Lives: 1, Score: 80, Level: 3},
		llm.MockResponse{Content: testQuestionJSON()})
	s = deliverQuestion(t, s)

	scr, _ := s.Update(keyPress('1'))
	s = scr.(*PlayScreen)

	if s.state.Phase != game.PhaseGameOver {
		t.Fatalf("phase = %v, want game over", s.state.Phase)
	}

	u, _ := st.User(t.Context(), "s1")
	if u.Progress.Lives != 0 {
		t.Errorf("persisted lives = %d, want 0", u.Progress.Lives)
	}

	// "Try again" is the first menu item.
	var sc screen.Screen = s
	sc, cmd := sc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s = sc.(*PlayScreen)
	if cmd == nil {
		t.Fatal("expected a fetch command after retry")
	}
	if s.state.Lives != account.MaxLives {
		t.Errorf("lives after retry = %d, want %d", s.state.Lives, account.MaxLives)
	}
	if s.state.Score != 80 {
		t.Errorf("score after retry = %d, want 80", s.state.Score)
	}
}

func TestPlayScreen_StartWithZeroLivesShowsGameOver(t *testing.T) {
	s, _ := testPlayScreen(t, &account.Progress{Lives: 0, Score: 200, Level: 4})

	state, err := s.engine.Start(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	scr, cmd := s.Update(startedMsg{State: state})
	s = scr.(*PlayScreen)

	if s.state.Phase != game.PhaseGameOver {
		t.Errorf("phase = %v, want game over", s.state.Phase)
	}
	if cmd != nil {
		t.Error("expected no question fetch at game over")
	}
}

func TestPlayScreen_HintArrives(t *testing.T) {
	s, _ := testPlayScreen(t, account.NewProgress(),
		llm.MockResponse{Content: testQuestionJSON()},
		llm.MockResponse{Content: json.RawMessage(`"Think about simple addition."`)})
	s = deliverQuestion(t, s)

	scr, cmd := s.Update(keyPress('h'))
	s = scr.(*PlayScreen)
	if cmd == nil {
		t.Fatal("expected a hint fetch command")
	}
	if !s.hintBusy {
		t.Error("expected hint to be in flight")
	}

	msg := cmd()
	scr, _ = s.Update(msg)
	s = scr.(*PlayScreen)

	if s.hint != "Think about simple addition." {
		t.Errorf("hint = %q", s.hint)
	}
	if s.hintBusy {
		t.Error("expected hint fetch to be done")
	}
}

func TestPlayScreen_View(t *testing.T) {
	s, _ := testPlayScreen(t, account.NewProgress(),
		llm.MockResponse{Content: testQuestionJSON()})

	if s.View(80, 24) == "" {
		t.Error("expected non-empty loading view")
	}

	s = deliverQuestion(t, s)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty question view")
	}
}

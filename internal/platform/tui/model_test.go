package tui

import (
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/report/mocks"
	"github.com/vovakirdan/block-breaker/internal/storage"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeGame ends the round once overAt steps have run.
type fakeGame struct {
	endless bool
	overAt  int
	score   int

	steps   int
	resets  int
	resizes int
	frames  []core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }

func (g *fakeGame) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.overAt > 0 && g.steps >= g.overAt,
	}
}

func (g *fakeGame) Resize(int, int) { g.resizes++ }
func (g *fakeGame) Endless() bool   { return g.endless }

// memStore records saved scores.
type memStore struct {
	saved []storage.ScoreEntry
}

func (s *memStore) SaveScore(gameID, roundID string, score int) (int64, error) {
	s.saved = append(s.saved, storage.ScoreEntry{GameID: gameID, RoundID: roundID, Score: score})
	return int64(len(s.saved)), nil
}

func (s *memStore) HighScore(string) (int, error) { return 0, nil }

func (s *memStore) TopScores(string, int) ([]storage.ScoreEntry, error) { return s.saved, nil }

func (s *memStore) GetGameStats(gameID string) (*storage.GameStats, error) {
	return &storage.GameStats{GameID: gameID, GamesCount: len(s.saved)}, nil
}

func newTestModel(game *fakeGame, opts Options) (Model, *core.ManualClock) {
	clock := core.NewManualClock(epoch)
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: 1, Clock: clock}, opts)
	m.Init()
	return m, clock
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelReportsAndQuitsWhenRoundEnds(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Report(gomock.Any(), 42).Return(nil).Times(1)

	store := &memStore{}
	game := &fakeGame{overAt: 2, score: 42}
	m, _ := newTestModel(game, Options{Reporter: reporter, Store: store})

	m, cmd := step(t, m, TickMsg(epoch))
	if m.Finished() || cmd == nil {
		t.Fatal("round should still be running after one tick")
	}

	m, cmd = step(t, m, TickMsg(epoch))
	if !m.Finished() {
		t.Fatal("round should be finished")
	}
	if len(store.saved) != 1 || store.saved[0].Score != 42 || store.saved[0].RoundID != m.RoundID() {
		t.Errorf("score not saved locally: %+v", store.saved)
	}

	msg := cmd()
	if _, ok := msg.(reportDoneMsg); !ok {
		t.Fatalf("expected reportDoneMsg, got %T", msg)
	}

	// Ticks after the round ends do nothing
	m, after := step(t, m, TickMsg(epoch))
	if after != nil || game.steps != 2 {
		t.Error("finished round kept ticking")
	}

	m, cmd = step(t, m, msg)
	if !isQuit(cmd) || !m.IsQuitting() {
		t.Error("model should quit after reporting")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelQuitsWhenReportFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Report(gomock.Any(), 5).Return(errors.New("connection refused"))

	m, _ := newTestModel(&fakeGame{overAt: 1, score: 5}, Options{Reporter: reporter})

	m, cmd := step(t, m, TickMsg(epoch))
	_, cmd = step(t, m, cmd())
	if !isQuit(cmd) {
		t.Error("report failure should not keep the program running")
	}
}

func TestModelWithoutReporter(t *testing.T) {
	m, _ := newTestModel(&fakeGame{overAt: 1, score: 3}, Options{})

	m, cmd := step(t, m, TickMsg(epoch))
	msg := cmd()
	done, ok := msg.(reportDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("expected clean reportDoneMsg, got %#v", msg)
	}
	_, cmd = step(t, m, msg)
	if !isQuit(cmd) {
		t.Error("expected quit")
	}
}

func TestModelHeldKeys(t *testing.T) {
	game := &fakeGame{}
	m, clock := newTestModel(game, Options{HoldWindow: 150 * time.Millisecond})

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = step(t, m, TickMsg(epoch))
	if !game.frames[0].Has(core.ActionLeft) {
		t.Error("left should be held right after the press")
	}

	clock.Advance(100 * time.Millisecond)
	m, _ = step(t, m, TickMsg(epoch))
	if !game.frames[1].Has(core.ActionLeft) {
		t.Error("left should still be held inside the hold window")
	}

	clock.Advance(100 * time.Millisecond)
	m, _ = step(t, m, TickMsg(epoch))
	if game.frames[2].Has(core.ActionLeft) {
		t.Error("left should be released after the hold window")
	}

	m, _ = step(t, m, keyRune('p'))
	step(t, m, TickMsg(epoch))
	if !game.frames[3].Has(core.ActionPause) {
		t.Error("pause should reach the game as held input")
	}
}

func TestModelQuitKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl) // Quitting must not report

	store := &memStore{}
	m, _ := newTestModel(&fakeGame{score: 9}, Options{Reporter: reporter, Store: store})
	m, _ = step(t, m, TickMsg(epoch))

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) || !m.IsQuitting() {
		t.Error("ctrl+c should quit")
	}
	if len(store.saved) != 0 {
		t.Error("abandoned timed round should not be saved")
	}
}

func TestModelSavesAbandonedEndlessRound(t *testing.T) {
	store := &memStore{}
	m, _ := newTestModel(&fakeGame{endless: true, score: 17}, Options{Store: store})
	m, _ = step(t, m, TickMsg(epoch))

	_, cmd := step(t, m, keyRune('q'))
	if !isQuit(cmd) {
		t.Fatal("q should quit")
	}
	if len(store.saved) != 1 || store.saved[0].Score != 17 {
		t.Errorf("endless score not saved: %+v", store.saved)
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	game := &fakeGame{}
	m, _ := newTestModel(game, Options{})

	step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if game.resizes != 1 || game.resets != 1 {
		t.Errorf("resize should re-layout without reset: resizes=%d resets=%d", game.resizes, game.resets)
	}
}

func TestModelRestartWhilePaused(t *testing.T) {
	game := &fakeGame{}
	m, _ := newTestModel(game, Options{})
	m.gameState.Paused = true
	first := m.RoundID()

	m, _ = step(t, m, keyRune('r'))
	if game.resets != 2 {
		t.Errorf("restart should reset the game, resets=%d", game.resets)
	}
	if m.RoundID() == first {
		t.Error("restart should start a new round id")
	}
}

func TestModelBackToMenu(t *testing.T) {
	game := &fakeGame{}

	m, _ := newTestModel(game, Options{})
	m.gameState.Paused = true
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("standalone rounds have no menu to return to")
	}

	m, _ = newTestModel(game, Options{AllowBack: true})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back only works while paused")
	}

	m.gameState.Paused = true
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused should return to the menu")
	}
}

package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/boddenberg/firefly-engine-go/internal/domain"
	"github.com/boddenberg/firefly-engine-go/internal/engine"
	"github.com/boddenberg/firefly-engine-go/internal/quiz"
)

type fixedRand struct{ v float64 }

func (f fixedRand) Float64() float64 { return f.v }

// memorySaves is an in-memory port.PlaythroughStore for shell tests.
type memorySaves struct {
	items []domain.Playthrough
}

func (m *memorySaves) Save(p *domain.Playthrough) error {
	m.items = append(m.items, *p)
	return nil
}

func (m *memorySaves) List() ([]domain.Playthrough, error) {
	return m.items, nil
}

func (m *memorySaves) Delete(id uuid.UUID) error {
	kept := m.items[:0]
	for _, p := range m.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.items = kept
	return nil
}

func newShell(t *testing.T, saves *memorySaves, input string) (*shell, *bytes.Buffer) {
	t.Helper()
	rnd := fixedRand{v: 0.5}
	newSession := func() (*domain.Account, *engine.ReturnTable) {
		account := domain.NewStartingAccount(
			decimal.NewFromInt(10000), decimal.NewFromFloat(0.05), rnd.Float64)
		return account, engine.NewReturnTable(engine.ReturnRange{Min: 0.05, Max: 0.05})
	}
	account, table := newSession()
	sim := engine.NewSimulator(account, table, rnd, zap.NewNop())

	out := &bytes.Buffer{}
	return &shell{
		sim:        sim,
		saves:      saves,
		scores:     quiz.NewScoreStore(),
		bank:       defaultQuizBank(),
		newSession: newSession,
		in:         bufio.NewScanner(strings.NewReader(input)),
		out:        out,
		logger:     zap.NewNop(),
	}, out
}

func TestShell_ChatFallsThrough(t *testing.T) {
	sh, _ := newShell(t, &memorySaves{}, "")

	for _, line := range []string{"what is my balance", "deposit 500", ""} {
		if sh.handle(line) {
			t.Errorf("%q: expected chat input to fall through", line)
		}
	}
}

func TestShell_QuizPerfectRunUnlocksAchievement(t *testing.T) {
	// Correct one-based answers for the built-in bank.
	sh, out := newShell(t, &memorySaves{}, "1\n2\n3\n1\n2\n")

	if !sh.handle("quiz") {
		t.Fatal("expected quiz command to be handled")
	}

	if got := sh.scores.Best(basicsQuizID); got != len(sh.bank) {
		t.Errorf("expected best score %d recorded, got %d", len(sh.bank), got)
	}
	if !strings.Contains(out.String(), "Financial Scholar") {
		t.Errorf("expected the perfect-score unlock message, got %q", out.String())
	}
	unlocked := false
	for _, a := range sh.sim.Account().Achievements {
		if a.Title == "Financial Scholar" && a.Unlocked {
			unlocked = true
		}
	}
	if !unlocked {
		t.Error("expected the quiz achievement to be unlocked")
	}
}

func TestShell_QuizFailedRunKeepsBestScore(t *testing.T) {
	sh, out := newShell(t, &memorySaves{}, "2\n1\n1\n2\n1\n")
	sh.scores.Record(basicsQuizID, 4)

	sh.handle("quiz")

	if got := sh.scores.Best(basicsQuizID); got != 4 {
		t.Errorf("expected previous best 4 kept, got %d", got)
	}
	if strings.Contains(out.String(), "You passed!") {
		t.Error("expected an all-wrong run not to pass")
	}
}

func TestShell_ResetStartsFresh(t *testing.T) {
	sh, _ := newShell(t, &memorySaves{}, "")
	if _, err := sh.sim.Advance(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sh.handle("reset")

	if sh.sim.CurrentYear() != 0 {
		t.Errorf("expected year 0 after reset, got %v", sh.sim.CurrentYear())
	}
	if len(sh.sim.Earnings()) != 0 {
		t.Error("expected an empty earnings series after reset")
	}
}

func TestShell_LoadAndDeleteSaves(t *testing.T) {
	saves := &memorySaves{}
	sh, out := newShell(t, saves, "")

	if _, err := sh.sim.Advance(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := saves.Save(sh.sim.Snapshot(time.Now())); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	sh.handle("reset")

	sh.handle("load 1")
	if sh.sim.CurrentYear() != 7 {
		t.Errorf("expected year 7 after load, got %v", sh.sim.CurrentYear())
	}

	sh.handle("delete 1")
	if len(saves.items) != 0 {
		t.Errorf("expected the save to be deleted, %d remain", len(saves.items))
	}

	sh.handle("load 1")
	if !strings.Contains(out.String(), "No saved playthroughs yet.") {
		t.Errorf("expected the empty-saves message, got %q", out.String())
	}
}

func TestShell_SaveIndexValidation(t *testing.T) {
	saves := &memorySaves{}
	sh, out := newShell(t, saves, "")
	if err := saves.Save(sh.sim.Snapshot(time.Now())); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	sh.handle("load")
	sh.handle("load two")
	sh.handle("load 5")

	text := out.String()
	if !strings.Contains(text, "Usage: load <number>") {
		t.Errorf("expected usage hints, got %q", text)
	}
	if !strings.Contains(text, "There is no save 5.") {
		t.Errorf("expected an out-of-range message, got %q", text)
	}
	if len(saves.items) != 1 {
		t.Error("expected the save list to be untouched")
	}
}

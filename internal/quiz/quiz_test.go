package quiz_test

import (
	"testing"

	"github.com/boddenberg/firefly-engine-go/internal/quiz"
)

func bank() []quiz.Question {
	return []quiz.Question{
		{Prompt: "What is a budget?", Choices: []string{"A plan for money", "A stock", "A loan"}, Answer: 0},
		{Prompt: "What does a dividend pay?", Choices: []string{"Nothing", "A share of profits", "Rent"}, Answer: 1},
		{Prompt: "What grows with compound interest?", Choices: []string{"Debt only", "Nothing", "Interest on interest"}, Answer: 2},
		{Prompt: "What reduces risk?", Choices: []string{"Diversification", "One big bet", "Ignoring it"}, Answer: 0},
		{Prompt: "What is a stock?", Choices: []string{"A bond", "Ownership in a company", "A savings account"}, Answer: 1},
	}
}

func TestSession_WalksEveryQuestion(t *testing.T) {
	s := quiz.NewSession(bank())

	seen := 0
	for {
		q, ok := s.Current()
		if !ok {
			break
		}
		seen++
		s.Submit(q.Answer)
	}

	if seen != s.Total() {
		t.Errorf("expected %d questions, saw %d", s.Total(), seen)
	}
	if !s.Done() {
		t.Error("expected session to be done")
	}
	if s.Score() != s.Total() {
		t.Errorf("expected perfect score, got %d/%d", s.Score(), s.Total())
	}
	if !s.Perfect() {
		t.Error("expected Perfect for an all-correct run")
	}
}

func TestSession_SubmitReportsCorrectness(t *testing.T) {
	s := quiz.NewSession(bank())

	if !s.Submit(0) {
		t.Error("expected correct answer to report true")
	}
	if s.Submit(0) {
		t.Error("expected wrong answer to report false")
	}
	if s.Score() != 1 {
		t.Errorf("expected score 1, got %d", s.Score())
	}
}

func TestSession_SubmitPastEnd(t *testing.T) {
	s := quiz.NewSession(bank())
	for !s.Done() {
		s.Submit(0)
	}

	if s.Submit(0) {
		t.Error("expected submit past the end to report false")
	}
	if s.Score() > s.Total() {
		t.Errorf("score overflowed: %d/%d", s.Score(), s.Total())
	}
}

func TestSession_PassBar(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		passed  bool
	}{
		{"zero correct", 0, false},
		{"two of five", 2, false},
		{"three of five", 3, true},
		{"all correct", 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quiz.NewSession(bank())
			for i := 0; !s.Done(); i++ {
				q, _ := s.Current()
				if i < tt.correct {
					s.Submit(q.Answer)
				} else {
					s.Submit((q.Answer + 1) % len(q.Choices))
				}
			}
			if s.Passed() != tt.passed {
				t.Errorf("expected passed=%v with %d correct", tt.passed, tt.correct)
			}
		})
	}
}

func TestSession_EmptyBank(t *testing.T) {
	s := quiz.NewSession(nil)

	if _, ok := s.Current(); ok {
		t.Error("expected no current question")
	}
	if !s.Done() {
		t.Error("expected empty session to be done")
	}
	if s.Passed() {
		t.Error("an empty quiz cannot be passed")
	}
	if s.Perfect() {
		t.Error("an empty quiz cannot be perfect")
	}
}

func TestScoreStore_KeepsBest(t *testing.T) {
	store := quiz.NewScoreStore()

	if got := store.Best("basics"); got != 0 {
		t.Errorf("expected 0 for an unplayed quiz, got %d", got)
	}

	store.Record("basics", 3)
	store.Record("basics", 5)
	store.Record("basics", 2)

	if got := store.Best("basics"); got != 5 {
		t.Errorf("expected best 5, got %d", got)
	}
}

func TestScoreStore_IsolatedInstances(t *testing.T) {
	a := quiz.NewScoreStore()
	b := quiz.NewScoreStore()

	a.Record("basics", 4)

	if got := b.Best("basics"); got != 0 {
		t.Errorf("expected separate stores to be independent, got %d", got)
	}
}

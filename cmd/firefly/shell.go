package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/boddenberg/firefly-engine-go/internal/chat/port"
	"github.com/boddenberg/firefly-engine-go/internal/domain"
	"github.com/boddenberg/firefly-engine-go/internal/engine"
	"github.com/boddenberg/firefly-engine-go/internal/quiz"
)

// basicsQuizID keys the built-in quiz in the best-score store.
const basicsQuizID = "financial-basics"

// shell owns the UI-level commands that sit outside the chat interpreter:
// the quiz, session reset, and the saved-playthrough screens.
type shell struct {
	sim        *engine.Simulator
	saves      port.PlaythroughStore
	scores     *quiz.ScoreStore
	bank       []quiz.Question
	newSession func() (*domain.Account, *engine.ReturnTable)
	in         *bufio.Scanner
	out        io.Writer
	logger     *zap.Logger
}

// handle intercepts shell commands. It returns false when the line is chat
// input for the interpreter.
func (sh *shell) handle(line string) bool {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "quiz":
		sh.runQuiz()
	case "reset":
		sh.reset()
	case "saves":
		sh.listSaves()
	case "load":
		sh.loadSave(fields)
	case "delete":
		sh.deleteSave(fields)
	default:
		return false
	}
	return true
}

func (sh *shell) reset() {
	account, table := sh.newSession()
	sh.sim.Reset(account, table)
	fmt.Fprintln(sh.out, "Started a fresh playthrough. Good luck!")
}

func (sh *shell) listSaves() {
	list, ok := sh.loadList()
	if !ok || len(list) == 0 {
		return
	}
	for i, p := range list {
		fmt.Fprintf(sh.out, "%d) year %d, net worth $%s, saved %s\n",
			i+1, p.Year, p.NetWorth.StringFixed(2), p.Date.Format("2006-01-02"))
	}
}

func (sh *shell) loadSave(fields []string) {
	p, ok := sh.saveAt(fields)
	if !ok {
		return
	}
	sh.sim.Restore(p)
	fmt.Fprintf(sh.out, "Loaded playthrough from year %d.\n", p.Year)
}

func (sh *shell) deleteSave(fields []string) {
	p, ok := sh.saveAt(fields)
	if !ok {
		return
	}
	if err := sh.saves.Delete(p.ID); err != nil {
		sh.logger.Error("failed to delete playthrough", zap.Error(err))
		fmt.Fprintln(sh.out, "Sorry, I couldn't delete that playthrough.")
		return
	}
	fmt.Fprintln(sh.out, "Playthrough deleted.")
}

// saveAt resolves "load 2" / "delete 2" to a playthrough from the saves
// list, one-based as printed by listSaves.
func (sh *shell) saveAt(fields []string) (*domain.Playthrough, bool) {
	if len(fields) != 2 {
		fmt.Fprintf(sh.out, "Usage: %s <number> (see 'saves' for the list)\n", fields[0])
		return nil, false
	}
	idx, err := strconv.Atoi(fields[1])
	if err != nil {
		fmt.Fprintf(sh.out, "Usage: %s <number> (see 'saves' for the list)\n", fields[0])
		return nil, false
	}
	list, ok := sh.loadList()
	if !ok {
		return nil, false
	}
	if idx < 1 || idx > len(list) {
		fmt.Fprintf(sh.out, "There is no save %d. You have %d saved playthroughs.\n", idx, len(list))
		return nil, false
	}
	return &list[idx-1], true
}

func (sh *shell) loadList() ([]domain.Playthrough, bool) {
	list, err := sh.saves.List()
	if err != nil {
		sh.logger.Error("failed to list playthroughs", zap.Error(err))
		fmt.Fprintln(sh.out, "Sorry, I couldn't read your saved playthroughs.")
		return nil, false
	}
	if len(list) == 0 {
		fmt.Fprintln(sh.out, "No saved playthroughs yet.")
	}
	return list, true
}

// runQuiz walks the built-in question bank, records the best score and
// unlocks the quiz achievement on a perfect run.
func (sh *shell) runQuiz() {
	session := quiz.NewSession(sh.bank)
	for {
		q, ok := session.Current()
		if !ok {
			break
		}
		fmt.Fprintln(sh.out, q.Prompt)
		for i, c := range q.Choices {
			fmt.Fprintf(sh.out, "  %d) %s\n", i+1, c)
		}
		fmt.Fprint(sh.out, "answer> ")
		if !sh.in.Scan() {
			return
		}
		choice, err := strconv.Atoi(strings.TrimSpace(sh.in.Text()))
		if err != nil || choice < 1 || choice > len(q.Choices) {
			fmt.Fprintln(sh.out, "Please answer with the choice number.")
			continue
		}
		if session.Submit(choice - 1) {
			fmt.Fprintln(sh.out, "Correct!")
		} else {
			fmt.Fprintln(sh.out, "Not quite.")
		}
	}

	fmt.Fprintf(sh.out, "You scored %d out of %d.\n", session.Score(), session.Total())
	if session.Passed() {
		fmt.Fprintln(sh.out, "You passed!")
	}
	sh.scores.Record(basicsQuizID, session.Score())
	if session.Perfect() {
		sh.sim.Account().UnlockQuizAchievement(time.Now())
		fmt.Fprintln(sh.out, "Perfect score! Achievement unlocked: Financial Scholar.")
	}
}

// defaultQuizBank is the built-in financial-basics quiz.
func defaultQuizBank() []quiz.Question {
	return []quiz.Question{
		{
			Prompt:  "What is a budget?",
			Choices: []string{"A plan for your money", "A type of stock", "A bank fee"},
			Answer:  0,
		},
		{
			Prompt:  "What does a dividend pay you?",
			Choices: []string{"Nothing", "A share of company profits", "Interest on a loan"},
			Answer:  1,
		},
		{
			Prompt:  "What is compound interest?",
			Choices: []string{"A one-time bonus", "A bank penalty", "Interest earned on interest"},
			Answer:  2,
		},
		{
			Prompt:  "How does diversification help?",
			Choices: []string{"It spreads risk across assets", "It guarantees profits", "It avoids all taxes"},
			Answer:  0,
		},
		{
			Prompt:  "Higher potential returns usually come with...",
			Choices: []string{"Lower risk", "Higher risk", "No risk"},
			Answer:  1,
		},
	}
}

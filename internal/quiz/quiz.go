// Package quiz implements the quiz engine: sessions over a caller-supplied
// question bank, and an explicit best-score store. The store is an object
// passed by reference, never process-wide state.
package quiz

import "sync"

// Question is one multiple-choice question. Answer indexes into Choices.
type Question struct {
	Prompt  string
	Choices []string
	Answer  int
}

// Session walks a question bank once, tracking the running score.
type Session struct {
	questions []Question
	index     int
	score     int
}

// NewSession starts a quiz over the given bank.
func NewSession(questions []Question) *Session {
	return &Session{questions: questions}
}

// Current returns the active question, or false once the quiz is done.
func (s *Session) Current() (Question, bool) {
	if s.index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Submit answers the active question and advances. It reports whether the
// choice was correct; submitting past the end reports false.
func (s *Session) Submit(choice int) bool {
	q, ok := s.Current()
	if !ok {
		return false
	}
	s.index++
	if choice == q.Answer {
		s.score++
		return true
	}
	return false
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool { return s.index >= len(s.questions) }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Total returns the question count.
func (s *Session) Total() int { return len(s.questions) }

// Passed reports whether the session cleared the pass bar: at least three
// correct out of five, scaled to the bank size.
func (s *Session) Passed() bool {
	if len(s.questions) == 0 {
		return false
	}
	return s.score*5 >= len(s.questions)*3
}

// Perfect reports whether every answer was correct.
func (s *Session) Perfect() bool {
	return len(s.questions) > 0 && s.score == len(s.questions)
}

// ScoreStore keeps the best score per quiz. It is safe for concurrent use
// and meant to be handed to whoever runs quizzes (no hidden singleton).
type ScoreStore struct {
	mu   sync.Mutex
	best map[string]int
}

// NewScoreStore creates an empty best-score store.
func NewScoreStore() *ScoreStore {
	return &ScoreStore{best: make(map[string]int)}
}

// Best returns the best recorded score for a quiz, zero if never played.
func (st *ScoreStore) Best(quizID string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.best[quizID]
}

// Record keeps score if it beats the previous best for the quiz.
func (st *ScoreStore) Record(quizID string, score int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if score > st.best[quizID] {
		st.best[quizID] = score
	}
}

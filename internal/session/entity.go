package session

import (
	"time"

	"github.com/saulo-duarte/quizzy/internal/catalog"
	"github.com/saulo-duarte/quizzy/internal/scoring"
	"github.com/saulo-duarte/quizzy/internal/timer"
)

// Settings is the process-scoped configuration handed to every session.
type Settings struct {
	DarkMode    bool
	RevealDelay time.Duration
}

// Listener receives presentation hooks. All calls happen on the goroutine
// that drives the session.
type Listener interface {
	QuestionStarted(q catalog.Question, number, total, budget int)
	Tick(remaining int)
	AnswerLocked(q catalog.Question, o timer.Outcome)
	Completed(quiz *catalog.Quiz, result *scoring.Result, summary scoring.Summary)
}

type NopListener struct{}

func (NopListener) QuestionStarted(catalog.Question, int, int, int) {}
func (NopListener) Tick(int) {}
func (NopListener) AnswerLocked(catalog.Question, timer.Outcome) {}
func (NopListener) Completed(*catalog.Quiz, *scoring.Result, scoring.Summary) {}

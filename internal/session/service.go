package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizzy/internal/catalog"
	"github.com/saulo-duarte/quizzy/internal/config"
	"github.com/saulo-duarte/quizzy/internal/scoring"
	"github.com/saulo-duarte/quizzy/internal/timer"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrInvalidOption     = errors.New("option index out of range")
	ErrClosed            = errors.New("session closed")
	ErrQuizNotFound      = catalog.ErrQuizNotFound
)

type Session interface {
	SelectQuiz(ctx context.Context, quizID string) error
	ChooseAnswer(index int) (accepted bool, err error)
	Retry() error
	NewQuiz() error
	Abandon() error
	Close()

	ID() uuid.UUID
	State() State
	Quiz() *catalog.Quiz
	QuestionIndex() int
	CurrentQuestion() (catalog.Question, bool)
	Remaining() int
	Attempts() []scoring.Attempt
	Result() *scoring.Result
	Settings() Settings
	SetDarkMode(dark bool)
}

type Option func(*session)

func WithClock(now func() time.Time) Option {
	return func(s *session) {
		if now != nil {
			s.now = now
		}
	}
}

func WithListener(l Listener) Option {
	return func(s *session) {
		if l != nil {
			s.listener = l
		}
	}
}

type session struct {
	id        uuid.UUID
	ctx       context.Context
	repo      catalog.CatalogRepository
	scheduler timer.Scheduler
	settings  Settings
	now       func() time.Time
	listener  Listener

	state    State
	closed   bool
	quiz     *catalog.Quiz
	index    int
	attempts []scoring.Attempt
	result   *scoring.Result
	timer    *timer.QuestionTimer
}

// NewSession starts in StateSelecting. The session is not safe for
// concurrent use; drive it from the goroutine that runs the scheduler.
func NewSession(ctx context.Context, repo catalog.CatalogRepository, scheduler timer.Scheduler, settings Settings, opts ...Option) Session {
	id := uuid.New()
	s := &session{
		id:        id,
		ctx:       config.ContextWithSessionID(ctx, id.String()),
		repo:      repo,
		scheduler: scheduler,
		settings:  settings,
		now:       time.Now,
		listener:  NopListener{},
		state:     StateSelecting,
	}
	for _, opt := range opts {
		opt(s)
	}

	config.WithContext(s.ctx).WithField("dark_mode", settings.DarkMode).Debug("Sessão criada")
	return s
}

func (s *session) log() *logrus.Entry {
	entry := config.WithContext(s.ctx).WithField("state", s.state)
	if s.quiz != nil {
		entry = entry.WithField("quiz_id", s.quiz.ID)
	}
	return entry
}

func (s *session) transitionError(action string) error {
	if s.closed {
		return ErrClosed
	}
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, s.state)
}

func (s *session) SelectQuiz(ctx context.Context, quizID string) error {
	if s.closed || s.state != StateSelecting {
		return s.transitionError("select a quiz")
	}

	quiz, err := s.repo.GetByID(quizID)
	if err != nil {
		config.WithContext(s.ctx).WithError(err).Warnf("Quiz %q não encontrado", quizID)
		return err
	}

	return s.begin(quiz)
}

func (s *session) Retry() error {
	if s.closed || s.state != StateReviewing {
		return s.transitionError("retry")
	}
	s.log().Info("Reiniciando quiz")
	return s.begin(s.quiz)
}

func (s *session) NewQuiz() error {
	if s.closed || s.state != StateReviewing {
		return s.transitionError("pick a new quiz")
	}
	s.reset()
	return nil
}

func (s *session) Abandon() error {
	if s.closed || s.state != StatePlaying {
		return s.transitionError("abandon")
	}
	s.log().WithField("question_index", s.index).Info("Quiz abandonado")
	s.stopTimer()
	s.reset()
	return nil
}

func (s *session) Close() {
	if s.closed {
		return
	}
	s.stopTimer()
	s.closed = true
	s.log().Debug("Sessão encerrada")
}

func (s *session) ChooseAnswer(index int) (bool, error) {
	if s.closed || s.state != StatePlaying || s.timer == nil {
		return false, s.transitionError("answer")
	}

	q := s.quiz.Questions[s.index]
	if index < 0 || index >= len(q.Options) {
		return false, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidOption, index, len(q.Options))
	}

	accepted := s.timer.Select(index)
	if !accepted {
		s.log().WithField("question_id", q.ID).Debug("Resposta ignorada, pergunta já travada")
	}
	return accepted, nil
}

func (s *session) begin(quiz *catalog.Quiz) error {
	if quiz == nil || len(quiz.Questions) == 0 {
		return scoring.ErrEmptyQuiz
	}

	s.stopTimer()
	s.quiz = quiz
	s.index = 0
	s.attempts = make([]scoring.Attempt, 0, len(quiz.Questions))
	s.result = nil
	s.state = StatePlaying

	s.log().WithFields(logrus.Fields{
		"questions":         len(quiz.Questions),
		"time_per_question": quiz.TimePerQuestion,
	}).Info("Quiz iniciado")

	return s.startQuestion()
}

func (s *session) startQuestion() error {
	q := s.quiz.Questions[s.index]

	var qt *timer.QuestionTimer
	qt, err := timer.NewQuestionTimer(s.scheduler, timer.Config{
		Budget:      s.quiz.TimePerQuestion,
		RevealDelay: s.settings.RevealDelay,
		OnTick:      s.listener.Tick,
		OnLock: func(o timer.Outcome) {
			s.listener.AnswerLocked(q, o)
		},
		OnReport: func(o timer.Outcome) {
			s.handleOutcome(qt, o)
		},
	})
	if err != nil {
		s.log().WithError(err).Error("Falha ao criar timer da pergunta")
		s.reset()
		return err
	}

	s.timer = qt
	s.listener.QuestionStarted(q, s.index+1, len(s.quiz.Questions), s.quiz.TimePerQuestion)
	// The listener may have closed or abandoned the session.
	if s.timer != qt {
		return nil
	}
	return qt.Start()
}

func (s *session) handleOutcome(qt *timer.QuestionTimer, o timer.Outcome) {
	if s.closed || s.state != StatePlaying || s.timer != qt {
		s.log().Warn("Resultado de pergunta descartado, sessão não está mais ativa")
		return
	}
	s.timer = nil

	q := s.quiz.Questions[s.index]
	attempt := scoring.NewAttempt(q, o.Selected, o.Elapsed)
	s.attempts = append(s.attempts, attempt)

	s.log().WithFields(logrus.Fields{
		"question_id": q.ID,
		"correct":     attempt.IsCorrect,
		"time_spent":  attempt.TimeSpent,
		"timed_out":   o.TimedOut(),
	}).Debug("Tentativa registrada")

	if s.index < len(s.quiz.Questions)-1 {
		s.index++
		if err := s.startQuestion(); err != nil {
			s.log().WithError(err).Error("Falha ao avançar para a próxima pergunta")
		}
		return
	}

	s.complete()
}

func (s *session) complete() {
	result, err := scoring.BuildResult(s.quiz, s.attempts, s.now())
	if err != nil {
		s.log().WithError(err).Error("Falha ao montar resultado do quiz")
		s.reset()
		return
	}

	s.index = len(s.attempts)
	s.result = result
	s.state = StateReviewing
	summary := scoring.Summarize(result)

	s.log().WithFields(logrus.Fields{
		"score":      result.TotalScore,
		"total":      result.TotalQuestions,
		"percentage": summary.Percentage,
		"tier":       summary.Tier,
	}).Info("Quiz concluído")

	s.listener.Completed(s.Quiz(), s.Result(), summary)
}

func (s *session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *session) reset() {
	s.state = StateSelecting
	s.quiz = nil
	s.index = 0
	s.attempts = nil
	s.result = nil
}

func (s *session) ID() uuid.UUID {
	return s.id
}

func (s *session) State() State {
	return s.state
}

func (s *session) Quiz() *catalog.Quiz {
	if s.quiz == nil {
		return nil
	}
	q := s.quiz.Clone()
	return &q
}

func (s *session) QuestionIndex() int {
	return s.index
}

func (s *session) CurrentQuestion() (catalog.Question, bool) {
	if s.state != StatePlaying || s.quiz == nil {
		return catalog.Question{}, false
	}
	return s.quiz.Questions[s.index], true
}

func (s *session) Remaining() int {
	if s.timer == nil {
		return 0
	}
	return s.timer.Remaining()
}

func (s *session) Attempts() []scoring.Attempt {
	return append([]scoring.Attempt(nil), s.attempts...)
}

func (s *session) Result() *scoring.Result {
	if s.result == nil {
		return nil
	}
	r := *s.result
	r.Attempts = append([]scoring.Attempt(nil), s.result.Attempts...)
	return &r
}

func (s *session) Settings() Settings {
	return s.settings
}

func (s *session) SetDarkMode(dark bool) {
	s.settings.DarkMode = dark
}

package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saulo-duarte/quizzy/internal/catalog"
	"github.com/saulo-duarte/quizzy/internal/scoring"
	"github.com/saulo-duarte/quizzy/internal/session"
	"github.com/saulo-duarte/quizzy/internal/timer"
)

const reveal = 1500 * time.Millisecond

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

type spyListener struct {
	session.NopListener
	started   []int
	locked    []timer.Outcome
	completed []*scoring.Result
	summaries []scoring.Summary
}

func (l *spyListener) QuestionStarted(_ catalog.Question, number, _, _ int) {
	l.started = append(l.started, number)
}

func (l *spyListener) AnswerLocked(_ catalog.Question, o timer.Outcome) {
	l.locked = append(l.locked, o)
}

func (l *spyListener) Completed(_ *catalog.Quiz, r *scoring.Result, s scoring.Summary) {
	l.completed = append(l.completed, r)
	l.summaries = append(l.summaries, s)
}

func testRepo(t *testing.T) catalog.CatalogRepository {
	t.Helper()
	quiz := catalog.Quiz{
		ID:              "five",
		Title:           "Five",
		Category:        "General",
		TimePerQuestion: 30,
	}
	for i := 0; i < 5; i++ {
		quiz.Questions = append(quiz.Questions, catalog.Question{
			ID:            i + 1,
			Prompt:        "pergunta",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
			Difficulty:    catalog.DifficultyMedium,
		})
	}
	repo, err := catalog.NewRepository([]catalog.Quiz{quiz})
	if err != nil {
		t.Fatalf("NewRepository falhou: %v", err)
	}
	return repo
}

func newSession(t *testing.T) (session.Session, *timer.ManualScheduler, *spyListener) {
	t.Helper()
	sched := timer.NewManualScheduler()
	spy := &spyListener{}
	s := session.NewSession(context.Background(), testRepo(t), sched,
		session.Settings{RevealDelay: reveal},
		session.WithClock(func() time.Time { return fixedNow }),
		session.WithListener(spy),
	)
	t.Cleanup(s.Close)
	return s, sched, spy
}

func answer(t *testing.T, s session.Session, sched *timer.ManualScheduler, after time.Duration, index int) {
	t.Helper()
	sched.Advance(after)
	accepted, err := s.ChooseAnswer(index)
	if err != nil {
		t.Fatalf("ChooseAnswer falhou: %v", err)
	}
	if !accepted {
		t.Fatalf("Resposta %d deveria ser aceita", index)
	}
	sched.Advance(reveal)
}

func TestFullSessionFourCorrectThenTimeout(t *testing.T) {
	s, sched, spy := newSession(t)

	if s.State() != session.StateSelecting {
		t.Fatalf("Estado inicial deveria ser selecting, Recebido: %s", s.State())
	}
	if err := s.SelectQuiz(context.Background(), "five"); err != nil {
		t.Fatalf("SelectQuiz falhou: %v", err)
	}

	for i := 0; i < 4; i++ {
		if s.QuestionIndex() != i || len(s.Attempts()) != i {
			t.Fatalf("Invariante violada: índice %d, tentativas %d", s.QuestionIndex(), len(s.Attempts()))
		}
		q, ok := s.CurrentQuestion()
		if !ok {
			t.Fatal("Deveria haver uma pergunta atual")
		}
		answer(t, s, sched, 5*time.Second, q.CorrectAnswer)
	}

	// question 5 times out
	sched.Advance(30 * time.Second)
	if s.State() != session.StatePlaying {
		t.Fatalf("Sessão não deveria concluir antes da revelação, estado: %s", s.State())
	}
	sched.Advance(reveal)

	if s.State() != session.StateReviewing {
		t.Fatalf("Estado esperado reviewing, Recebido: %s", s.State())
	}

	r := s.Result()
	if r == nil {
		t.Fatal("Resultado não deveria ser nil")
	}
	if r.TotalScore != 4 || r.TotalQuestions != 5 || len(r.Attempts) != 5 {
		t.Errorf("Resultado inesperado: %+v", r)
	}
	last := r.Attempts[4]
	if last.SelectedAnswer != nil || last.IsCorrect || last.TimeSpent != 30 {
		t.Errorf("Última tentativa deveria ser timeout: %+v", last)
	}
	if !r.CompletedAt.Equal(fixedNow) {
		t.Errorf("CompletedAt incorreto: %v", r.CompletedAt)
	}
	for i, a := range r.Attempts {
		if a.QuestionID != i+1 {
			t.Errorf("Tentativa %d desalinhada: question_id %d", i, a.QuestionID)
		}
		if a.TimeSpent < 0 || a.TimeSpent > 30 {
			t.Errorf("Tempo gasto fora do intervalo: %d", a.TimeSpent)
		}
	}

	if len(spy.completed) != 1 || spy.summaries[0].Percentage != 80 || spy.summaries[0].Tier != scoring.TierTop {
		t.Errorf("Listener não recebeu o resumo esperado: %+v", spy.summaries)
	}
	if len(spy.started) != 5 || spy.started[4] != 5 {
		t.Errorf("Listener deveria ver 5 perguntas: %v", spy.started)
	}
}

func TestAnswerAfterTwelveSecondsRecordsTwelve(t *testing.T) {
	s, sched, _ := newSession(t)
	if err := s.SelectQuiz(context.Background(), "five"); err != nil {
		t.Fatalf("SelectQuiz falhou: %v", err)
	}

	answer(t, s, sched, 12*time.Second, 3)

	attempts := s.Attempts()
	if len(attempts) != 1 {
		t.Fatalf("Esperado 1 tentativa, Recebido: %d", len(attempts))
	}
	if attempts[0].TimeSpent != 12 {
		t.Errorf("Tempo gasto incorreto. Esperado: 12, Recebido: %d", attempts[0].TimeSpent)
	}
	if attempts[0].IsCorrect {
		t.Errorf("Resposta 3 não é a correta para a pergunta 1")
	}
}

func TestLockedQuestionIgnoresFurtherSelections(t *testing.T) {
	s, sched, spy := newSession(t)
	if err := s.SelectQuiz(context.Background(), "five"); err != nil {
		t.Fatalf("SelectQuiz falhou: %v", err)
	}

	sched.Advance(2 * time.Second)
	if ok, _ := s.ChooseAnswer(0); !ok {
		t.Fatal("Primeira resposta deveria ser aceita")
	}
	for _, idx := range []int{1, 2, 3} {
		ok, err := s.ChooseAnswer(idx)
		if err != nil {
			t.Fatalf("ChooseAnswer não deveria falhar após lock: %v", err)
		}
		if ok {
			t.Errorf("Resposta %d não deveria ser aceita após lock", idx)
		}
	}
	sched.Advance(reveal)

	attempts := s.Attempts()
	if len(attempts) != 1 || *attempts[0].SelectedAnswer != 0 || !attempts[0].IsCorrect {
		t.Errorf("Tentativa gravada foi alterada: %+v", attempts)
	}
	if len(spy.locked) != 1 {
		t.Errorf("Lock deveria ocorrer uma vez, Recebido: %d", len(spy.locked))
	}
}

func TestRetryKeepsQuizAndResets(t *testing.T) {
	s, sched, _ := newSession(t)
	if err := s.SelectQuiz(context.Background(), "five"); err != nil {
		t.Fatalf("SelectQuiz falhou: %v", err)
	}
	for i := 0; i < 5; i++ {
		answer(t, s, sched, time.Second, 0)
	}
	if s.State() != session.StateReviewing {
		t.Fatalf("Estado esperado reviewing, Recebido: %s", s.State())
	}

	if err := s.Retry(); err != nil {
		t.Fatalf("Retry falhou: %v", err)
	}
	if s.State() != session.StatePlaying {
		t.Errorf("Estado esperado playing após retry, Recebido: %s", s.State())
	}
	if len(s.Attempts()) != 0 || s.QuestionIndex() != 0 {
		t.Errorf("Retry deveria limpar tentativas e índice: %d, %d", len(s.Attempts()), s.QuestionIndex())
	}
	if s.Result() != nil {
		t.Errorf("Retry deveria descartar o resultado")
	}
	if q := s.Quiz(); q == nil || q.ID != "five" {
		t.Errorf("Retry deveria manter o mesmo quiz: %+v", q)
	}
	if s.Remaining() != 30 {
		t.Errorf("Timer da primeira pergunta deveria reiniciar em 30, Recebido: %d", s.Remaining())
	}
}

func TestNewQuizClearsEverything(t *testing.T) {
	s, sched, _ := newSession(t)
	_ = s.SelectQuiz(context.Background(), "five")
	for i := 0; i < 5; i++ {
		answer(t, s, sched, time.Second, 1)
	}

	if err := s.NewQuiz(); err != nil {
		t.Fatalf("NewQuiz falhou: %v", err)
	}
	if s.State() != session.StateSelecting || s.Quiz() != nil || s.Result() != nil || len(s.Attempts()) != 0 {
		t.Errorf("NewQuiz deveria limpar a sessão")
	}
}

func TestAbandonCancelsPendingOutcome(t *testing.T) {
	s, sched, spy := newSession(t)
	_ = s.SelectQuiz(context.Background(), "five")

	sched.Advance(time.Second)
	_, _ = s.ChooseAnswer(0)
	if err := s.Abandon(); err != nil {
		t.Fatalf("Abandon falhou: %v", err)
	}
	sched.Advance(time.Minute)

	if s.State() != session.StateSelecting {
		t.Errorf("Estado esperado selecting, Recebido: %s", s.State())
	}
	if len(s.Attempts()) != 0 || len(spy.started) != 1 {
		t.Errorf("Nenhum resultado deveria chegar após abandonar: %d tentativas, %v", len(s.Attempts()), spy.started)
	}
	if sched.Pending() != 0 {
		t.Errorf("Callbacks pendentes após abandonar: %d", sched.Pending())
	}
}

func TestCloseStopsTimers(t *testing.T) {
	s, sched, _ := newSession(t)
	_ = s.SelectQuiz(context.Background(), "five")
	s.Close()
	sched.Advance(time.Minute)

	if sched.Pending() != 0 {
		t.Errorf("Callbacks pendentes após Close: %d", sched.Pending())
	}
	if err := s.SelectQuiz(context.Background(), "five"); !errors.Is(err, session.ErrClosed) {
		t.Errorf("Esperado ErrClosed, Recebido: %v", err)
	}
}

func TestInvalidTransitions(t *testing.T) {
	s, _, _ := newSession(t)

	if err := s.Retry(); !errors.Is(err, session.ErrInvalidTransition) {
		t.Errorf("Retry em selecting deveria falhar, Recebido: %v", err)
	}
	if err := s.NewQuiz(); !errors.Is(err, session.ErrInvalidTransition) {
		t.Errorf("NewQuiz em selecting deveria falhar, Recebido: %v", err)
	}
	if _, err := s.ChooseAnswer(0); !errors.Is(err, session.ErrInvalidTransition) {
		t.Errorf("ChooseAnswer em selecting deveria falhar, Recebido: %v", err)
	}
	if err := s.SelectQuiz(context.Background(), "missing"); !errors.Is(err, catalog.ErrQuizNotFound) {
		t.Errorf("Quiz inexistente deveria retornar ErrQuizNotFound, Recebido: %v", err)
	}

	_ = s.SelectQuiz(context.Background(), "five")
	if err := s.SelectQuiz(context.Background(), "five"); !errors.Is(err, session.ErrInvalidTransition) {
		t.Errorf("SelectQuiz em playing deveria falhar, Recebido: %v", err)
	}
	if _, err := s.ChooseAnswer(4); !errors.Is(err, session.ErrInvalidOption) {
		t.Errorf("Índice fora do intervalo deveria retornar ErrInvalidOption, Recebido: %v", err)
	}
	if _, err := s.ChooseAnswer(-1); !errors.Is(err, session.ErrInvalidOption) {
		t.Errorf("Índice negativo deveria retornar ErrInvalidOption, Recebido: %v", err)
	}
}

func TestSetDarkMode(t *testing.T) {
	s, _, _ := newSession(t)
	if s.Settings().DarkMode {
		t.Fatal("DarkMode deveria iniciar falso")
	}
	s.SetDarkMode(true)
	if !s.Settings().DarkMode {
		t.Error("SetDarkMode(true) não foi aplicado")
	}
}

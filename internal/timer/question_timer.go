package timer

import (
	"errors"
	"time"
)

const TickInterval = time.Second

type State string

const (
	StateCounting State = "counting"
	StateLocked   State = "locked"
	StateReported State = "reported"
	StateStopped  State = "stopped"
)

var (
	ErrInvalidBudget  = errors.New("time budget must be positive")
	ErrNilReport      = errors.New("report callback is required")
	ErrNilScheduler   = errors.New("scheduler is required")
	ErrAlreadyStarted = errors.New("timer already started")
)

// Outcome is reported exactly once per question. A nil Selected means the
// countdown expired.
type Outcome struct {
	Selected *int
	Elapsed  int
}

func (o Outcome) TimedOut() bool {
	return o.Selected == nil
}

type Config struct {
	Budget      int
	RevealDelay time.Duration
	// OnTick is optional and receives the remaining seconds after each tick.
	OnTick func(remaining int)
	// OnLock is optional and fires when the answer becomes final.
	OnLock   func(o Outcome)
	OnReport func(o Outcome)
}

type QuestionTimer struct {
	scheduler Scheduler
	cfg       Config

	state     State
	started   bool
	locked    bool
	remaining int
	outcome   Outcome

	tick   Handle
	reveal Handle
}

func NewQuestionTimer(s Scheduler, cfg Config) (*QuestionTimer, error) {
	if s == nil {
		return nil, ErrNilScheduler
	}
	if cfg.Budget <= 0 {
		return nil, ErrInvalidBudget
	}
	if cfg.OnReport == nil {
		return nil, ErrNilReport
	}
	if cfg.RevealDelay < 0 {
		cfg.RevealDelay = 0
	}

	return &QuestionTimer{
		scheduler: s,
		cfg:       cfg,
		state:     StateCounting,
		remaining: cfg.Budget,
	}, nil
}

func (t *QuestionTimer) Start() error {
	if t.started {
		return ErrAlreadyStarted
	}
	t.started = true
	if t.state == StateCounting {
		t.scheduleTick()
	}
	return nil
}

func (t *QuestionTimer) scheduleTick() {
	t.tick = t.scheduler.After(TickInterval, t.onTick)
}

func (t *QuestionTimer) onTick() {
	if t.state != StateCounting {
		return
	}
	t.remaining--
	if t.cfg.OnTick != nil {
		t.cfg.OnTick(t.remaining)
		// OnTick may have stopped the timer.
		if t.state != StateCounting {
			return
		}
	}
	if t.remaining <= 0 {
		t.remaining = 0
		t.lock(nil)
		return
	}
	t.scheduleTick()
}

// Select locks in an answer. It returns false when the question is already
// locked, reported or stopped; such calls never change the outcome.
func (t *QuestionTimer) Select(index int) bool {
	if t.state != StateCounting {
		return false
	}
	selected := index
	t.lock(&selected)
	return true
}

func (t *QuestionTimer) lock(selected *int) {
	t.state = StateLocked
	t.locked = true
	if t.tick != nil {
		t.tick.Cancel()
		t.tick = nil
	}

	elapsed := t.cfg.Budget - t.remaining
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > t.cfg.Budget {
		elapsed = t.cfg.Budget
	}
	t.outcome = Outcome{Selected: selected, Elapsed: elapsed}

	if t.cfg.OnLock != nil {
		t.cfg.OnLock(t.outcome)
	}
	// OnLock may have stopped the timer.
	if t.state != StateLocked {
		return
	}
	t.reveal = t.scheduler.After(t.cfg.RevealDelay, t.onReveal)
}

func (t *QuestionTimer) onReveal() {
	if t.state != StateLocked {
		return
	}
	t.state = StateReported
	t.reveal = nil
	t.cfg.OnReport(t.outcome)
}

// Stop tears the timer down. Nothing is reported after Stop returns.
func (t *QuestionTimer) Stop() {
	if t.state == StateReported || t.state == StateStopped {
		return
	}
	t.state = StateStopped
	if t.tick != nil {
		t.tick.Cancel()
		t.tick = nil
	}
	if t.reveal != nil {
		t.reveal.Cancel()
		t.reveal = nil
	}
}

func (t *QuestionTimer) State() State {
	return t.state
}

func (t *QuestionTimer) Remaining() int {
	return t.remaining
}

func (t *QuestionTimer) Budget() int {
	return t.cfg.Budget
}

// Outcome reports the locked answer, if any.
func (t *QuestionTimer) Outcome() (Outcome, bool) {
	return t.outcome, t.locked
}

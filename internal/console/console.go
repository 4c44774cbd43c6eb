package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/saulo-duarte/quizzy/internal/catalog"
	"github.com/saulo-duarte/quizzy/internal/config"
	"github.com/saulo-duarte/quizzy/internal/preference"
	"github.com/saulo-duarte/quizzy/internal/scoring"
	"github.com/saulo-duarte/quizzy/internal/session"
	"github.com/saulo-duarte/quizzy/internal/timer"
)

type Config struct {
	Out         io.Writer
	Sessions    *session.SessionContainer
	Preferences preference.PreferenceService
	Scheduler   timer.Scheduler
	// ResultOut receives one JSON line per completed quiz when set.
	ResultOut io.Writer
	Color     bool
	Clock     func() time.Time
}

// Console drives one session from line-oriented input. Every method must be
// called from the goroutine that runs the scheduler.
type Console struct {
	ctx       context.Context
	out       io.Writer
	resultOut io.Writer
	prefs     preference.PreferenceService
	color     bool
	theme     Theme
	quizzes   []catalog.Quiz
	session   session.Session
	quit      bool
}

func New(ctx context.Context, cfg Config) *Console {
	c := &Console{
		ctx:       ctx,
		out:       cfg.Out,
		resultOut: cfg.ResultOut,
		prefs:     cfg.Preferences,
		color:     cfg.Color,
		theme:     ThemeFor(cfg.Sessions.Settings.DarkMode, cfg.Color),
		quizzes:   cfg.Sessions.Repo.List(),
	}
	if c.out == nil {
		c.out = io.Discard
	}

	opts := []session.Option{session.WithListener(c)}
	if cfg.Clock != nil {
		opts = append(opts, session.WithClock(cfg.Clock))
	}
	c.session = cfg.Sessions.Open(ctx, cfg.Scheduler, opts...)
	return c
}

func (c *Console) Session() session.Session {
	return c.session
}

func (c *Console) Theme() Theme {
	return c.theme
}

func (c *Console) Done() bool {
	return c.quit
}

// Start shows the first screen, or jumps straight into quizID when given.
func (c *Console) Start(quizID string) {
	if quizID == "" {
		c.renderSelecting()
		return
	}
	if err := c.session.SelectQuiz(c.ctx, quizID); err != nil {
		c.renderError(err)
		c.renderSelecting()
	}
}

// HandleLine applies one line of input and reports whether the console
// should keep reading.
func (c *Console) HandleLine(line string) bool {
	if c.quit {
		return false
	}
	cmd := strings.ToLower(strings.TrimSpace(line))

	switch cmd {
	case "":
		return true
	case "q":
		c.Close()
		return false
	case "t":
		c.toggleTheme()
		return true
	}

	switch c.session.State() {
	case session.StateSelecting:
		c.handleSelecting(strings.TrimSpace(line))
	case session.StatePlaying:
		c.handlePlaying(cmd)
	case session.StateReviewing:
		c.handleReviewing(cmd)
	}
	return true
}

func (c *Console) Close() {
	c.quit = true
	c.session.Close()
}

func (c *Console) handleSelecting(input string) {
	id := input
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(c.quizzes) {
			c.renderError(catalog.ErrQuizNotFound)
			return
		}
		id = c.quizzes[n-1].ID
	}
	if err := c.session.SelectQuiz(c.ctx, id); err != nil {
		c.renderError(err)
	}
}

func (c *Console) handlePlaying(cmd string) {
	if cmd == "x" {
		if err := c.session.Abandon(); err != nil {
			c.renderError(err)
			return
		}
		c.renderSelecting()
		return
	}

	index, ok := parseOption(cmd)
	if !ok {
		c.renderError(errors.New("type an option letter or number"))
		return
	}
	accepted, err := c.session.ChooseAnswer(index)
	if err != nil {
		c.renderError(err)
		return
	}
	if !accepted {
		c.printf("%s\n", c.theme.paint(c.theme.Muted, "Answer already locked."))
	}
}

func (c *Console) handleReviewing(cmd string) {
	var err error
	switch cmd {
	case "r":
		err = c.session.Retry()
	case "n":
		if err = c.session.NewQuiz(); err == nil {
			c.renderSelecting()
		}
	default:
		err = errors.New("type r, n or q")
	}
	if err != nil {
		c.renderError(err)
	}
}

// parseOption accepts a letter (a, b, ...) or a 1-based number.
func parseOption(cmd string) (int, bool) {
	if n, err := strconv.Atoi(cmd); err == nil {
		return n - 1, true
	}
	if len(cmd) == 1 && cmd[0] >= 'a' && cmd[0] <= 'z' {
		return int(cmd[0] - 'a'), true
	}
	return 0, false
}

func (c *Console) toggleTheme() {
	dark := !c.session.Settings().DarkMode
	if c.prefs != nil {
		next, err := c.prefs.ToggleDarkMode(c.ctx)
		if err != nil {
			config.WithContext(c.ctx).WithError(err).Warn("Tema alterado apenas nesta sessão")
		} else {
			dark = next
		}
	}
	c.session.SetDarkMode(dark)
	c.theme = ThemeFor(dark, c.color)

	name := "light"
	if dark {
		name = "dark"
	}
	c.printf("%s\n", c.theme.paint(c.theme.Accent, "Theme: "+name))
}

func (c *Console) QuestionStarted(q catalog.Question, number, total, budget int) {
	c.renderQuestion(q, number, total, budget)
}

func (c *Console) Tick(remaining int) {
	c.renderTick(remaining)
}

func (c *Console) AnswerLocked(q catalog.Question, o timer.Outcome) {
	c.renderLocked(q, o.Selected, o.Elapsed)
}

func (c *Console) Completed(quiz *catalog.Quiz, result *scoring.Result, summary scoring.Summary) {
	c.renderReview(quiz, result, summary)
	if c.resultOut == nil {
		return
	}
	if err := writeResult(c.resultOut, result, summary); err != nil {
		config.WithContext(c.ctx).WithError(err).Error("Falha ao escrever resultado em JSON")
	}
}

// Run owns loop until input ends, the player quits or ctx is cancelled.
// The console must have been built with loop as its scheduler.
func (c *Console) Run(ctx context.Context, in io.Reader, loop *timer.LoopScheduler, quizID string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx)
	}()

	loop.Post(func() { c.Start(quizID) })

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Text()
			loop.Post(func() {
				if !c.HandleLine(line) {
					cancel()
				}
			})
			if ctx.Err() != nil {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			config.WithContext(c.ctx).WithError(err).Error("Erro ao ler entrada")
		}
		loop.Post(cancel)
	}()

	err := <-done
	// The loop goroutine has exited, so touching the session here is safe.
	c.session.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

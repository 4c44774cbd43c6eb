package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/saulo-duarte/quizzy/internal/catalog"
	"github.com/saulo-duarte/quizzy/internal/scoring"
	util "github.com/saulo-duarte/quizzy/internal/utils"
)

const lowTimeThreshold = 5

func optionLetter(i int) string {
	return string(rune('A' + i))
}

func formatDuration(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) renderSelecting() {
	t := c.theme
	c.printf("\n%s\n\n", t.paint(t.Title, "Choose a quiz"))

	for i, quiz := range c.quizzes {
		c.printf("%s %s %s %s\n",
			t.paint(t.Accent, fmt.Sprintf("%d.", i+1)),
			categoryIcon(quiz.Category),
			t.paint(t.Title, quiz.Title),
			t.paint(t.Muted, "["+quiz.Category+"]"),
		)
		if quiz.Description != "" {
			c.printf("   %s\n", quiz.Description)
		}

		dist := catalog.DifficultyDistribution(quiz)
		parts := make([]string, 0, len(catalog.AllDifficulties))
		for _, d := range catalog.AllDifficulties {
			if n := dist[d]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", difficultyLabel(t, d), n))
			}
		}
		c.printf("   %s\n", t.paint(t.Muted, fmt.Sprintf("%d questions · %ds per question · up to %s",
			len(quiz.Questions), quiz.TimePerQuestion, formatDuration(quiz.EstimatedSeconds()))))
		c.printf("   %s\n", strings.Join(parts, "  "))
	}

	c.printf("\n%s\n", t.paint(t.Muted, "[number or id] start · [t] theme · [q] quit"))
}

func (c *Console) renderQuestion(q catalog.Question, number, total, budget int) {
	t := c.theme
	c.printf("\n%s  %s  %s\n",
		t.paint(t.Accent, fmt.Sprintf("Question %d of %d", number, total)),
		difficultyLabel(t, q.Difficulty),
		t.paint(t.Muted, fmt.Sprintf("%ds", budget)),
	)
	c.printf("%s\n\n", t.paint(t.Title, q.Prompt))
	for i, opt := range q.Options {
		c.printf("  %s) %s\n", t.paint(t.Accent, optionLetter(i)), opt)
	}
	c.printf("\n%s\n", t.paint(t.Muted, "[letter or number] answer · [x] abandon · [t] theme · [q] quit"))
}

func (c *Console) renderTick(remaining int) {
	if remaining <= 0 {
		return
	}
	if remaining > lowTimeThreshold && remaining%5 != 0 {
		return
	}
	t := c.theme
	style := t.Muted
	if remaining <= lowTimeThreshold {
		style = t.Warn
	}
	c.printf("%s\n", t.paint(style, fmt.Sprintf("⏱  %ds left", remaining)))
}

func (c *Console) renderLocked(q catalog.Question, selected *int, elapsed int) {
	t := c.theme
	correct := fmt.Sprintf("%s) %s", optionLetter(q.CorrectAnswer), q.Options[q.CorrectAnswer])

	switch {
	case selected == nil:
		c.printf("%s Correct answer: %s\n", t.paint(t.Warn, "Time's up!"), correct)
	case q.IsCorrect(*selected):
		c.printf("%s %s (%ds)\n", t.paint(t.Good, "Correct!"), correct, elapsed)
	default:
		c.printf("%s You chose %s. Correct answer: %s (%ds)\n",
			t.paint(t.Bad, "Incorrect."), optionLetter(*selected), correct, elapsed)
	}
	if q.Explanation != "" {
		c.printf("%s\n", t.paint(t.Muted, q.Explanation))
	}
}

func (c *Console) renderReview(quiz *catalog.Quiz, r *scoring.Result, s scoring.Summary) {
	t := c.theme
	style := tierStyle(t, s.Tier)

	c.printf("\n%s\n", t.paint(t.Title, quiz.Title+" complete"))
	c.printf("%s  grade %s\n", t.paint(style, fmt.Sprintf("%d%%", s.Percentage)), t.paint(style, tierGrades[s.Tier]))
	c.printf("%s\n", performanceMessage(s.Percentage))
	c.printf("%d of %d correct · %ds average per question · %ds total\n\n",
		r.TotalScore, r.TotalQuestions, s.AverageTimePerQuestion, r.TotalTimeSpent)

	for i, a := range r.Attempts {
		q := quiz.Questions[i]
		mark := t.paint(t.Bad, "✖")
		if a.IsCorrect {
			mark = t.paint(t.Good, "✔")
		}
		c.printf("%s %d. %s\n", mark, i+1, q.Prompt)
		if a.SelectedAnswer == nil {
			c.printf("     Your answer: %s\n", t.paint(t.Warn, "time expired"))
		} else {
			c.printf("     Your answer: %s) %s\n", optionLetter(*a.SelectedAnswer), q.Options[*a.SelectedAnswer])
		}
		if !a.IsCorrect {
			c.printf("     Correct answer: %s) %s\n", optionLetter(q.CorrectAnswer), q.Options[q.CorrectAnswer])
		}
		c.printf("     %s\n", t.paint(t.Muted, fmt.Sprintf("%ds", a.TimeSpent)))
	}

	c.printf("\n")
	for _, st := range scoring.DifficultyBreakdown(quiz, r) {
		c.printf("%s %d/%d\n", difficultyLabel(t, st.Difficulty), st.Correct, st.Total)
	}

	c.printf("\n%s\n", t.paint(t.Muted, "[r] retry · [n] new quiz · [t] theme · [q] quit"))
}

func (c *Console) renderError(err error) {
	c.printf("%s\n", c.theme.paint(c.theme.Bad, err.Error()))
}

type resultDump struct {
	QuizID         string             `json:"quiz_id"`
	TotalScore     int                `json:"total_score"`
	TotalQuestions int                `json:"total_questions"`
	Percentage     int                `json:"percentage"`
	Tier           scoring.Tier       `json:"tier"`
	Grade          string             `json:"grade"`
	AverageTime    int                `json:"average_time_per_question"`
	TotalTimeSpent int                `json:"total_time_spent"`
	CompletedAt    util.LocalDateTime `json:"completed_at"`
	Attempts       []scoring.Attempt  `json:"attempts"`
}

func writeResult(w io.Writer, r *scoring.Result, s scoring.Summary) error {
	return json.NewEncoder(w).Encode(resultDump{
		QuizID:         r.QuizID,
		TotalScore:     r.TotalScore,
		TotalQuestions: r.TotalQuestions,
		Percentage:     s.Percentage,
		Tier:           s.Tier,
		Grade:          tierGrades[s.Tier],
		AverageTime:    s.AverageTimePerQuestion,
		TotalTimeSpent: r.TotalTimeSpent,
		CompletedAt:    util.NewLocalDateTime(r.CompletedAt),
		Attempts:       r.Attempts,
	})
}

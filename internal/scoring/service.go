package scoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/saulo-duarte/quizzy/internal/catalog"
)

var (
	ErrEmptyQuiz       = errors.New("quiz has no questions")
	ErrAttemptMismatch = errors.New("attempts do not match quiz questions")
)

// NewAttempt derives correctness from the question. A nil selection is
// always incorrect.
func NewAttempt(q catalog.Question, selected *int, timeSpent int) Attempt {
	var sel *int
	if selected != nil {
		v := *selected
		sel = &v
	}
	return Attempt{
		QuestionID:     q.ID,
		SelectedAnswer: sel,
		IsCorrect:      sel != nil && q.IsCorrect(*sel),
		TimeSpent:      timeSpent,
	}
}

// BuildResult requires attempts to be index-aligned with quiz.Questions.
func BuildResult(quiz *catalog.Quiz, attempts []Attempt, completedAt time.Time) (*Result, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	if len(attempts) != len(quiz.Questions) {
		return nil, fmt.Errorf("%w: %d attempts for %d questions", ErrAttemptMismatch, len(attempts), len(quiz.Questions))
	}

	out := make([]Attempt, len(attempts))
	score, total := 0, 0
	for i, a := range attempts {
		if a.QuestionID != quiz.Questions[i].ID {
			return nil, fmt.Errorf("%w: attempt %d is for question %d, expected %d",
				ErrAttemptMismatch, i, a.QuestionID, quiz.Questions[i].ID)
		}
		if a.IsCorrect {
			score++
		}
		total += a.TimeSpent
		out[i] = a
	}

	return &Result{
		QuizID:         quiz.ID,
		Attempts:       out,
		TotalScore:     score,
		TotalQuestions: len(quiz.Questions),
		CompletedAt:    completedAt,
		TotalTimeSpent: total,
	}, nil
}

func Summarize(r *Result) Summary {
	if r == nil || r.TotalQuestions <= 0 {
		return Summary{Tier: TierLow}
	}
	pct := roundDiv(100*r.TotalScore, r.TotalQuestions)
	return Summary{
		Percentage:             pct,
		Tier:                   TierFor(pct),
		AverageTimePerQuestion: roundDiv(r.TotalTimeSpent, r.TotalQuestions),
	}
}

// DifficultyBreakdown lists correct/total per difficulty, in catalog order
// of difficulties, skipping difficulties the quiz does not use.
func DifficultyBreakdown(quiz *catalog.Quiz, r *Result) []DifficultyStats {
	if quiz == nil || r == nil {
		return nil
	}
	byDifficulty := make(map[catalog.Difficulty]*DifficultyStats, len(catalog.AllDifficulties))
	for i, q := range quiz.Questions {
		st, ok := byDifficulty[q.Difficulty]
		if !ok {
			st = &DifficultyStats{Difficulty: q.Difficulty}
			byDifficulty[q.Difficulty] = st
		}
		st.Total++
		if i < len(r.Attempts) && r.Attempts[i].IsCorrect {
			st.Correct++
		}
	}

	out := make([]DifficultyStats, 0, len(byDifficulty))
	for _, d := range catalog.AllDifficulties {
		if st, ok := byDifficulty[d]; ok {
			out = append(out, *st)
		}
	}
	return out
}

// roundDiv rounds half up for non-negative operands.
func roundDiv(num, den int) int {
	return (2*num + den) / (2 * den)
}

package scoring

import (
	"time"

	"github.com/saulo-duarte/quizzy/internal/catalog"
)

type Attempt struct {
	QuestionID     int  `json:"question_id"`
	SelectedAnswer *int `json:"selected_answer"`
	IsCorrect      bool `json:"is_correct"`
	TimeSpent      int  `json:"time_spent"`
}

func (a Attempt) Answered() bool {
	return a.SelectedAnswer != nil
}

type Result struct {
	QuizID         string    `json:"quiz_id"`
	Attempts       []Attempt `json:"attempts"`
	TotalScore     int       `json:"total_score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
	TotalTimeSpent int       `json:"total_time_spent"`
}

type Summary struct {
	Percentage             int  `json:"percentage"`
	Tier                   Tier `json:"tier"`
	AverageTimePerQuestion int  `json:"average_time_per_question"`
}

type DifficultyStats struct {
	Difficulty catalog.Difficulty `json:"difficulty"`
	Correct    int                `json:"correct"`
	Total      int                `json:"total"`
}

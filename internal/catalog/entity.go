package catalog

type Question struct {
	ID            int        `yaml:"id" json:"id" validate:"gt=0"`
	Prompt        string     `yaml:"question" json:"question" validate:"required"`
	Options       []string   `yaml:"options" json:"options" validate:"min=2,dive,required"`
	CorrectAnswer int        `yaml:"correct_answer" json:"correct_answer" validate:"gte=0"`
	Difficulty    Difficulty `yaml:"difficulty" json:"difficulty" validate:"required,difficulty"`
	Explanation   string     `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

type Quiz struct {
	ID              string     `yaml:"id" json:"id" validate:"required"`
	Title           string     `yaml:"title" json:"title" validate:"required"`
	Description     string     `yaml:"description" json:"description"`
	Category        string     `yaml:"category" json:"category" validate:"required"`
	TimePerQuestion int        `yaml:"time_per_question" json:"time_per_question" validate:"gt=0"`
	Questions       []Question `yaml:"questions" json:"questions" validate:"min=1,dive"`
}

type document struct {
	Quizzes []Quiz `yaml:"quizzes"`
}

func (q Question) IsCorrect(index int) bool {
	return index == q.CorrectAnswer
}

// Clone deep-copies the quiz so callers never share slices with the catalog.
func (q Quiz) Clone() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Options = append([]string(nil), question.Options...)
		out.Questions[i] = question
	}
	return out
}

// EstimatedSeconds is the upper bound a player can spend on the quiz.
func (q Quiz) EstimatedSeconds() int {
	return q.TimePerQuestion * len(q.Questions)
}

func DifficultyDistribution(q Quiz) map[Difficulty]int {
	dist := make(map[Difficulty]int, len(AllDifficulties))
	for _, question := range q.Questions {
		dist[question.Difficulty]++
	}
	return dist
}

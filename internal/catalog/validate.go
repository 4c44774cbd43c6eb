package catalog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMalformedCatalog = errors.New("malformed catalog")
	ErrEmptyCatalog     = errors.New("catalog has no quizzes")
	ErrQuizNotFound     = errors.New("quiz not found")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(Difficulty)
		return ok && d.IsValid()
	})
	return v
}

// Validate checks every integrity rule and reports all violations at once,
// wrapped in ErrMalformedCatalog.
func Validate(quizzes []Quiz) error {
	if len(quizzes) == 0 {
		return fmt.Errorf("%w: %w", ErrMalformedCatalog, ErrEmptyCatalog)
	}

	var errs []error
	quizIDs := make(map[string]struct{}, len(quizzes))
	questionIDs := make(map[int]string)

	for i, quiz := range quizzes {
		label := quiz.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		if err := validate.Struct(quiz); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					errs = append(errs, fmt.Errorf("quiz %s: %s failed %q", label, fe.Namespace(), fe.Tag()))
				}
			} else {
				errs = append(errs, fmt.Errorf("quiz %s: %w", label, err))
			}
		}

		if quiz.ID != "" {
			if _, dup := quizIDs[quiz.ID]; dup {
				errs = append(errs, fmt.Errorf("quiz %s: duplicate quiz id", label))
			}
			quizIDs[quiz.ID] = struct{}{}
		}

		for _, q := range quiz.Questions {
			if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
				errs = append(errs, fmt.Errorf("quiz %s: question %d: correct answer %d out of range [0,%d)",
					label, q.ID, q.CorrectAnswer, len(q.Options)))
			}
			if owner, dup := questionIDs[q.ID]; dup {
				errs = append(errs, fmt.Errorf("quiz %s: question %d: id already used by quiz %s", label, q.ID, owner))
				continue
			}
			questionIDs[q.ID] = label
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrMalformedCatalog, errors.Join(errs...))
	}
	return nil
}

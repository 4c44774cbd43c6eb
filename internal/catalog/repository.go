package catalog

import "fmt"

type CatalogRepository interface {
	List() []Quiz
	GetByID(id string) (*Quiz, error)
	Count() int
}

type catalogRepository struct {
	quizzes []Quiz
	index   map[string]int
}

// NewRepository validates the quizzes before accepting them; a malformed
// catalog never produces a repository.
func NewRepository(quizzes []Quiz) (CatalogRepository, error) {
	if err := Validate(quizzes); err != nil {
		return nil, err
	}

	r := &catalogRepository{
		quizzes: make([]Quiz, len(quizzes)),
		index:   make(map[string]int, len(quizzes)),
	}
	for i, q := range quizzes {
		r.quizzes[i] = q.Clone()
		r.index[q.ID] = i
	}
	return r, nil
}

func (r *catalogRepository) List() []Quiz {
	out := make([]Quiz, len(r.quizzes))
	for i, q := range r.quizzes {
		out[i] = q.Clone()
	}
	return out
}

func (r *catalogRepository) GetByID(id string) (*Quiz, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, id)
	}
	q := r.quizzes[i].Clone()
	return &q, nil
}

func (r *catalogRepository) Count() int {
	return len(r.quizzes)
}

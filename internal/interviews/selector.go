package interviews

import (
	"context"
	"fmt"
	"math/rand"

	"interview-backend/internal/questions"
)

// poolLimit caps the candidate pool fetched per category.
const poolLimit = 20

// QuestionPool is the read-only catalog view the selector draws from.
type QuestionPool interface {
	ListByCategory(ctx context.Context, category, jobType string, limit int) ([]questions.Question, error)
}

// InsufficientQuestionsError reports that the catalog could not satisfy a
// requested set size, with per-category availability for diagnostics.
type InsufficientQuestionsError struct {
	Requested          int
	Selected           int
	CommonAvailable    int
	JobAvailable       int
	ForeignerAvailable int
	JobType            string
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf(
		"not enough questions in the catalog: requested %d, available %d (common: %d, job(%s): %d, foreigner: %d)",
		e.Requested, e.Selected, e.CommonAvailable, e.JobType, e.JobAvailable, e.ForeignerAvailable,
	)
}

// Selector assembles a proportioned, randomized question list for a new
// interview set. The random source is injected so tests can seed it.
type Selector struct {
	Pool QuestionPool
	Rand *rand.Rand
}

// Select returns exactly count questions mixed 40% common, 30% job-matched
// and 30% foreigner-specialized, with integer rounding slack flowing into
// the foreigner bucket. It fails with InsufficientQuestionsError before any
// rows are written when the catalog cannot cover the request.
func (s *Selector) Select(ctx context.Context, count int, jobType string) ([]questions.Question, error) {
	commonTarget := count * 4 / 10
	jobTarget := count * 3 / 10
	foreignerTarget := count - commonTarget - jobTarget

	common, err := s.Pool.ListByCategory(ctx, questions.CategoryCommon, "", poolLimit)
	if err != nil {
		return nil, fmt.Errorf("load common pool: %w", err)
	}
	job, err := s.Pool.ListByCategory(ctx, questions.CategoryJob, jobType, poolLimit)
	if err != nil {
		return nil, fmt.Errorf("load job pool: %w", err)
	}
	foreigner, err := s.Pool.ListByCategory(ctx, questions.CategoryForeigner, "", poolLimit)
	if err != nil {
		return nil, fmt.Errorf("load foreigner pool: %w", err)
	}

	selected := make([]questions.Question, 0, count)
	selected = append(selected, s.draw(common, commonTarget)...)
	selected = append(selected, s.draw(job, jobTarget)...)
	selected = append(selected, s.draw(foreigner, foreignerTarget)...)
	if len(selected) > count {
		selected = selected[:count]
	}

	if len(selected) < count {
		return nil, &InsufficientQuestionsError{
			Requested:          count,
			Selected:           len(selected),
			CommonAvailable:    len(common),
			JobAvailable:       len(job),
			ForeignerAvailable: len(foreigner),
			JobType:            jobType,
		}
	}
	return selected, nil
}

// draw shuffles the pool uniformly and takes up to target items.
func (s *Selector) draw(pool []questions.Question, target int) []questions.Question {
	shuffled := make([]questions.Question, len(pool))
	copy(shuffled, pool)
	s.Rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if target > len(shuffled) {
		target = len(shuffled)
	}
	return shuffled[:target]
}

package questions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores questions in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Question
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Question)}
}

// Create stores the question.
func (r *MemoryRepo) Create(ctx context.Context, q Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[q.ID] = q
	return nil
}

// GetByID returns a question by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, questionID string) (Question, error) {
	if err := ctx.Err(); err != nil {
		return Question{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.byID[questionID]
	if !ok {
		return Question{}, ErrNotFound
	}
	return q, nil
}

// List returns all questions, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Question, 0, len(r.byID))
	for _, q := range r.byID {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces an existing question.
func (r *MemoryRepo) Update(ctx context.Context, q Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[q.ID]; !ok {
		return ErrNotFound
	}
	r.byID[q.ID] = q
	return nil
}

// Delete removes a question.
func (r *MemoryRepo) Delete(ctx context.Context, questionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[questionID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, questionID)
	return nil
}

// ListByCategory returns up to limit questions for a category.
func (r *MemoryRepo) ListByCategory(ctx context.Context, category, jobType string, limit int) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Question
	for _, q := range r.byID {
		if q.Category != category {
			continue
		}
		if category == CategoryJob && jobType != "" && q.JobType != jobType {
			continue
		}
		out = append(out, q)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Count returns the total number of questions.
func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

var _ Repo = (*MemoryRepo)(nil)

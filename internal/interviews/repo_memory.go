package interviews

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores interview data in memory and is safe for concurrent
// use. It mirrors the constraint behavior of the Postgres repo so service
// tests exercise the same failure paths.
type MemoryRepo struct {
	mu          sync.RWMutex
	sets        map[string]Set
	questions   map[string][]SetQuestion
	answers     map[string]Answer
	evaluations map[string]Evaluation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		sets:        make(map[string]Set),
		questions:   make(map[string][]SetQuestion),
		answers:     make(map[string]Answer),
		evaluations: make(map[string]Evaluation),
	}
}

// CreateSetWithQuestions stores the set and its snapshot rows together.
func (r *MemoryRepo) CreateSetWithQuestions(ctx context.Context, set Set, items []SetQuestion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.ID] = set
	snapshot := make([]SetQuestion, len(items))
	copy(snapshot, items)
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].QuestionOrder < snapshot[j].QuestionOrder
	})
	r.questions[set.ID] = snapshot
	return nil
}

// GetSet returns a set by ID.
func (r *MemoryRepo) GetSet(ctx context.Context, setID string) (Set, error) {
	if err := ctx.Err(); err != nil {
		return Set{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[setID]
	if !ok {
		return Set{}, ErrSetNotFound
	}
	return set, nil
}

// ListSetsByUser returns a user's sets, newest first.
func (r *MemoryRepo) ListSetsByUser(ctx context.Context, userID string) ([]Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Set
	for _, set := range r.sets {
		if set.UserID == userID {
			out = append(out, set)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ListSetQuestions returns snapshot rows ordered by question_order.
func (r *MemoryRepo) ListSetQuestions(ctx context.Context, setID string) ([]SetQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.questions[setID]
	out := make([]SetQuestion, len(items))
	copy(out, items)
	return out, nil
}

// CountSetQuestions returns the number of snapshot rows for a set.
func (r *MemoryRepo) CountSetQuestions(ctx context.Context, setID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.questions[setID]), nil
}

// CreateAnswer inserts an answer, rejecting duplicates per
// (set_id, question_order).
func (r *MemoryRepo) CreateAnswer(ctx context.Context, answer Answer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.answers {
		if existing.SetID == answer.SetID && existing.QuestionOrder == answer.QuestionOrder {
			return ErrDuplicateAnswer
		}
	}
	r.answers[answer.ID] = answer
	return nil
}

// GetAnswer returns an answer by ID.
func (r *MemoryRepo) GetAnswer(ctx context.Context, answerID string) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	answer, ok := r.answers[answerID]
	if !ok {
		return Answer{}, ErrAnswerNotFound
	}
	return answer, nil
}

// GetAnswerByOrder returns the answer for a (set, question_order) pair.
func (r *MemoryRepo) GetAnswerByOrder(ctx context.Context, setID string, questionOrder int) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, answer := range r.answers {
		if answer.SetID == setID && answer.QuestionOrder == questionOrder {
			return answer, nil
		}
	}
	return Answer{}, ErrAnswerNotFound
}

// ListAnswers returns all answers for a set ordered by question_order.
func (r *MemoryRepo) ListAnswers(ctx context.Context, setID string) ([]Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Answer
	for _, answer := range r.answers {
		if answer.SetID == setID {
			out = append(out, answer)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].QuestionOrder < out[j].QuestionOrder
	})
	return out, nil
}

// SetFollowUpAnswer stores the follow-up answer on an existing answer.
func (r *MemoryRepo) SetFollowUpAnswer(ctx context.Context, answerID, followUpAnswer string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	answer, ok := r.answers[answerID]
	if !ok {
		return ErrAnswerNotFound
	}
	answer.FollowUpAnswer = followUpAnswer
	r.answers[answerID] = answer
	return nil
}

// MarkPendingEvaluation transitions in_progress sets only, reporting
// whether a change happened.
func (r *MemoryRepo) MarkPendingEvaluation(ctx context.Context, setID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sets[setID]
	if !ok || set.Status != StatusInProgress {
		return false, nil
	}
	set.Status = StatusPendingEvaluation
	r.sets[setID] = set
	return true, nil
}

// CompleteSet stores the evaluation and flips the set to completed, with
// the same guards as the Postgres repo.
func (r *MemoryRepo) CompleteSet(ctx context.Context, setID string, completedAt time.Time, eval Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.evaluations[setID]; exists {
		return ErrAlreadyCompleted
	}
	set, ok := r.sets[setID]
	if !ok {
		return ErrSetNotFound
	}
	if set.Status != StatusPendingEvaluation {
		return ErrNotReady
	}
	r.evaluations[setID] = eval
	set.Status = StatusCompleted
	t := completedAt
	set.CompletedAt = &t
	r.sets[setID] = set
	return nil
}

// GetEvaluation returns the evaluation for a set.
func (r *MemoryRepo) GetEvaluation(ctx context.Context, setID string) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	eval, ok := r.evaluations[setID]
	if !ok {
		return Evaluation{}, ErrEvaluationNotFound
	}
	return eval, nil
}

var _ Repo = (*MemoryRepo)(nil)

package interviews

import (
	"context"
	"time"
)

// Repo is the storage contract for interview sets, answers and evaluations.
type Repo interface {
	// CreateSetWithQuestions writes the set row and its question snapshot
	// rows as one atomic unit.
	CreateSetWithQuestions(ctx context.Context, set Set, items []SetQuestion) error
	GetSet(ctx context.Context, setID string) (Set, error)
	ListSetsByUser(ctx context.Context, userID string) ([]Set, error)
	// ListSetQuestions returns snapshot rows ordered by question_order.
	ListSetQuestions(ctx context.Context, setID string) ([]SetQuestion, error)
	CountSetQuestions(ctx context.Context, setID string) (int, error)

	// CreateAnswer inserts an answer; a second answer for the same
	// (set_id, question_order) fails with ErrDuplicateAnswer.
	CreateAnswer(ctx context.Context, answer Answer) error
	GetAnswer(ctx context.Context, answerID string) (Answer, error)
	GetAnswerByOrder(ctx context.Context, setID string, questionOrder int) (Answer, error)
	// ListAnswers returns all answers for a set ordered by question_order.
	ListAnswers(ctx context.Context, setID string) ([]Answer, error)
	SetFollowUpAnswer(ctx context.Context, answerID, followUpAnswer string) error

	// MarkPendingEvaluation transitions the set from in_progress to
	// pending_evaluation with a conditional update, reporting whether a
	// row actually changed. Concurrent re-entry transitions at most once.
	MarkPendingEvaluation(ctx context.Context, setID string) (bool, error)
	// CompleteSet persists the evaluation row and the completed status in
	// one transaction, guarded by status = pending_evaluation.
	CompleteSet(ctx context.Context, setID string, completedAt time.Time, eval Evaluation) error
	GetEvaluation(ctx context.Context, setID string) (Evaluation, error)
}

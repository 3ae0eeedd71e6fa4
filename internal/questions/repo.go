package questions

import "context"

// Repo defines persistence operations for the question catalog.
// ListByCategory is the read side used by the interview question selector;
// it carries no ordering guarantee, callers shuffle as needed.
type Repo interface {
	Create(ctx context.Context, q Question) error
	GetByID(ctx context.Context, questionID string) (Question, error)
	List(ctx context.Context) ([]Question, error)
	Update(ctx context.Context, q Question) error
	Delete(ctx context.Context, questionID string) error
	ListByCategory(ctx context.Context, category, jobType string, limit int) ([]Question, error)
	Count(ctx context.Context) (int, error)
}

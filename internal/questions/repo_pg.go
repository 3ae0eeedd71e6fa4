package questions

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new question.
func (r *PGRepo) Create(ctx context.Context, q Question) error {
	const query = `
INSERT INTO questions (id, question, category, job_type, level, model_answer, reasoning, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		q.ID,
		q.Question,
		q.Category,
		nullableString(q.JobType),
		nullableString(q.Level),
		q.ModelAnswer,
		q.Reasoning,
		q.CreatedAt,
		q.UpdatedAt,
	)
	return err
}

// GetByID returns a question by ID.
func (r *PGRepo) GetByID(ctx context.Context, questionID string) (Question, error) {
	const query = `
SELECT id, question, category, job_type, level, model_answer, reasoning, created_at, updated_at
FROM questions
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, questionID)
	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrNotFound
		}
		return Question{}, err
	}
	return q, nil
}

// List returns all questions, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Question, error) {
	const query = `
SELECT id, question, category, job_type, level, model_answer, reasoning, created_at, updated_at
FROM questions
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Update replaces all mutable fields of a question.
func (r *PGRepo) Update(ctx context.Context, q Question) error {
	const query = `
UPDATE questions
SET question = $1, category = $2, job_type = $3, level = $4, model_answer = $5, reasoning = $6, updated_at = $7
WHERE id = $8`
	res, err := r.DB.ExecContext(ctx, query,
		q.Question,
		q.Category,
		nullableString(q.JobType),
		nullableString(q.Level),
		q.ModelAnswer,
		q.Reasoning,
		q.UpdatedAt,
		q.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a question from the catalog. Snapshot rows in interview
// sets keep their copy of the assignment, so history stays intact.
func (r *PGRepo) Delete(ctx context.Context, questionID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, questionID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByCategory returns up to limit questions for a category. For the job
// category the job_type filter applies; other categories ignore it.
func (r *PGRepo) ListByCategory(ctx context.Context, category, jobType string, limit int) ([]Question, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
SELECT id, question, category, job_type, level, model_answer, reasoning, created_at, updated_at
FROM questions
WHERE category = $1
LIMIT $2`
	args := []any{category, limit}
	if category == CategoryJob && jobType != "" {
		query = `
SELECT id, question, category, job_type, level, model_answer, reasoning, created_at, updated_at
FROM questions
WHERE category = $1 AND job_type = $2
LIMIT $3`
		args = []any{category, jobType, limit}
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Count returns the total number of catalog questions.
func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM questions`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var jobType sql.NullString
	var level sql.NullString
	err := row.Scan(
		&q.ID,
		&q.Question,
		&q.Category,
		&jobType,
		&level,
		&q.ModelAnswer,
		&q.Reasoning,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return Question{}, err
	}
	if jobType.Valid {
		q.JobType = jobType.String
	}
	if level.Valid {
		q.Level = level.String
	}
	return q, nil
}

func nullableString(val string) sql.NullString {
	if val == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: val, Valid: true}
}

var _ Repo = (*PGRepo)(nil)

package interviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateSetWithQuestions inserts the set row and its snapshot rows in one
// transaction. If anything fails, nothing persists.
func (r *PGRepo) CreateSetWithQuestions(ctx context.Context, set Set, items []SetQuestion) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const setQuery = `
INSERT INTO interview_sets (id, user_id, title, job_type, level, status, created_at, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := tx.ExecContext(ctx, setQuery,
		set.ID,
		set.UserID,
		set.Title,
		set.JobType,
		set.Level,
		string(set.Status),
		set.CreatedAt,
		set.CompletedAt,
	); err != nil {
		return err
	}

	const itemQuery = `
INSERT INTO interview_set_questions (set_id, question_id, question_order, category)
VALUES ($1, $2, $3, $4)`
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, itemQuery,
			item.SetID,
			item.QuestionID,
			item.QuestionOrder,
			item.Category,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetSet returns a set by ID.
func (r *PGRepo) GetSet(ctx context.Context, setID string) (Set, error) {
	const query = `
SELECT id, user_id, title, job_type, level, status, created_at, completed_at
FROM interview_sets
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, setID)
	set, err := scanSet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Set{}, ErrSetNotFound
		}
		return Set{}, err
	}
	return set, nil
}

// ListSetsByUser returns a user's sets, newest first.
func (r *PGRepo) ListSetsByUser(ctx context.Context, userID string) ([]Set, error) {
	const query = `
SELECT id, user_id, title, job_type, level, status, created_at, completed_at
FROM interview_sets
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Set
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, set)
	}
	return out, rows.Err()
}

// ListSetQuestions returns snapshot rows ordered by question_order.
func (r *PGRepo) ListSetQuestions(ctx context.Context, setID string) ([]SetQuestion, error) {
	const query = `
SELECT set_id, question_id, question_order, category
FROM interview_set_questions
WHERE set_id = $1
ORDER BY question_order`
	rows, err := r.DB.QueryContext(ctx, query, setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SetQuestion
	for rows.Next() {
		var item SetQuestion
		if err := rows.Scan(&item.SetID, &item.QuestionID, &item.QuestionOrder, &item.Category); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// CountSetQuestions returns the number of snapshot rows for a set.
func (r *PGRepo) CountSetQuestions(ctx context.Context, setID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM interview_set_questions WHERE set_id = $1`, setID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CreateAnswer inserts an answer. The unique constraint on
// (set_id, question_order) is the authoritative duplicate guard.
func (r *PGRepo) CreateAnswer(ctx context.Context, answer Answer) error {
	const query = `
INSERT INTO interview_answers (id, set_id, question_id, question_order, user_answer, follow_up_question, follow_up_answer, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		answer.ID,
		answer.SetID,
		answer.QuestionID,
		answer.QuestionOrder,
		answer.UserAnswer,
		nullableString(answer.FollowUpQuestion),
		nullableString(answer.FollowUpAnswer),
		answer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAnswer
		}
		return err
	}
	return nil
}

// GetAnswer returns an answer by ID.
func (r *PGRepo) GetAnswer(ctx context.Context, answerID string) (Answer, error) {
	const query = `
SELECT id, set_id, question_id, question_order, user_answer, follow_up_question, follow_up_answer, created_at
FROM interview_answers
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, answerID)
	answer, err := scanAnswer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Answer{}, ErrAnswerNotFound
		}
		return Answer{}, err
	}
	return answer, nil
}

// GetAnswerByOrder returns the answer for a (set, question_order) pair.
func (r *PGRepo) GetAnswerByOrder(ctx context.Context, setID string, questionOrder int) (Answer, error) {
	const query = `
SELECT id, set_id, question_id, question_order, user_answer, follow_up_question, follow_up_answer, created_at
FROM interview_answers
WHERE set_id = $1 AND question_order = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, setID, questionOrder)
	answer, err := scanAnswer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Answer{}, ErrAnswerNotFound
		}
		return Answer{}, err
	}
	return answer, nil
}

// ListAnswers returns all answers for a set ordered by question_order.
func (r *PGRepo) ListAnswers(ctx context.Context, setID string) ([]Answer, error) {
	const query = `
SELECT id, set_id, question_id, question_order, user_answer, follow_up_question, follow_up_answer, created_at
FROM interview_answers
WHERE set_id = $1
ORDER BY question_order`
	rows, err := r.DB.QueryContext(ctx, query, setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Answer
	for rows.Next() {
		answer, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, answer)
	}
	return out, rows.Err()
}

// SetFollowUpAnswer stores the follow-up answer on an existing answer row.
func (r *PGRepo) SetFollowUpAnswer(ctx context.Context, answerID, followUpAnswer string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE interview_answers SET follow_up_answer = $1 WHERE id = $2`,
		followUpAnswer, answerID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAnswerNotFound
	}
	return nil
}

// MarkPendingEvaluation performs the in_progress -> pending_evaluation
// transition as a conditional update. A concurrent caller that lost the
// race simply sees zero rows affected.
func (r *PGRepo) MarkPendingEvaluation(ctx context.Context, setID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE interview_sets SET status = $1 WHERE id = $2 AND status = $3`,
		string(StatusPendingEvaluation), setID, string(StatusInProgress),
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CompleteSet writes the evaluation row and flips the set to completed in
// one transaction. The conditional update plus the unique constraint on
// interview_evaluations.set_id keep completion exactly-once.
func (r *PGRepo) CompleteSet(ctx context.Context, setID string, completedAt time.Time, eval Evaluation) error {
	feedback, err := json.Marshal(eval.DetailedFeedback)
	if err != nil {
		return fmt.Errorf("encode detailed feedback: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const evalQuery = `
INSERT INTO interview_evaluations (id, set_id, logic, evidence, job_understanding, formality, completeness, overall_feedback, detailed_feedback, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := tx.ExecContext(ctx, evalQuery,
		eval.ID,
		eval.SetID,
		eval.Logic,
		eval.Evidence,
		eval.JobUnderstanding,
		eval.Formality,
		eval.Completeness,
		eval.OverallFeedback,
		feedback,
		eval.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyCompleted
		}
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE interview_sets SET status = $1, completed_at = $2 WHERE id = $3 AND status = $4`,
		string(StatusCompleted), completedAt, setID, string(StatusPendingEvaluation),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotReady
	}
	return tx.Commit()
}

// GetEvaluation returns the evaluation for a set.
func (r *PGRepo) GetEvaluation(ctx context.Context, setID string) (Evaluation, error) {
	const query = `
SELECT id, set_id, logic, evidence, job_understanding, formality, completeness, overall_feedback, detailed_feedback, created_at
FROM interview_evaluations
WHERE set_id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, setID)

	var eval Evaluation
	var feedback []byte
	err := row.Scan(
		&eval.ID,
		&eval.SetID,
		&eval.Logic,
		&eval.Evidence,
		&eval.JobUnderstanding,
		&eval.Formality,
		&eval.Completeness,
		&eval.OverallFeedback,
		&feedback,
		&eval.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Evaluation{}, ErrEvaluationNotFound
		}
		return Evaluation{}, err
	}
	if len(feedback) > 0 {
		if err := json.Unmarshal(feedback, &eval.DetailedFeedback); err != nil {
			return Evaluation{}, fmt.Errorf("decode detailed feedback: %w", err)
		}
	}
	return eval, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSet(row rowScanner) (Set, error) {
	var set Set
	var status string
	var completedAt sql.NullTime
	err := row.Scan(
		&set.ID,
		&set.UserID,
		&set.Title,
		&set.JobType,
		&set.Level,
		&status,
		&set.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return Set{}, err
	}
	set.Status = Status(status)
	if completedAt.Valid {
		t := completedAt.Time
		set.CompletedAt = &t
	}
	return set, nil
}

func scanAnswer(row rowScanner) (Answer, error) {
	var answer Answer
	var followUpQuestion sql.NullString
	var followUpAnswer sql.NullString
	err := row.Scan(
		&answer.ID,
		&answer.SetID,
		&answer.QuestionID,
		&answer.QuestionOrder,
		&answer.UserAnswer,
		&followUpQuestion,
		&followUpAnswer,
		&answer.CreatedAt,
	)
	if err != nil {
		return Answer{}, err
	}
	if followUpQuestion.Valid {
		answer.FollowUpQuestion = followUpQuestion.String
	}
	if followUpAnswer.Valid {
		answer.FollowUpAnswer = followUpAnswer.String
	}
	return answer, nil
}

func nullableString(val string) sql.NullString {
	if val == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: val, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repo = (*PGRepo)(nil)

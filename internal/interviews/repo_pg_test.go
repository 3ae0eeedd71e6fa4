package interviews

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"interview-backend/internal/llm"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateSetWithQuestionsTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	set := Set{
		ID:        "set-1",
		UserID:    "user-1",
		Title:     "IT ENTRY Interview",
		JobType:   "it",
		Level:     "entry",
		Status:    StatusInProgress,
		CreatedAt: now,
	}
	items := []SetQuestion{
		{SetID: "set-1", QuestionID: "q1", QuestionOrder: 1, Category: "common"},
		{SetID: "set-1", QuestionID: "q2", QuestionOrder: 2, Category: "foreigner"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO interview_sets").
		WithArgs(set.ID, set.UserID, set.Title, set.JobType, set.Level, "in_progress", set.CreatedAt, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO interview_set_questions").
		WithArgs("set-1", "q1", 1, "common").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO interview_set_questions").
		WithArgs("set-1", "q2", 2, "foreigner").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.CreateSetWithQuestions(context.Background(), set, items); err != nil {
		t.Fatalf("CreateSetWithQuestions: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateSetRollsBackOnSnapshotFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO interview_sets").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO interview_set_questions").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	set := Set{ID: "set-1", Status: StatusInProgress, CreatedAt: time.Now().UTC()}
	items := []SetQuestion{{SetID: "set-1", QuestionID: "q1", QuestionOrder: 1, Category: "common"}}
	if err := repo.CreateSetWithQuestions(context.Background(), set, items); err == nil {
		t.Fatalf("expected error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateAnswerMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO interview_answers").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_interview_answers_set_order"})

	answer := Answer{
		ID:            "answer-1",
		SetID:         "set-1",
		QuestionID:    "q1",
		QuestionOrder: 1,
		UserAnswer:    "text",
		CreatedAt:     time.Now().UTC(),
	}
	if err := repo.CreateAnswer(context.Background(), answer); !errors.Is(err, ErrDuplicateAnswer) {
		t.Fatalf("expected ErrDuplicateAnswer, got %v", err)
	}
}

func TestPGRepoMarkPendingEvaluationConditional(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE interview_sets SET status").
		WithArgs("pending_evaluation", "set-1", "in_progress").
		WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := repo.MarkPendingEvaluation(context.Background(), "set-1")
	if err != nil {
		t.Fatalf("MarkPendingEvaluation: %v", err)
	}
	if !changed {
		t.Fatalf("expected a change")
	}

	// second call: the guard sees a non-in_progress row
	mock.ExpectExec("UPDATE interview_sets SET status").
		WithArgs("pending_evaluation", "set-1", "in_progress").
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err = repo.MarkPendingEvaluation(context.Background(), "set-1")
	if err != nil {
		t.Fatalf("MarkPendingEvaluation: %v", err)
	}
	if changed {
		t.Fatalf("expected no change on re-entry")
	}
}

func TestPGRepoCompleteSetWritesEvaluationAndStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	eval := Evaluation{
		ID:               "eval-1",
		SetID:            "set-1",
		Logic:            80,
		Evidence:         70,
		JobUnderstanding: 75,
		Formality:        85,
		Completeness:     65,
		OverallFeedback:  "Good effort.",
		DetailedFeedback: []llm.FeedbackItem{{QuestionOrder: 1, Feedback: "Fine.", Improvements: "More detail."}},
		CreatedAt:        now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO interview_evaluations").
		WithArgs(eval.ID, eval.SetID, 80, 70, 75, 85, 65, "Good effort.", sqlmock.AnyArg(), now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE interview_sets SET status").
		WithArgs("completed", now, "set-1", "pending_evaluation").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.CompleteSet(context.Background(), "set-1", now, eval); err != nil {
		t.Fatalf("CompleteSet: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCompleteSetDuplicateEvaluation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO interview_evaluations").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.CompleteSet(context.Background(), "set-1", time.Now().UTC(), Evaluation{ID: "eval-1", SetID: "set-1"})
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestPGRepoCompleteSetNotPending(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO interview_evaluations").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE interview_sets SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CompleteSet(context.Background(), "set-1", time.Now().UTC(), Evaluation{ID: "eval-1", SetID: "set-1"})
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestPGRepoGetEvaluationDecodesFeedback(t *testing.T) {
	repo, mock := newMockRepo(t)

	feedback := []llm.FeedbackItem{
		{QuestionOrder: 1, Question: "Q1", UserAnswer: "A1", Feedback: "Fine.", Improvements: "Numbers."},
		{QuestionOrder: 2, Question: "Q2", UserAnswer: "A2", Feedback: "Weak.", Improvements: "Structure."},
	}
	raw, err := json.Marshal(feedback)
	if err != nil {
		t.Fatalf("marshal feedback: %v", err)
	}

	now := time.Now().UTC()
	cols := []string{"id", "set_id", "logic", "evidence", "job_understanding", "formality", "completeness", "overall_feedback", "detailed_feedback", "created_at"}
	mock.ExpectQuery("SELECT id, set_id, logic").
		WithArgs("set-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("eval-1", "set-1", 80, 70, 75, 85, 65, "Overall fine.", raw, now))

	eval, err := repo.GetEvaluation(context.Background(), "set-1")
	if err != nil {
		t.Fatalf("GetEvaluation: %v", err)
	}
	if len(eval.DetailedFeedback) != 2 {
		t.Fatalf("expected 2 feedback items, got %d", len(eval.DetailedFeedback))
	}
	if eval.DetailedFeedback[1].Improvements != "Structure." {
		t.Fatalf("unexpected feedback decode: %+v", eval.DetailedFeedback[1])
	}
}

func TestPGRepoGetSetMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, user_id, title").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetSet(context.Background(), "missing"); !errors.Is(err, ErrSetNotFound) {
		t.Fatalf("expected ErrSetNotFound, got %v", err)
	}
}

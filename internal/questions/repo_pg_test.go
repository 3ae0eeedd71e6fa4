package questions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateStoresNullableFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	q := Question{
		ID:          "question-1",
		Question:    "Why this company?",
		Category:    CategoryCommon,
		ModelAnswer: "Because ...",
		Reasoning:   "Tests motivation.",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO questions").
		WithArgs(
			q.ID,
			q.Question,
			q.Category,
			sql.NullString{},
			sql.NullString{},
			q.ModelAnswer,
			q.Reasoning,
			q.CreatedAt,
			q.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), q); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, question, category").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByCategoryAppliesJobTypeFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	cols := []string{"id", "question", "category", "job_type", "level", "model_answer", "reasoning", "created_at", "updated_at"}

	mock.ExpectQuery("WHERE category = \\$1 AND job_type = \\$2").
		WithArgs(CategoryJob, JobTypeIT, 20).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("q1", "text", CategoryJob, JobTypeIT, LevelEntry, "answer", "reason", now, now))

	items, err := repo.ListByCategory(context.Background(), CategoryJob, JobTypeIT, 0)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 row, got %d", len(items))
	}
	if items[0].JobType != JobTypeIT {
		t.Fatalf("expected job type %q, got %q", JobTypeIT, items[0].JobType)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE questions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	q := Question{ID: "missing", Question: "x", Category: CategoryCommon, ModelAnswer: "a", Reasoning: "r"}
	if err := repo.Update(context.Background(), q); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

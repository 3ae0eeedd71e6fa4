package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) CreateNote(ctx context.Context, note Note, entries []Entry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const noteQuery = `
INSERT INTO answer_notes (id, user_id, title, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err = tx.ExecContext(ctx, noteQuery,
		note.ID,
		note.UserID,
		note.Title,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	const entryQuery = `
INSERT INTO answer_note_entries
  (id, note_id, question_id, initial_answer, feedback, improvements, final_answer, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, entry := range entries {
		_, err = tx.ExecContext(ctx, entryQuery,
			entry.ID,
			entry.NoteID,
			entry.QuestionID,
			entry.InitialAnswer,
			nullableString(entry.Feedback),
			nullableString(entry.Improvements),
			nullableString(entry.FinalAnswer),
			entry.CreatedAt,
			entry.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert note entry: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepo) GetNote(ctx context.Context, noteID string) (Note, error) {
	const query = `
SELECT id, user_id, title, created_at, updated_at
FROM answer_notes
WHERE id = $1
LIMIT 1`
	var note Note
	err := r.DB.QueryRowContext(ctx, query, noteID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Note{}, ErrNoteNotFound
		}
		return Note{}, err
	}
	return note, nil
}

func (r *PGRepo) ListNotesByUser(ctx context.Context, userID string) ([]NoteSummary, error) {
	const query = `
SELECT n.id, n.user_id, n.title, n.created_at, n.updated_at, COUNT(e.id)
FROM answer_notes n
LEFT JOIN answer_note_entries e ON e.note_id = n.id
WHERE n.user_id = $1
GROUP BY n.id, n.user_id, n.title, n.created_at, n.updated_at
ORDER BY n.updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []NoteSummary
	for rows.Next() {
		var summary NoteSummary
		err := rows.Scan(
			&summary.ID,
			&summary.UserID,
			&summary.Title,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.EntryCount,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (r *PGRepo) UpdateNoteTitle(ctx context.Context, noteID, title string, updatedAt time.Time) error {
	const query = `UPDATE answer_notes SET title = $1, updated_at = $2 WHERE id = $3`
	result, err := r.DB.ExecContext(ctx, query, title, updatedAt, noteID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *PGRepo) TouchNote(ctx context.Context, noteID string, updatedAt time.Time) error {
	const query = `UPDATE answer_notes SET updated_at = $1 WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, updatedAt, noteID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *PGRepo) DeleteNote(ctx context.Context, noteID string) error {
	const query = `DELETE FROM answer_notes WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, noteID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *PGRepo) ListEntries(ctx context.Context, noteID string) ([]Entry, error) {
	const query = `
SELECT id, note_id, question_id, initial_answer, feedback, improvements, final_answer, created_at, updated_at
FROM answer_note_entries
WHERE note_id = $1
ORDER BY updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *PGRepo) CreateEntry(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO answer_note_entries
  (id, note_id, question_id, initial_answer, feedback, improvements, final_answer, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.NoteID,
		entry.QuestionID,
		entry.InitialAnswer,
		nullableString(entry.Feedback),
		nullableString(entry.Improvements),
		nullableString(entry.FinalAnswer),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetEntry(ctx context.Context, entryID string) (Entry, error) {
	const query = `
SELECT id, note_id, question_id, initial_answer, feedback, improvements, final_answer, created_at, updated_at
FROM answer_note_entries
WHERE id = $1
LIMIT 1`
	entry, err := scanEntry(r.DB.QueryRowContext(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, err
	}
	return entry, nil
}

func (r *PGRepo) UpdateEntry(ctx context.Context, entry Entry) error {
	const query = `
UPDATE answer_note_entries
SET initial_answer = $1, feedback = $2, improvements = $3, final_answer = $4, updated_at = $5
WHERE id = $6`
	result, err := r.DB.ExecContext(ctx, query,
		entry.InitialAnswer,
		nullableString(entry.Feedback),
		nullableString(entry.Improvements),
		nullableString(entry.FinalAnswer),
		entry.UpdatedAt,
		entry.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *PGRepo) DeleteEntry(ctx context.Context, entryID string) error {
	const query = `DELETE FROM answer_note_entries WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, entryID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var feedback sql.NullString
	var improvements sql.NullString
	var finalAnswer sql.NullString
	err := row.Scan(
		&entry.ID,
		&entry.NoteID,
		&entry.QuestionID,
		&entry.InitialAnswer,
		&feedback,
		&improvements,
		&finalAnswer,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return Entry{}, err
	}
	if feedback.Valid {
		entry.Feedback = feedback.String
	}
	if improvements.Valid {
		entry.Improvements = improvements.String
	}
	if finalAnswer.Valid {
		entry.FinalAnswer = finalAnswer.String
	}
	return entry, nil
}

func nullableString(val string) sql.NullString {
	if val == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: val, Valid: true}
}

var _ Repo = (*PGRepo)(nil)

package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"interview-backend/internal/questions"
)

// QuestionCatalog resolves the question an entry references.
type QuestionCatalog interface {
	GetByID(ctx context.Context, id string) (questions.Question, error)
}

type Service struct {
	Repo    Repo
	Catalog QuestionCatalog
}

func NewService(repo Repo, catalog QuestionCatalog) *Service {
	return &Service{Repo: repo, Catalog: catalog}
}

type EntryInput struct {
	QuestionID    string
	InitialAnswer string
	Feedback      string
	Improvements  string
	FinalAnswer   string
}

type CreateNoteInput struct {
	Title   string
	Entries []EntryInput
}

// EntryUpdate carries partial changes; nil fields are left untouched.
type EntryUpdate struct {
	InitialAnswer *string
	Feedback      *string
	Improvements  *string
	FinalAnswer   *string
}

type NoteDetail struct {
	Note
	Entries []Entry
}

func (s *Service) CreateNote(ctx context.Context, userID string, input CreateNoteInput) (NoteDetail, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return NoteDetail{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	for _, entry := range input.Entries {
		if err := s.validateEntryInput(ctx, entry); err != nil {
			return NoteDetail{}, err
		}
	}

	now := time.Now().UTC()
	note := Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	entries := make([]Entry, 0, len(input.Entries))
	for _, entry := range input.Entries {
		entries = append(entries, Entry{
			ID:            uuid.NewString(),
			NoteID:        note.ID,
			QuestionID:    entry.QuestionID,
			InitialAnswer: entry.InitialAnswer,
			Feedback:      entry.Feedback,
			Improvements:  entry.Improvements,
			FinalAnswer:   entry.FinalAnswer,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if err := s.Repo.CreateNote(ctx, note, entries); err != nil {
		return NoteDetail{}, fmt.Errorf("create answer note: %w", err)
	}
	return NoteDetail{Note: note, Entries: entries}, nil
}

func (s *Service) ListNotes(ctx context.Context, userID string) ([]NoteSummary, error) {
	return s.Repo.ListNotesByUser(ctx, userID)
}

func (s *Service) GetNoteDetail(ctx context.Context, userID, noteID string) (NoteDetail, error) {
	note, err := s.ownedNote(ctx, userID, noteID)
	if err != nil {
		return NoteDetail{}, err
	}
	entries, err := s.Repo.ListEntries(ctx, noteID)
	if err != nil {
		return NoteDetail{}, err
	}
	return NoteDetail{Note: note, Entries: entries}, nil
}

func (s *Service) UpdateNote(ctx context.Context, userID, noteID string, title *string) (NoteDetail, error) {
	note, err := s.ownedNote(ctx, userID, noteID)
	if err != nil {
		return NoteDetail{}, err
	}

	now := time.Now().UTC()
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return NoteDetail{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		note.Title = trimmed
	}
	note.UpdatedAt = now
	if err := s.Repo.UpdateNoteTitle(ctx, noteID, note.Title, now); err != nil {
		return NoteDetail{}, err
	}

	entries, err := s.Repo.ListEntries(ctx, noteID)
	if err != nil {
		return NoteDetail{}, err
	}
	return NoteDetail{Note: note, Entries: entries}, nil
}

func (s *Service) DeleteNote(ctx context.Context, userID, noteID string) error {
	if _, err := s.ownedNote(ctx, userID, noteID); err != nil {
		return err
	}
	return s.Repo.DeleteNote(ctx, noteID)
}

func (s *Service) AddEntry(ctx context.Context, userID, noteID string, input EntryInput) (Entry, error) {
	if _, err := s.ownedNote(ctx, userID, noteID); err != nil {
		return Entry{}, err
	}
	if err := s.validateEntryInput(ctx, input); err != nil {
		return Entry{}, err
	}

	now := time.Now().UTC()
	entry := Entry{
		ID:            uuid.NewString(),
		NoteID:        noteID,
		QuestionID:    input.QuestionID,
		InitialAnswer: input.InitialAnswer,
		Feedback:      input.Feedback,
		Improvements:  input.Improvements,
		FinalAnswer:   input.FinalAnswer,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.CreateEntry(ctx, entry); err != nil {
		return Entry{}, fmt.Errorf("create answer note entry: %w", err)
	}
	if err := s.Repo.TouchNote(ctx, noteID, now); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Service) UpdateEntry(ctx context.Context, userID, noteID, entryID string, update EntryUpdate) (Entry, error) {
	if _, err := s.ownedNote(ctx, userID, noteID); err != nil {
		return Entry{}, err
	}
	entry, err := s.Repo.GetEntry(ctx, entryID)
	if err != nil {
		return Entry{}, err
	}
	if entry.NoteID != noteID {
		return Entry{}, ErrEntryNotFound
	}

	if update.InitialAnswer != nil {
		if strings.TrimSpace(*update.InitialAnswer) == "" {
			return Entry{}, fmt.Errorf("%w: initial_answer cannot be empty", ErrInvalidInput)
		}
		entry.InitialAnswer = *update.InitialAnswer
	}
	if update.Feedback != nil {
		entry.Feedback = *update.Feedback
	}
	if update.Improvements != nil {
		entry.Improvements = *update.Improvements
	}
	if update.FinalAnswer != nil {
		entry.FinalAnswer = *update.FinalAnswer
	}

	now := time.Now().UTC()
	entry.UpdatedAt = now
	if err := s.Repo.UpdateEntry(ctx, entry); err != nil {
		return Entry{}, err
	}
	if err := s.Repo.TouchNote(ctx, noteID, now); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Service) DeleteEntry(ctx context.Context, userID, noteID, entryID string) error {
	if _, err := s.ownedNote(ctx, userID, noteID); err != nil {
		return err
	}
	entry, err := s.Repo.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.NoteID != noteID {
		return ErrEntryNotFound
	}
	if err := s.Repo.DeleteEntry(ctx, entryID); err != nil {
		return err
	}
	return s.Repo.TouchNote(ctx, noteID, time.Now().UTC())
}

func (s *Service) ownedNote(ctx context.Context, userID, noteID string) (Note, error) {
	note, err := s.Repo.GetNote(ctx, noteID)
	if err != nil {
		return Note{}, err
	}
	if note.UserID != userID {
		return Note{}, ErrForbidden
	}
	return note, nil
}

func (s *Service) validateEntryInput(ctx context.Context, input EntryInput) error {
	if strings.TrimSpace(input.QuestionID) == "" {
		return fmt.Errorf("%w: question_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.InitialAnswer) == "" {
		return fmt.Errorf("%w: initial_answer is required", ErrInvalidInput)
	}
	if _, err := s.Catalog.GetByID(ctx, input.QuestionID); err != nil {
		if errors.Is(err, questions.ErrNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return nil
}

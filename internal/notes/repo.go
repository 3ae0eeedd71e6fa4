package notes

import (
	"context"
	"time"
)

type Repo interface {
	CreateNote(ctx context.Context, note Note, entries []Entry) error
	GetNote(ctx context.Context, noteID string) (Note, error)
	ListNotesByUser(ctx context.Context, userID string) ([]NoteSummary, error)
	UpdateNoteTitle(ctx context.Context, noteID, title string, updatedAt time.Time) error
	TouchNote(ctx context.Context, noteID string, updatedAt time.Time) error
	DeleteNote(ctx context.Context, noteID string) error

	ListEntries(ctx context.Context, noteID string) ([]Entry, error)
	CreateEntry(ctx context.Context, entry Entry) error
	GetEntry(ctx context.Context, entryID string) (Entry, error)
	UpdateEntry(ctx context.Context, entry Entry) error
	DeleteEntry(ctx context.Context, entryID string) error
}

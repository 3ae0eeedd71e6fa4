package notes

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	notes   map[string]Note
	entries map[string]Entry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		notes:   make(map[string]Note),
		entries: make(map[string]Entry),
	}
}

func (r *MemoryRepo) CreateNote(ctx context.Context, note Note, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[note.ID] = note
	for _, entry := range entries {
		r.entries[entry.ID] = entry
	}
	return nil
}

func (r *MemoryRepo) GetNote(ctx context.Context, noteID string) (Note, error) {
	if err := ctx.Err(); err != nil {
		return Note{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	note, ok := r.notes[noteID]
	if !ok {
		return Note{}, ErrNoteNotFound
	}
	return note, nil
}

func (r *MemoryRepo) ListNotesByUser(ctx context.Context, userID string) ([]NoteSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var summaries []NoteSummary
	for _, note := range r.notes {
		if note.UserID != userID {
			continue
		}
		count := 0
		for _, entry := range r.entries {
			if entry.NoteID == note.ID {
				count++
			}
		}
		summaries = append(summaries, NoteSummary{Note: note, EntryCount: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

func (r *MemoryRepo) UpdateNoteTitle(ctx context.Context, noteID, title string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[noteID]
	if !ok {
		return ErrNoteNotFound
	}
	note.Title = title
	note.UpdatedAt = updatedAt
	r.notes[noteID] = note
	return nil
}

func (r *MemoryRepo) TouchNote(ctx context.Context, noteID string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[noteID]
	if !ok {
		return ErrNoteNotFound
	}
	note.UpdatedAt = updatedAt
	r.notes[noteID] = note
	return nil
}

func (r *MemoryRepo) DeleteNote(ctx context.Context, noteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[noteID]; !ok {
		return ErrNoteNotFound
	}
	delete(r.notes, noteID)
	for id, entry := range r.entries {
		if entry.NoteID == noteID {
			delete(r.entries, id)
		}
	}
	return nil
}

func (r *MemoryRepo) ListEntries(ctx context.Context, noteID string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var entries []Entry
	for _, entry := range r.entries {
		if entry.NoteID == noteID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	return entries, nil
}

func (r *MemoryRepo) CreateEntry(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = entry
	return nil
}

func (r *MemoryRepo) GetEntry(ctx context.Context, entryID string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[entryID]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (r *MemoryRepo) UpdateEntry(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; !ok {
		return ErrEntryNotFound
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *MemoryRepo) DeleteEntry(ctx context.Context, entryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entryID]; !ok {
		return ErrEntryNotFound
	}
	delete(r.entries, entryID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)

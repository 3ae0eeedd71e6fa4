package notes

import "time"

// Note is a personal scratchpad for practicing individual questions,
// independent of any interview set.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteSummary is a note row plus its entry count, for list views.
type NoteSummary struct {
	Note
	EntryCount int `json:"entriesCount"`
}

type Entry struct {
	ID            string    `json:"id"`
	NoteID        string    `json:"noteId"`
	QuestionID    string    `json:"questionId"`
	InitialAnswer string    `json:"initialAnswer"`
	Feedback      string    `json:"feedback"`
	Improvements  string    `json:"improvements"`
	FinalAnswer   string    `json:"finalAnswer"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

package notes

import "errors"

var (
	ErrNoteNotFound     = errors.New("answer note not found")
	ErrEntryNotFound    = errors.New("answer note entry not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrForbidden        = errors.New("answer note belongs to another user")
	ErrInvalidInput     = errors.New("invalid input")
)

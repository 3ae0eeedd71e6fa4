package interviews

import (
	"time"

	"interview-backend/internal/llm"
)

// Set is one practice interview session.
type Set struct {
	ID          string
	UserID      string
	Title       string
	JobType     string
	Level       string
	Status      Status
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// SetQuestion is an immutable snapshot of a question assigned to a set.
// The snapshot survives later catalog edits, so history stays coherent.
type SetQuestion struct {
	SetID         string
	QuestionID    string
	QuestionOrder int
	Category      string
}

// Answer is a user's answer to one assigned question, optionally carrying
// an AI follow-up question and its answer.
type Answer struct {
	ID               string
	SetID            string
	QuestionID       string
	QuestionOrder    int
	UserAnswer       string
	FollowUpQuestion string
	FollowUpAnswer   string
	CreatedAt        time.Time
}

// HasPendingFollowUp reports whether the answer still owes a follow-up
// answer before it counts as complete.
func (a Answer) HasPendingFollowUp() bool {
	return a.FollowUpQuestion != "" && a.FollowUpAnswer == ""
}

// Evaluation is the composite AI assessment of a completed set. Scores
// are integers in [0,100].
type Evaluation struct {
	ID               string
	SetID            string
	Logic            int
	Evidence         int
	JobUnderstanding int
	Formality        int
	Completeness     int
	OverallFeedback  string
	DetailedFeedback []llm.FeedbackItem
	CreatedAt        time.Time
}

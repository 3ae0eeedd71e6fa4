package interviews

import "fmt"

// Status is the lifecycle state of an interview set.
type Status string

const (
	StatusInProgress        Status = "in_progress"
	StatusPendingEvaluation Status = "pending_evaluation"
	StatusCompleted         Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusPendingEvaluation, StatusCompleted:
		return true
	}
	return false
}

// transitions is the complete set of legal status moves. The lifecycle is
// strictly linear: no state is skipped and nothing moves backward.
var transitions = map[Status]Status{
	StatusInProgress:        StatusPendingEvaluation,
	StatusPendingEvaluation: StatusCompleted,
}

// Transition validates a status move. Both the completion evaluator and the
// complete operation go through this single check.
func Transition(from, to Status) error {
	if next, ok := transitions[from]; ok && next == to {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

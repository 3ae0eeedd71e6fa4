package interviews

import "errors"

var (
	// ErrSetNotFound indicates the interview set does not exist.
	ErrSetNotFound = errors.New("interview set not found")
	// ErrAnswerNotFound indicates the referenced answer does not exist.
	ErrAnswerNotFound = errors.New("answer not found")
	// ErrForbidden indicates the set belongs to a different user.
	ErrForbidden = errors.New("interview set belongs to another user")
	// ErrDuplicateAnswer indicates an answer already exists for the
	// (set, question_order) pair.
	ErrDuplicateAnswer = errors.New("answer already submitted for this question")
	// ErrAlreadyCompleted indicates the set was evaluated before.
	ErrAlreadyCompleted = errors.New("interview set already completed")
	// ErrNotReady indicates completion was requested while answers are
	// still outstanding.
	ErrNotReady = errors.New("interview set is not ready for evaluation")
	// ErrNoAnswers indicates a pending set unexpectedly has no answers.
	ErrNoAnswers = errors.New("interview set has no answers")
	// ErrAudioNotSupported indicates an audio-only payload; transcription
	// is not implemented.
	ErrAudioNotSupported = errors.New("audio transcription is not implemented")
	// ErrInvalidTransition indicates an illegal status move.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrEvaluationNotFound indicates no evaluation row exists for the set.
	ErrEvaluationNotFound = errors.New("evaluation not found")
	// ErrInvalidInput indicates a request that fails domain validation.
	ErrInvalidInput = errors.New("invalid input")
)

package llm

import (
	"context"
	"errors"
)

// FollowUpInput captures the inputs for generating a probing follow-up
// question to a submitted answer.
type FollowUpInput struct {
	Question   string
	UserAnswer string
	Model      string
}

// FollowUpGenerator produces a follow-up question for an answer. Callers
// treat a failure as "no follow-up" rather than failing the submission.
type FollowUpGenerator interface {
	GenerateFollowUp(ctx context.Context, input FollowUpInput) (string, error)
}

// AnswerInput is one question/answer pair in submission order.
type AnswerInput struct {
	QuestionOrder    int
	QuestionID       string
	Question         string
	UserAnswer       string
	FollowUpQuestion string
	FollowUpAnswer   string
}

// EvaluateInput carries the full ordered transcript of an interview set.
type EvaluateInput struct {
	Answers []AnswerInput
	Model   string
}

// FeedbackItem is the per-question portion of an evaluation.
type FeedbackItem struct {
	QuestionOrder    int    `json:"question_order"`
	QuestionID       string `json:"question_id,omitempty"`
	Question         string `json:"question"`
	UserAnswer       string `json:"user_answer"`
	FollowUpQuestion string `json:"follow_up_question,omitempty"`
	FollowUpAnswer   string `json:"follow_up_answer,omitempty"`
	Feedback         string `json:"feedback"`
	Improvements     string `json:"improvements"`
}

// EvaluationResult is the composite evaluation of an interview set.
// Scores are integers in [0,100].
type EvaluationResult struct {
	Logic            int
	Evidence         int
	JobUnderstanding int
	Formality        int
	Completeness     int
	OverallFeedback  string
	DetailedFeedback []FeedbackItem
}

// InterviewEvaluator scores a finished interview. A failure propagates to
// the caller and must leave the set untouched.
type InterviewEvaluator interface {
	EvaluateInterview(ctx context.Context, input EvaluateInput) (EvaluationResult, error)
}

// ErrNotImplemented is returned by the placeholder implementations.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderFollowUpGenerator is a stub for environments without an LLM
// provider configured.
type PlaceholderFollowUpGenerator struct{}

// GenerateFollowUp returns ErrNotImplemented.
func (PlaceholderFollowUpGenerator) GenerateFollowUp(ctx context.Context, input FollowUpInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotImplemented
}

// PlaceholderInterviewEvaluator is a stub for environments without an LLM
// provider configured.
type PlaceholderInterviewEvaluator struct{}

// EvaluateInterview returns ErrNotImplemented.
func (PlaceholderInterviewEvaluator) EvaluateInterview(ctx context.Context, input EvaluateInput) (EvaluationResult, error) {
	_ = ctx
	_ = input
	return EvaluationResult{}, ErrNotImplemented
}

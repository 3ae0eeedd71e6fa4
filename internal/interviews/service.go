package interviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"interview-backend/internal/llm"
	"interview-backend/internal/questions"
	"interview-backend/internal/shared/metrics"
	"interview-backend/internal/shared/telemetry"
)

const unknownQuestionText = "Unknown question"

// QuestionCatalog is the catalog view the service needs beyond the
// selector's pool: resolving snapshot rows back to question text.
type QuestionCatalog interface {
	QuestionPool
	GetByID(ctx context.Context, questionID string) (questions.Question, error)
}

// Service owns the interview-set lifecycle: creation, answer submission,
// the completion state machine and the final evaluation.
type Service struct {
	Repo      Repo
	Catalog   QuestionCatalog
	Selector  *Selector
	FollowUps llm.FollowUpGenerator
	Evaluator llm.InterviewEvaluator
}

// CreateSetInput carries the parameters for a new interview set.
type CreateSetInput struct {
	UserID        string
	Title         string
	JobType       string
	Level         string
	QuestionCount int
}

// CreateSetResult is the created set plus its assigned questions in order.
type CreateSetResult struct {
	Set       Set
	Questions []AssignedQuestion
}

// AssignedQuestion pairs a catalog question with its order in the set.
type AssignedQuestion struct {
	ID       string
	Question string
	Order    int
	Category string
}

func (in *CreateSetInput) validate() error {
	if !questions.ValidJobType(in.JobType) {
		return fmt.Errorf("%w: unknown job type %q", ErrInvalidInput, in.JobType)
	}
	if !questions.ValidLevel(in.Level) {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidInput, in.Level)
	}
	if in.QuestionCount == 0 {
		in.QuestionCount = 3
	}
	if in.QuestionCount < 1 || in.QuestionCount > 10 {
		return fmt.Errorf("%w: question count must be between 1 and 10", ErrInvalidInput)
	}
	return nil
}

// CreateSet selects questions and creates the set with its snapshot rows.
// Selection runs first so an insufficient catalog never leaves partial
// state behind.
func (s *Service) CreateSet(ctx context.Context, in CreateSetInput) (CreateSetResult, error) {
	if err := in.validate(); err != nil {
		return CreateSetResult{}, err
	}

	now := time.Now().UTC()
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = fmt.Sprintf("%s %s Interview (%s)",
			strings.ToUpper(in.JobType), strings.ToUpper(in.Level), now.Format("2006-01-02"))
	}

	selected, err := s.Selector.Select(ctx, in.QuestionCount, in.JobType)
	if err != nil {
		return CreateSetResult{}, err
	}

	set := Set{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Title:     title,
		JobType:   in.JobType,
		Level:     in.Level,
		Status:    StatusInProgress,
		CreatedAt: now,
	}

	items := make([]SetQuestion, 0, len(selected))
	assigned := make([]AssignedQuestion, 0, len(selected))
	for idx, q := range selected {
		order := idx + 1
		items = append(items, SetQuestion{
			SetID:         set.ID,
			QuestionID:    q.ID,
			QuestionOrder: order,
			Category:      q.Category,
		})
		assigned = append(assigned, AssignedQuestion{
			ID:       q.ID,
			Question: q.Question,
			Order:    order,
			Category: q.Category,
		})
	}

	if err := s.Repo.CreateSetWithQuestions(ctx, set, items); err != nil {
		return CreateSetResult{}, err
	}
	metrics.IncSetCreated()
	telemetry.Info("interview.set_created", map[string]any{
		"set_id":         set.ID,
		"user_id":        set.UserID,
		"question_count": len(items),
		"job_type":       set.JobType,
		"level":          set.Level,
	})
	return CreateSetResult{Set: set, Questions: assigned}, nil
}

// ListSets returns the user's sets, newest first.
func (s *Service) ListSets(ctx context.Context, userID string) ([]Set, error) {
	return s.Repo.ListSetsByUser(ctx, userID)
}

// SubmitAnswerInput carries one answer submission.
type SubmitAnswerInput struct {
	UserID         string
	SetID          string
	QuestionID     string
	QuestionOrder  int
	UserAnswer     string
	HasAudio       bool
	EnableFollowUp bool
	Model          string
}

// SubmitAnswerResult reports the stored answer and any follow-up question.
type SubmitAnswerResult struct {
	AnswerID         string
	FollowUpQuestion string
}

// SubmitAnswer stores one answer. A duplicate (set, question_order) pair
// fails with ErrDuplicateAnswer; follow-up generation failure is absorbed
// and the answer saved without one. When no follow-up is pending the
// completion check runs immediately.
func (s *Service) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (SubmitAnswerResult, error) {
	if in.QuestionOrder < 1 {
		return SubmitAnswerResult{}, fmt.Errorf("%w: question order must be at least 1", ErrInvalidInput)
	}
	if strings.TrimSpace(in.UserAnswer) == "" {
		if in.HasAudio {
			return SubmitAnswerResult{}, ErrAudioNotSupported
		}
		return SubmitAnswerResult{}, fmt.Errorf("%w: an answer is required", ErrInvalidInput)
	}

	// Pre-check is an optimization; the unique constraint is the guard.
	if _, err := s.Repo.GetAnswerByOrder(ctx, in.SetID, in.QuestionOrder); err == nil {
		return SubmitAnswerResult{}, ErrDuplicateAnswer
	} else if !errors.Is(err, ErrAnswerNotFound) {
		return SubmitAnswerResult{}, err
	}

	followUp := ""
	if in.EnableFollowUp {
		followUp = s.generateFollowUp(ctx, in)
	}

	answer := Answer{
		ID:               uuid.NewString(),
		SetID:            in.SetID,
		QuestionID:       in.QuestionID,
		QuestionOrder:    in.QuestionOrder,
		UserAnswer:       in.UserAnswer,
		FollowUpQuestion: followUp,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.CreateAnswer(ctx, answer); err != nil {
		return SubmitAnswerResult{}, err
	}
	metrics.IncAnswerSubmitted()

	if followUp == "" {
		if _, err := s.checkCompletion(ctx, in.SetID); err != nil {
			return SubmitAnswerResult{}, err
		}
	}
	return SubmitAnswerResult{AnswerID: answer.ID, FollowUpQuestion: followUp}, nil
}

// generateFollowUp asks the generator for a probing question. Failures are
// logged and reported as "no follow-up"; they never fail the submission.
func (s *Service) generateFollowUp(ctx context.Context, in SubmitAnswerInput) string {
	questionText := ""
	if q, err := s.Catalog.GetByID(ctx, in.QuestionID); err == nil {
		questionText = q.Question
	}

	followUp, err := s.FollowUps.GenerateFollowUp(ctx, llm.FollowUpInput{
		Question:   questionText,
		UserAnswer: in.UserAnswer,
		Model:      in.Model,
	})
	if err != nil {
		metrics.IncFollowUpFailed()
		telemetry.Warn("interview.follow_up_failed", map[string]any{
			"set_id":      in.SetID,
			"question_id": in.QuestionID,
			"error":       err.Error(),
		})
		return ""
	}
	if followUp != "" {
		metrics.IncFollowUpGenerated()
	}
	return followUp
}

// SubmitFollowUpInput carries a follow-up answer submission.
type SubmitFollowUpInput struct {
	UserID         string
	AnswerID       string
	FollowUpAnswer string
	HasAudio       bool
}

// SubmitFollowUp stores the follow-up answer and re-runs the completion
// check for the answer's set.
func (s *Service) SubmitFollowUp(ctx context.Context, in SubmitFollowUpInput) error {
	if strings.TrimSpace(in.FollowUpAnswer) == "" {
		if in.HasAudio {
			return ErrAudioNotSupported
		}
		return fmt.Errorf("%w: a follow-up answer is required", ErrInvalidInput)
	}

	answer, err := s.Repo.GetAnswer(ctx, in.AnswerID)
	if err != nil {
		return err
	}
	if err := s.Repo.SetFollowUpAnswer(ctx, in.AnswerID, in.FollowUpAnswer); err != nil {
		return err
	}
	_, err = s.checkCompletion(ctx, answer.SetID)
	return err
}

// checkCompletion re-evaluates set readiness from scratch: every snapshot
// question answered and every generated follow-up question answered too.
// When ready it performs the in_progress -> pending_evaluation transition;
// the conditional update makes concurrent re-entry transition at most once.
func (s *Service) checkCompletion(ctx context.Context, setID string) (bool, error) {
	set, err := s.Repo.GetSet(ctx, setID)
	if err != nil {
		if errors.Is(err, ErrSetNotFound) {
			return false, nil
		}
		return false, err
	}
	if set.Status != StatusInProgress {
		return false, nil
	}
	if err := Transition(set.Status, StatusPendingEvaluation); err != nil {
		return false, err
	}

	total, err := s.Repo.CountSetQuestions(ctx, setID)
	if err != nil {
		return false, err
	}
	if total == 0 {
		return false, nil
	}

	answers, err := s.Repo.ListAnswers(ctx, setID)
	if err != nil {
		return false, err
	}
	if len(answers) < total {
		return false, nil
	}
	for _, answer := range answers {
		if answer.HasPendingFollowUp() {
			return false, nil
		}
	}

	changed, err := s.Repo.MarkPendingEvaluation(ctx, setID)
	if err != nil {
		return false, err
	}
	if changed {
		telemetry.Info("interview.pending_evaluation", map[string]any{
			"set_id":            setID,
			"status_transition": fmt.Sprintf("%s->%s", StatusInProgress, StatusPendingEvaluation),
		})
	}
	return changed, nil
}

// Complete runs the composite evaluation and finalizes the set. Checks run
// in order: existence, ownership, already-completed, readiness, answers
// present. An evaluator failure leaves the set in pending_evaluation.
func (s *Service) Complete(ctx context.Context, userID, setID, model string) (Evaluation, error) {
	set, err := s.Repo.GetSet(ctx, setID)
	if err != nil {
		return Evaluation{}, err
	}
	if set.UserID != userID {
		return Evaluation{}, ErrForbidden
	}
	if set.Status == StatusCompleted {
		return Evaluation{}, ErrAlreadyCompleted
	}
	if err := Transition(set.Status, StatusCompleted); err != nil {
		return Evaluation{}, ErrNotReady
	}

	answers, err := s.Repo.ListAnswers(ctx, setID)
	if err != nil {
		return Evaluation{}, err
	}
	if len(answers) == 0 {
		return Evaluation{}, ErrNoAnswers
	}

	transcript := make([]llm.AnswerInput, 0, len(answers))
	for _, answer := range answers {
		questionText := unknownQuestionText
		if q, err := s.Catalog.GetByID(ctx, answer.QuestionID); err == nil {
			questionText = q.Question
		}
		transcript = append(transcript, llm.AnswerInput{
			QuestionOrder:    answer.QuestionOrder,
			QuestionID:       answer.QuestionID,
			Question:         questionText,
			UserAnswer:       answer.UserAnswer,
			FollowUpQuestion: answer.FollowUpQuestion,
			FollowUpAnswer:   answer.FollowUpAnswer,
		})
	}

	started := metrics.NowMillis()
	result, err := s.Evaluator.EvaluateInterview(ctx, llm.EvaluateInput{Answers: transcript, Model: model})
	metrics.ObserveEvaluationDurationMs(metrics.NowMillis() - started)
	if err != nil {
		metrics.IncEvaluationFailed()
		telemetry.Error("interview.evaluation_failed", map[string]any{
			"set_id": setID,
			"error":  err.Error(),
		})
		return Evaluation{}, fmt.Errorf("interview evaluation: %w", err)
	}

	now := time.Now().UTC()
	eval := Evaluation{
		ID:               uuid.NewString(),
		SetID:            setID,
		Logic:            result.Logic,
		Evidence:         result.Evidence,
		JobUnderstanding: result.JobUnderstanding,
		Formality:        result.Formality,
		Completeness:     result.Completeness,
		OverallFeedback:  result.OverallFeedback,
		DetailedFeedback: result.DetailedFeedback,
		CreatedAt:        now,
	}
	if err := s.Repo.CompleteSet(ctx, setID, now, eval); err != nil {
		return Evaluation{}, err
	}
	metrics.IncEvaluationCompleted()
	telemetry.Info("interview.completed", map[string]any{
		"set_id":            setID,
		"status_transition": fmt.Sprintf("%s->%s", StatusPendingEvaluation, StatusCompleted),
	})
	return eval, nil
}

// SetDetail is the full view of one interview set.
type SetDetail struct {
	Set               Set
	Questions         []AssignedQuestion
	Answers           []Answer
	Evaluation        *Evaluation
	NextQuestionOrder *int
}

// GetSetDetail returns the set with its snapshot questions, answers,
// evaluation and the smallest unanswered question order.
func (s *Service) GetSetDetail(ctx context.Context, userID, setID string) (SetDetail, error) {
	set, err := s.Repo.GetSet(ctx, setID)
	if err != nil {
		return SetDetail{}, err
	}
	if set.UserID != userID {
		return SetDetail{}, ErrForbidden
	}

	items, err := s.Repo.ListSetQuestions(ctx, setID)
	if err != nil {
		return SetDetail{}, err
	}
	assigned := make([]AssignedQuestion, 0, len(items))
	for _, item := range items {
		q, err := s.Catalog.GetByID(ctx, item.QuestionID)
		if err != nil {
			if errors.Is(err, questions.ErrNotFound) {
				continue
			}
			return SetDetail{}, err
		}
		assigned = append(assigned, AssignedQuestion{
			ID:       item.QuestionID,
			Question: q.Question,
			Order:    item.QuestionOrder,
			Category: item.Category,
		})
	}

	answers, err := s.Repo.ListAnswers(ctx, setID)
	if err != nil {
		return SetDetail{}, err
	}

	detail := SetDetail{Set: set, Questions: assigned, Answers: answers}

	eval, err := s.Repo.GetEvaluation(ctx, setID)
	if err == nil {
		detail.Evaluation = &eval
	} else if !errors.Is(err, ErrEvaluationNotFound) {
		return SetDetail{}, err
	}

	answered := make(map[int]bool, len(answers))
	for _, answer := range answers {
		answered[answer.QuestionOrder] = true
	}
	for _, q := range assigned {
		if !answered[q.Order] {
			order := q.Order
			detail.NextQuestionOrder = &order
			break
		}
	}
	return detail, nil
}

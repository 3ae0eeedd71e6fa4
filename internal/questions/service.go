package questions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for the question catalog.
type Service struct {
	Repo Repo
}

// Input carries the fields for creating or replacing a question.
type Input struct {
	Question    string
	Category    string
	JobType     string
	Level       string
	ModelAnswer string
	Reasoning   string
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Question) == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalidInput)
	}
	if !ValidCategory(in.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	if in.JobType != "" && !ValidJobType(in.JobType) {
		return fmt.Errorf("%w: unknown job type %q", ErrInvalidInput, in.JobType)
	}
	if in.Level != "" && !ValidLevel(in.Level) {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidInput, in.Level)
	}
	if strings.TrimSpace(in.ModelAnswer) == "" {
		return fmt.Errorf("%w: model answer is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Reasoning) == "" {
		return fmt.Errorf("%w: reasoning is required", ErrInvalidInput)
	}
	return nil
}

// Create validates and stores a new catalog question.
func (s *Service) Create(ctx context.Context, in Input) (Question, error) {
	if err := in.validate(); err != nil {
		return Question{}, err
	}
	now := time.Now().UTC()
	q := Question{
		ID:          uuid.NewString(),
		Question:    in.Question,
		Category:    in.Category,
		JobType:     in.JobType,
		Level:       in.Level,
		ModelAnswer: in.ModelAnswer,
		Reasoning:   in.Reasoning,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, q); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Get returns a question by ID.
func (s *Service) Get(ctx context.Context, questionID string) (Question, error) {
	return s.Repo.GetByID(ctx, questionID)
}

// List returns all questions, newest first.
func (s *Service) List(ctx context.Context) ([]Question, error) {
	return s.Repo.List(ctx)
}

// Update replaces all fields of an existing question.
func (s *Service) Update(ctx context.Context, questionID string, in Input) (Question, error) {
	if err := in.validate(); err != nil {
		return Question{}, err
	}
	existing, err := s.Repo.GetByID(ctx, questionID)
	if err != nil {
		return Question{}, err
	}
	existing.Question = in.Question
	existing.Category = in.Category
	existing.JobType = in.JobType
	existing.Level = in.Level
	existing.ModelAnswer = in.ModelAnswer
	existing.Reasoning = in.Reasoning
	existing.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, existing); err != nil {
		return Question{}, err
	}
	return existing, nil
}

// Delete removes a question from the catalog.
func (s *Service) Delete(ctx context.Context, questionID string) error {
	return s.Repo.Delete(ctx, questionID)
}

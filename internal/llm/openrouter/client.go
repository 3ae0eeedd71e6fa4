package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"interview-backend/internal/llm"
)

const (
	apiURL = "https://openrouter.ai/api/v1/chat/completions"
)

// Client implements the LLM collaborator interfaces using the OpenRouter
// Chat Completions API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenRouter client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenRouter")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENROUTER_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// GenerateFollowUp asks the model for a single probing follow-up question.
func (c *Client) GenerateFollowUp(ctx context.Context, input llm.FollowUpInput) (string, error) {
	if strings.TrimSpace(input.UserAnswer) == "" {
		return "", fmt.Errorf("user answer is required")
	}

	content, err := c.chatOnce(ctx, chatRequest{
		Model:    c.pickModel(input.Model),
		Messages: buildFollowUpMessages(input.Question, input.UserAnswer),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

type evaluationPayload struct {
	Logic            json.Number       `json:"logic"`
	Evidence         json.Number       `json:"evidence"`
	JobUnderstanding json.Number       `json:"jobUnderstanding"`
	Formality        json.Number       `json:"formality"`
	Completeness     json.Number       `json:"completeness"`
	OverallFeedback  string            `json:"overallFeedback"`
	DetailedFeedback []feedbackPayload `json:"detailedFeedback"`
}

type feedbackPayload struct {
	QuestionOrder    int    `json:"questionOrder"`
	QuestionID       string `json:"questionId"`
	Question         string `json:"question"`
	UserAnswer       string `json:"userAnswer"`
	FollowUpQuestion string `json:"followUpQuestion"`
	FollowUpAnswer   string `json:"followUpAnswer"`
	Feedback         string `json:"feedback"`
	Improvements     string `json:"improvements"`
}

// EvaluateInterview requests the composite evaluation for a full interview
// transcript and decodes the structured JSON result.
func (c *Client) EvaluateInterview(ctx context.Context, input llm.EvaluateInput) (llm.EvaluationResult, error) {
	if len(input.Answers) == 0 {
		return llm.EvaluationResult{}, fmt.Errorf("at least one answer is required")
	}

	content, err := c.chatOnce(ctx, chatRequest{
		Model:          c.pickModel(input.Model),
		Messages:       buildEvaluationMessages(input.Answers),
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return llm.EvaluationResult{}, err
	}

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return llm.EvaluationResult{}, fmt.Errorf("openrouter evaluation parse: %w", err)
	}

	result := llm.EvaluationResult{
		Logic:            clampScore(payload.Logic),
		Evidence:         clampScore(payload.Evidence),
		JobUnderstanding: clampScore(payload.JobUnderstanding),
		Formality:        clampScore(payload.Formality),
		Completeness:     clampScore(payload.Completeness),
		OverallFeedback:  strings.TrimSpace(payload.OverallFeedback),
	}
	for idx, item := range payload.DetailedFeedback {
		order := item.QuestionOrder
		if order == 0 && idx < len(input.Answers) {
			order = input.Answers[idx].QuestionOrder
		}
		result.DetailedFeedback = append(result.DetailedFeedback, llm.FeedbackItem{
			QuestionOrder:    order,
			QuestionID:       item.QuestionID,
			Question:         item.Question,
			UserAnswer:       item.UserAnswer,
			FollowUpQuestion: item.FollowUpQuestion,
			FollowUpAnswer:   item.FollowUpAnswer,
			Feedback:         item.Feedback,
			Improvements:     item.Improvements,
		})
	}
	return result, nil
}

func (c *Client) pickModel(override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return c.model
}

func (c *Client) chatOnce(ctx context.Context, reqBody chatRequest) (string, error) {
	temp := float32(0.7)
	reqBody.Temperature = &temp

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("openrouter request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("openrouter response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openrouter error: %s (code %d)", parsed.Error.Message, parsed.Error.Code)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openrouter response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openrouter response empty content")
	}
	return content, nil
}

func clampScore(raw json.Number) int {
	val, err := raw.Float64()
	if err != nil {
		return 0
	}
	score := int(val)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

var (
	_ llm.FollowUpGenerator  = (*Client)(nil)
	_ llm.InterviewEvaluator = (*Client)(nil)
)

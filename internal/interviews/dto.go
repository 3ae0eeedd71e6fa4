package interviews

import (
	"time"

	"interview-backend/internal/llm"
)

type createSetRequest struct {
	Title         string `json:"title"`
	JobType       string `json:"job_type" binding:"required"`
	Level         string `json:"level" binding:"required"`
	QuestionCount int    `json:"question_count"`
}

type questionInfo struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Order    int    `json:"order"`
	Category string `json:"category"`
}

type createSetResponse struct {
	SetID     string         `json:"set_id"`
	Questions []questionInfo `json:"questions"`
}

type setResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	JobType     string     `json:"job_type"`
	Level       string     `json:"level"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type audioInput struct {
	Data   string `json:"data"`
	Format string `json:"format"`
}

type submitAnswerRequest struct {
	SetID          string      `json:"set_id" binding:"required"`
	QuestionID     string      `json:"question_id" binding:"required"`
	QuestionOrder  int         `json:"question_order" binding:"required"`
	UserAnswer     string      `json:"user_answer"`
	Audio          *audioInput `json:"audio"`
	EnableFollowUp bool        `json:"enable_follow_up"`
	AIModel        string      `json:"ai_model"`
}

type submitAnswerResponse struct {
	AnswerID         string  `json:"answer_id"`
	FollowUpQuestion *string `json:"follow_up_question"`
	Transcript       *string `json:"transcript"`
}

type submitFollowUpRequest struct {
	AnswerID       string      `json:"answer_id" binding:"required"`
	FollowUpAnswer string      `json:"follow_up_answer"`
	Audio          *audioInput `json:"audio"`
}

type submitFollowUpResponse struct {
	Success    bool    `json:"success"`
	Transcript *string `json:"transcript"`
}

type answerResponse struct {
	ID               string    `json:"id"`
	SetID            string    `json:"set_id"`
	QuestionID       string    `json:"question_id"`
	QuestionOrder    int       `json:"question_order"`
	UserAnswer       string    `json:"user_answer"`
	FollowUpQuestion *string   `json:"follow_up_question"`
	FollowUpAnswer   *string   `json:"follow_up_answer"`
	CreatedAt        time.Time `json:"created_at"`
}

type evaluationResponse struct {
	ID               string             `json:"id"`
	SetID            string             `json:"set_id"`
	Logic            int                `json:"logic"`
	Evidence         int                `json:"evidence"`
	JobUnderstanding int                `json:"job_understanding"`
	Formality        int                `json:"formality"`
	Completeness     int                `json:"completeness"`
	OverallFeedback  string             `json:"overall_feedback"`
	DetailedFeedback []llm.FeedbackItem `json:"detailed_feedback"`
	CreatedAt        time.Time          `json:"created_at"`
}

type setDetailResponse struct {
	Set               setResponse         `json:"set"`
	Questions         []questionInfo      `json:"questions"`
	Answers           []answerResponse    `json:"answers"`
	Evaluation        *evaluationResponse `json:"evaluation"`
	NextQuestionOrder *int                `json:"next_question_order"`
}

func toSetResponse(set Set) setResponse {
	return setResponse{
		ID:          set.ID,
		UserID:      set.UserID,
		Title:       set.Title,
		JobType:     set.JobType,
		Level:       set.Level,
		Status:      string(set.Status),
		CreatedAt:   set.CreatedAt,
		CompletedAt: set.CompletedAt,
	}
}

func toAnswerResponse(answer Answer) answerResponse {
	return answerResponse{
		ID:               answer.ID,
		SetID:            answer.SetID,
		QuestionID:       answer.QuestionID,
		QuestionOrder:    answer.QuestionOrder,
		UserAnswer:       answer.UserAnswer,
		FollowUpQuestion: optionalString(answer.FollowUpQuestion),
		FollowUpAnswer:   optionalString(answer.FollowUpAnswer),
		CreatedAt:        answer.CreatedAt,
	}
}

func toEvaluationResponse(eval Evaluation) evaluationResponse {
	feedback := eval.DetailedFeedback
	if feedback == nil {
		feedback = []llm.FeedbackItem{}
	}
	return evaluationResponse{
		ID:               eval.ID,
		SetID:            eval.SetID,
		Logic:            eval.Logic,
		Evidence:         eval.Evidence,
		JobUnderstanding: eval.JobUnderstanding,
		Formality:        eval.Formality,
		Completeness:     eval.Completeness,
		OverallFeedback:  eval.OverallFeedback,
		DetailedFeedback: feedback,
		CreatedAt:        eval.CreatedAt,
	}
}

func toQuestionInfos(items []AssignedQuestion) []questionInfo {
	out := make([]questionInfo, 0, len(items))
	for _, item := range items {
		out = append(out, questionInfo{
			ID:       item.ID,
			Question: item.Question,
			Order:    item.Order,
			Category: item.Category,
		})
	}
	return out
}

func optionalString(val string) *string {
	if val == "" {
		return nil
	}
	return &val
}

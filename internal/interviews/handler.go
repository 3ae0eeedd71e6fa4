package interviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/shared/server/middleware"
	"interview-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the interview service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	interview := rg.Group("/interview")
	interview.POST("/sets", h.createSet)
	interview.GET("/sets", h.listSets)
	interview.GET("/sets/:id", h.getSet)
	interview.POST("/sets/:id/complete", h.completeSet)
	interview.POST("/answers", h.submitAnswer)
	interview.POST("/follow-up-answers", h.submitFollowUp)
}

func (h *Handler) createSet(c *gin.Context) {
	var req createSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}

	result, err := h.Svc.CreateSet(c.Request.Context(), CreateSetInput{
		UserID:        middleware.UserIDFromContext(c),
		Title:         req.Title,
		JobType:       req.JobType,
		Level:         req.Level,
		QuestionCount: req.QuestionCount,
	})
	if err != nil {
		var insufficient *InsufficientQuestionsError
		switch {
		case errors.As(err, &insufficient):
			respond.Error(c, http.StatusBadRequest, "insufficient_questions", insufficient.Error(), gin.H{
				"requested": insufficient.Requested,
				"available": insufficient.Selected,
			})
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create interview set", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, createSetResponse{
		SetID:     result.Set.ID,
		Questions: toQuestionInfos(result.Questions),
	})
}

func (h *Handler) listSets(c *gin.Context) {
	sets, err := h.Svc.ListSets(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list interview sets", nil)
		return
	}
	resp := make([]setResponse, 0, len(sets))
	for _, set := range sets {
		resp = append(resp, toSetResponse(set))
	}
	respond.OK(c, resp)
}

func (h *Handler) getSet(c *gin.Context) {
	detail, err := h.Svc.GetSetDetail(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSetNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "interview set not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "cannot view another user's interview set", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load interview set", nil)
		}
		return
	}

	answers := make([]answerResponse, 0, len(detail.Answers))
	for _, answer := range detail.Answers {
		answers = append(answers, toAnswerResponse(answer))
	}
	resp := setDetailResponse{
		Set:               toSetResponse(detail.Set),
		Questions:         toQuestionInfos(detail.Questions),
		Answers:           answers,
		NextQuestionOrder: detail.NextQuestionOrder,
	}
	if detail.Evaluation != nil {
		eval := toEvaluationResponse(*detail.Evaluation)
		resp.Evaluation = &eval
	}
	respond.OK(c, resp)
}

func (h *Handler) submitAnswer(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}

	result, err := h.Svc.SubmitAnswer(c.Request.Context(), SubmitAnswerInput{
		UserID:         middleware.UserIDFromContext(c),
		SetID:          req.SetID,
		QuestionID:     req.QuestionID,
		QuestionOrder:  req.QuestionOrder,
		UserAnswer:     req.UserAnswer,
		HasAudio:       req.Audio != nil,
		EnableFollowUp: req.EnableFollowUp,
		Model:          req.AIModel,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateAnswer):
			respond.Error(c, http.StatusConflict, "conflict", "an answer for this question already exists", nil)
		case errors.Is(err, ErrAudioNotSupported):
			respond.Error(c, http.StatusNotImplemented, "not_implemented", "audio transcription is not implemented yet", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit answer", nil)
		}
		return
	}

	respond.OK(c, submitAnswerResponse{
		AnswerID:         result.AnswerID,
		FollowUpQuestion: optionalString(result.FollowUpQuestion),
	})
}

func (h *Handler) submitFollowUp(c *gin.Context) {
	var req submitFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}

	err := h.Svc.SubmitFollowUp(c.Request.Context(), SubmitFollowUpInput{
		UserID:         middleware.UserIDFromContext(c),
		AnswerID:       req.AnswerID,
		FollowUpAnswer: req.FollowUpAnswer,
		HasAudio:       req.Audio != nil,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAnswerNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "answer not found", nil)
		case errors.Is(err, ErrAudioNotSupported):
			respond.Error(c, http.StatusNotImplemented, "not_implemented", "audio transcription is not implemented yet", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit follow-up answer", nil)
		}
		return
	}

	respond.OK(c, submitFollowUpResponse{Success: true})
}

func (h *Handler) completeSet(c *gin.Context) {
	eval, err := h.Svc.Complete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), "")
	if err != nil {
		switch {
		case errors.Is(err, ErrSetNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "interview set not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "cannot complete another user's interview set", nil)
		case errors.Is(err, ErrAlreadyCompleted):
			respond.Error(c, http.StatusBadRequest, "already_completed", "this interview set has already been evaluated", nil)
		case errors.Is(err, ErrNotReady):
			respond.Error(c, http.StatusBadRequest, "not_ready", "not all answers are completed yet; answer every question and any follow-up questions first", nil)
		case errors.Is(err, ErrNoAnswers):
			respond.Error(c, http.StatusBadRequest, "no_answers", "this interview set has no answers", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "interview evaluation failed", nil)
		}
		return
	}
	respond.OK(c, toEvaluationResponse(eval))
}

package questions

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the question catalog service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches admin catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/questions")
	admin.GET("", h.list)
	admin.GET("/:id", h.get)
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

type questionRequest struct {
	Question    string `json:"question" binding:"required"`
	Category    string `json:"category" binding:"required"`
	JobType     string `json:"job_type"`
	Level       string `json:"level"`
	ModelAnswer string `json:"model_answer" binding:"required"`
	Reasoning   string `json:"reasoning" binding:"required"`
}

type questionResponse struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	Category    string    `json:"category"`
	JobType     *string   `json:"job_type"`
	Level       *string   `json:"level"`
	ModelAnswer string    `json:"model_answer"`
	Reasoning   string    `json:"reasoning"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(q Question) questionResponse {
	return questionResponse{
		ID:          q.ID,
		Question:    q.Question,
		Category:    q.Category,
		JobType:     optional(q.JobType),
		Level:       optional(q.Level),
		ModelAnswer: q.ModelAnswer,
		Reasoning:   q.Reasoning,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func optional(val string) *string {
	if val == "" {
		return nil
	}
	return &val
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list questions", nil)
		return
	}
	resp := make([]questionResponse, 0, len(items))
	for _, q := range items {
		resp = append(resp, toResponse(q))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	q, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "question not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch question", nil)
		}
		return
	}
	respond.OK(c, toResponse(q))
}

func (h *Handler) create(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}
	q, err := h.Svc.Create(c.Request.Context(), Input{
		Question:    req.Question,
		Category:    req.Category,
		JobType:     req.JobType,
		Level:       req.Level,
		ModelAnswer: req.ModelAnswer,
		Reasoning:   req.Reasoning,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create question", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(q))
}

func (h *Handler) update(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}
	q, err := h.Svc.Update(c.Request.Context(), c.Param("id"), Input{
		Question:    req.Question,
		Category:    req.Category,
		JobType:     req.JobType,
		Level:       req.Level,
		ModelAnswer: req.ModelAnswer,
		Reasoning:   req.Reasoning,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "question not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update question", nil)
		}
		return
	}
	respond.OK(c, toResponse(q))
}

func (h *Handler) delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "question not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete question", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

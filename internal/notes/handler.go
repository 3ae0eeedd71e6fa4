package notes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/shared/server/middleware"
	"interview-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/answer-notes")
	grp.GET("", h.list)
	grp.POST("", h.create)
	grp.GET("/:id", h.get)
	grp.PUT("/:id", h.update)
	grp.DELETE("/:id", h.delete)
	grp.POST("/:id/entries", h.createEntry)
	grp.PUT("/:id/entries/:entryID", h.updateEntry)
	grp.DELETE("/:id/entries/:entryID", h.deleteEntry)
}

type entryRequest struct {
	QuestionID    string `json:"question_id" binding:"required"`
	InitialAnswer string `json:"initial_answer" binding:"required"`
	Feedback      string `json:"feedback"`
	Improvements  string `json:"improvements"`
	FinalAnswer   string `json:"final_answer"`
}

type createNoteRequest struct {
	Title   string         `json:"title" binding:"required"`
	Entries []entryRequest `json:"entries"`
}

type updateNoteRequest struct {
	Title *string `json:"title"`
}

type entryUpdateRequest struct {
	InitialAnswer *string `json:"initial_answer"`
	Feedback      *string `json:"feedback"`
	Improvements  *string `json:"improvements"`
	FinalAnswer   *string `json:"final_answer"`
}

type entryResponse struct {
	ID            string    `json:"id"`
	NoteID        string    `json:"note_id"`
	QuestionID    string    `json:"question_id"`
	InitialAnswer string    `json:"initial_answer"`
	Feedback      *string   `json:"feedback"`
	Improvements  *string   `json:"improvements"`
	FinalAnswer   *string   `json:"final_answer"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type noteSummaryResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	EntriesCount int       `json:"entries_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type noteDetailResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Entries   []entryResponse `json:"entries"`
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	summaries, err := h.Svc.ListNotes(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list answer notes", nil)
		return
	}
	out := make([]noteSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, noteSummaryResponse{
			ID:           summary.ID,
			Title:        summary.Title,
			EntriesCount: summary.EntryCount,
			CreatedAt:    summary.CreatedAt,
			UpdatedAt:    summary.UpdatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	input := CreateNoteInput{Title: req.Title}
	for _, entry := range req.Entries {
		input.Entries = append(input.Entries, toEntryInput(entry))
	}

	userID := middleware.UserIDFromContext(c)
	detail, err := h.Svc.CreateNote(c.Request.Context(), userID, input)
	if err != nil {
		h.noteError(c, err, "failed to create answer note")
		return
	}
	respond.JSON(c, http.StatusCreated, toNoteDetailResponse(detail))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	detail, err := h.Svc.GetNoteDetail(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.noteError(c, err, "failed to load answer note")
		return
	}
	respond.JSON(c, http.StatusOK, toNoteDetailResponse(detail))
}

func (h *Handler) update(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	detail, err := h.Svc.UpdateNote(c.Request.Context(), userID, c.Param("id"), req.Title)
	if err != nil {
		h.noteError(c, err, "failed to update answer note")
		return
	}
	respond.JSON(c, http.StatusOK, toNoteDetailResponse(detail))
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.DeleteNote(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.noteError(c, err, "failed to delete answer note")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	entry, err := h.Svc.AddEntry(c.Request.Context(), userID, c.Param("id"), toEntryInput(req))
	if err != nil {
		h.noteError(c, err, "failed to create answer note entry")
		return
	}
	respond.JSON(c, http.StatusCreated, toEntryResponse(entry))
}

func (h *Handler) updateEntry(c *gin.Context) {
	var req entryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	entry, err := h.Svc.UpdateEntry(c.Request.Context(), userID, c.Param("id"), c.Param("entryID"), EntryUpdate{
		InitialAnswer: req.InitialAnswer,
		Feedback:      req.Feedback,
		Improvements:  req.Improvements,
		FinalAnswer:   req.FinalAnswer,
	})
	if err != nil {
		h.noteError(c, err, "failed to update answer note entry")
		return
	}
	respond.JSON(c, http.StatusOK, toEntryResponse(entry))
}

func (h *Handler) deleteEntry(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.DeleteEntry(c.Request.Context(), userID, c.Param("id"), c.Param("entryID")); err != nil {
		h.noteError(c, err, "failed to delete answer note entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) noteError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNoteNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "answer note not found", nil)
	case errors.Is(err, ErrEntryNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "answer note entry not found", nil)
	case errors.Is(err, ErrQuestionNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "question not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "answer note belongs to another user", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func toEntryInput(req entryRequest) EntryInput {
	return EntryInput{
		QuestionID:    req.QuestionID,
		InitialAnswer: req.InitialAnswer,
		Feedback:      req.Feedback,
		Improvements:  req.Improvements,
		FinalAnswer:   req.FinalAnswer,
	}
}

func toEntryResponse(entry Entry) entryResponse {
	return entryResponse{
		ID:            entry.ID,
		NoteID:        entry.NoteID,
		QuestionID:    entry.QuestionID,
		InitialAnswer: entry.InitialAnswer,
		Feedback:      optionalString(entry.Feedback),
		Improvements:  optionalString(entry.Improvements),
		FinalAnswer:   optionalString(entry.FinalAnswer),
		CreatedAt:     entry.CreatedAt,
		UpdatedAt:     entry.UpdatedAt,
	}
}

func toNoteDetailResponse(detail NoteDetail) noteDetailResponse {
	entries := make([]entryResponse, 0, len(detail.Entries))
	for _, entry := range detail.Entries {
		entries = append(entries, toEntryResponse(entry))
	}
	return noteDetailResponse{
		ID:        detail.ID,
		Title:     detail.Title,
		CreatedAt: detail.CreatedAt,
		UpdatedAt: detail.UpdatedAt,
		Entries:   entries,
	}
}

func optionalString(val string) *string {
	if val == "" {
		return nil
	}
	return &val
}

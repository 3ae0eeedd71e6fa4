package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/questions"
)

func setupNotesRouter(t *testing.T) (*gin.Engine, *Service, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := questions.NewMemoryRepo()
	question := questions.Question{
		ID:          "q-1",
		Question:    "Introduce yourself.",
		Category:    questions.CategoryCommon,
		ModelAnswer: "A short structured introduction.",
		Reasoning:   "Checks communication basics.",
	}
	if err := catalog.Create(context.Background(), question); err != nil {
		t.Fatalf("seed question: %v", err)
	}

	svc := NewService(NewMemoryRepo(), catalog)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return router, svc, question.ID
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v (body %s)", err, rec.Body.String())
	}
	return envelope.Error.Code
}

func TestCreateNoteEndpoint(t *testing.T) {
	router, _, questionID := setupNotesRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/answer-notes", gin.H{
		"title": "Practice",
		"entries": []gin.H{
			{"question_id": questionID, "initial_answer": "Draft one."},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp noteDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Title != "Practice" || len(resp.Entries) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Entries[0].Feedback != nil {
		t.Fatalf("feedback should be null, got %v", *resp.Entries[0].Feedback)
	}
}

func TestCreateNoteEndpointUnknownQuestion(t *testing.T) {
	router, _, _ := setupNotesRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/answer-notes", gin.H{
		"title": "Practice",
		"entries": []gin.H{
			{"question_id": "missing", "initial_answer": "Draft."},
		},
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "not_found" {
		t.Fatalf("code = %q", code)
	}
}

func TestGetNoteEndpointOwnership(t *testing.T) {
	router, svc, _ := setupNotesRouter(t)

	other, err := svc.CreateNote(context.Background(), "user-2", CreateNoteInput{Title: "Not yours"})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/answer-notes/"+other.ID, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/answer-notes/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestNoteEntriesEndpoints(t *testing.T) {
	router, svc, questionID := setupNotesRouter(t)

	note, err := svc.CreateNote(context.Background(), "user-1", CreateNoteInput{Title: "Practice"})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	base := "/api/v1/answer-notes/" + note.ID

	rec := doJSON(t, router, http.MethodPost, base+"/entries", gin.H{
		"question_id":    questionID,
		"initial_answer": "Draft.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create entry status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created entryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, router, http.MethodPut, base+"/entries/"+created.ID, gin.H{
		"feedback": "Tighten the opening.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update entry status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated entryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Feedback == nil || *updated.Feedback != "Tighten the opening." {
		t.Fatalf("feedback not applied: %+v", updated)
	}
	if updated.InitialAnswer != "Draft." {
		t.Fatalf("initial answer should be unchanged: %q", updated.InitialAnswer)
	}

	rec = doJSON(t, router, http.MethodDelete, base+"/entries/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete entry status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, base+"/entries/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestListNotesEndpoint(t *testing.T) {
	router, svc, questionID := setupNotesRouter(t)

	note, err := svc.CreateNote(context.Background(), "user-1", CreateNoteInput{
		Title:   "Practice",
		Entries: []EntryInput{{QuestionID: questionID, InitialAnswer: "Draft."}},
	})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if _, err := svc.CreateNote(context.Background(), "user-2", CreateNoteInput{Title: "Other user"}); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/answer-notes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var summaries []noteSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	if summaries[0].ID != note.ID || summaries[0].EntriesCount != 1 {
		t.Fatalf("unexpected summary: %+v", summaries[0])
	}
}

func TestDeleteNoteEndpoint(t *testing.T) {
	router, svc, _ := setupNotesRouter(t)

	note, err := svc.CreateNote(context.Background(), "user-1", CreateNoteInput{Title: "Practice"})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/answer-notes/"+note.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/answer-notes/"+note.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status after delete = %d, body %s", rec.Code, rec.Body.String())
	}
}

package interviews

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/questions"
)

func setupInterviewRouter(t *testing.T) (*gin.Engine, *Service, *stubFollowUps, *stubEvaluator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _, followUps, evaluator := newTestService(t)
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, svc, followUps, evaluator
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return envelope.Error.Code
}

func TestCreateSetEndpoint(t *testing.T) {
	router, _, _, _ := setupInterviewRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/interview/sets", map[string]any{
		"job_type":       "it",
		"level":          "entry",
		"question_count": 3,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created createSetResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.SetID == "" {
		t.Fatalf("expected set_id")
	}
	if len(created.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(created.Questions))
	}
	for i, q := range created.Questions {
		if q.Order != i+1 {
			t.Fatalf("expected order %d, got %d", i+1, q.Order)
		}
	}
}

func TestCreateSetEndpointInsufficientInventory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	catalog := questions.NewMemoryRepo()
	svc := &Service{
		Repo:      NewMemoryRepo(),
		Catalog:   catalog,
		Selector:  &Selector{Pool: catalog, Rand: rand.New(rand.NewSource(1))},
		FollowUps: &stubFollowUps{},
		Evaluator: &stubEvaluator{},
	}
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))

	resp := doJSON(t, router, http.MethodPost, "/api/v1/interview/sets", map[string]any{
		"job_type": "it",
		"level":    "entry",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != "insufficient_questions" {
		t.Fatalf("expected insufficient_questions, got %q", code)
	}
}

func TestSubmitAnswerEndpointConflict(t *testing.T) {
	router, svc, _, _ := setupInterviewRouter(t)
	result := createTestSet(t, svc, 3)
	q := result.Questions[0]

	payload := map[string]any{
		"set_id":         result.Set.ID,
		"question_id":    q.ID,
		"question_order": q.Order,
		"user_answer":    "my answer",
	}
	resp := doJSON(t, router, http.MethodPost, "/api/v1/interview/answers", payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var first submitAnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&first); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if first.AnswerID == "" {
		t.Fatalf("expected answer_id")
	}
	if first.FollowUpQuestion != nil {
		t.Fatalf("expected no follow-up question, got %v", *first.FollowUpQuestion)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/interview/answers", payload)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != "conflict" {
		t.Fatalf("expected conflict, got %q", code)
	}
}

func TestSubmitAnswerEndpointAudioOnly(t *testing.T) {
	router, svc, _, _ := setupInterviewRouter(t)
	result := createTestSet(t, svc, 3)
	q := result.Questions[0]

	resp := doJSON(t, router, http.MethodPost, "/api/v1/interview/answers", map[string]any{
		"set_id":         result.Set.ID,
		"question_id":    q.ID,
		"question_order": q.Order,
		"audio":          map[string]string{"data": "base64...", "format": "webm"},
	})
	if resp.Code != http.StatusNotImplemented {
		t.Fatalf("expected status 501, got %d", resp.Code)
	}
}

func TestSubmitFollowUpEndpointNotFound(t *testing.T) {
	router, _, _, _ := setupInterviewRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/interview/follow-up-answers", map[string]any{
		"answer_id":        "missing",
		"follow_up_answer": "text",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCompleteEndpointDistinguishesFailures(t *testing.T) {
	router, svc, _, _ := setupInterviewRouter(t)
	result := createTestSet(t, svc, 3)

	// still in_progress
	resp := doJSON(t, router, http.MethodPost, "/api/v1/interview/sets/"+result.Set.ID+"/complete", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != "not_ready" {
		t.Fatalf("expected not_ready, got %q", code)
	}

	answerAll(t, svc, result, false)

	resp = doJSON(t, router, http.MethodPost, "/api/v1/interview/sets/"+result.Set.ID+"/complete", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var eval evaluationResponse
	if err := json.NewDecoder(resp.Body).Decode(&eval); err != nil {
		t.Fatalf("decode evaluation: %v", err)
	}
	if eval.Logic != 80 || eval.SetID != result.Set.ID {
		t.Fatalf("unexpected evaluation: %+v", eval)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/interview/sets/"+result.Set.ID+"/complete", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != "already_completed" {
		t.Fatalf("expected already_completed, got %q", code)
	}
}

func TestGetSetEndpointOwnership(t *testing.T) {
	router, svc, _, _ := setupInterviewRouter(t)

	other, err := svc.CreateSet(context.Background(), CreateSetInput{
		UserID:        "user-2",
		JobType:       questions.JobTypeIT,
		Level:         questions.LevelEntry,
		QuestionCount: 3,
	})
	if err != nil {
		t.Fatalf("CreateSet: %v", err)
	}

	resp := doJSON(t, router, http.MethodGet, "/api/v1/interview/sets/"+other.Set.ID, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/interview/sets/missing", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestGetSetEndpointDetail(t *testing.T) {
	router, svc, _, _ := setupInterviewRouter(t)
	result := createTestSet(t, svc, 3)
	q := result.Questions[0]
	if _, err := svc.SubmitAnswer(context.Background(), SubmitAnswerInput{
		UserID:        "user-1",
		SetID:         result.Set.ID,
		QuestionID:    q.ID,
		QuestionOrder: q.Order,
		UserAnswer:    "answer one",
	}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	resp := doJSON(t, router, http.MethodGet, "/api/v1/interview/sets/"+result.Set.ID, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var detail setDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Set.ID != result.Set.ID {
		t.Fatalf("expected set %s, got %s", result.Set.ID, detail.Set.ID)
	}
	if len(detail.Questions) != 3 || len(detail.Answers) != 1 {
		t.Fatalf("expected 3 questions and 1 answer, got %d and %d", len(detail.Questions), len(detail.Answers))
	}
	if detail.Evaluation != nil {
		t.Fatalf("expected no evaluation yet")
	}
	if detail.NextQuestionOrder == nil || *detail.NextQuestionOrder != 2 {
		t.Fatalf("expected next_question_order 2, got %v", detail.NextQuestionOrder)
	}
}

func TestListSetsEndpoint(t *testing.T) {
	router, svc, _, _ := setupInterviewRouter(t)
	createTestSet(t, svc, 3)
	createTestSet(t, svc, 3)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/interview/sets", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var sets []setResponse
	if err := json.NewDecoder(resp.Body).Decode(&sets); err != nil {
		t.Fatalf("decode sets: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(sets))
	}
}

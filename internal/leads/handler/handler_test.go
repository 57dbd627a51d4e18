package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meteory_backend/internal/events"
	"meteory_backend/internal/leads/repository"
	"meteory_backend/internal/leads/service"
	"meteory_backend/platform/logger"
	"meteory_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type stubRepo struct {
	leads      []repository.Lead
	statusByID map[int64]string
}

func (s *stubRepo) Create(ctx context.Context, lead repository.NewLead) (int64, time.Time, error) {
	return 42, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), nil
}

func (s *stubRepo) List(ctx context.Context) ([]repository.Lead, error) {
	return s.leads, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id int64, status string) (string, error) {
	old, ok := s.statusByID[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	return old, nil
}

func newTestRouter(repo *stubRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("test")
	svc := service.New(repo, events.NewInMemoryBus(log), nil, log)
	h := New(svc, validator.New())

	engine := gin.New()
	api := engine.Group("/api")
	h.RegisterRoutes(api, api)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v (%s)", err, w.Body.String())
	}
	return env
}

func TestCreateLead_Success(t *testing.T) {
	engine := newTestRouter(&stubRepo{})

	w := doJSON(t, engine, http.MethodPost, "/api/leads",
		`{"name":"Ali","email":"ali@example.com","phone":"0501234567","app_name":"Sprinkler Layout","area":"1,200","total_units":30}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", w.Body.String())
	}

	var data struct {
		ID        int64     `json:"id"`
		CreatedAt time.Time `json:"created_at"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if data.ID != 42 {
		t.Fatalf("expected id 42, got %d", data.ID)
	}
	if data.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestCreateLead_MissingNameOrEmail(t *testing.T) {
	engine := newTestRouter(&stubRepo{})

	for _, body := range []string{
		`{"email":"a@example.com"}`,
		`{"name":"Ali"}`,
		`{}`,
	} {
		w := doJSON(t, engine, http.MethodPost, "/api/leads", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
		env := decodeEnvelope(t, w)
		if env.Success || env.Error != "name and email required" {
			t.Fatalf("body %s: wrong envelope %s", body, w.Body.String())
		}
	}
}

func TestCreateLead_MalformedJSON(t *testing.T) {
	engine := newTestRouter(&stubRepo{})

	w := doJSON(t, engine, http.MethodPost, "/api/leads", `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListLeads(t *testing.T) {
	phone := "+966501234567"
	engine := newTestRouter(&stubRepo{leads: []repository.Lead{
		{ID: 2, Name: "B", Email: "b@example.com", Phone: &phone, Status: "New", CreatedAt: time.Now()},
		{ID: 1, Name: "A", Email: "a@example.com", Status: "Contacted", CreatedAt: time.Now().Add(-time.Hour)},
	}})

	w := doJSON(t, engine, http.MethodGet, "/api/leads", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	env := decodeEnvelope(t, w)
	var items []map[string]any
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(items))
	}
	if items[0]["id"].(float64) != 2 {
		t.Fatalf("expected repository order preserved, got %v first", items[0]["id"])
	}
}

func TestUpdateStatus(t *testing.T) {
	engine := newTestRouter(&stubRepo{statusByID: map[int64]string{7: "New"}})

	w := doJSON(t, engine, http.MethodPatch, "/api/leads", `{"id":7,"status":"Contacted"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	var data struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if data.ID != 7 || data.Status != "Contacted" {
		t.Fatalf("wrong echo: %+v", data)
	}
}

func TestUpdateStatus_Failures(t *testing.T) {
	engine := newTestRouter(&stubRepo{statusByID: map[int64]string{7: "New"}})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing fields", `{"id":7}`, http.StatusBadRequest},
		{"unknown status", `{"id":7,"status":"Closed"}`, http.StatusBadRequest},
		{"unknown id", `{"id":99,"status":"Contacted"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, engine, http.MethodPatch, "/api/leads", tt.body)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
			if env := decodeEnvelope(t, w); env.Success {
				t.Fatalf("expected failure envelope, got %s", w.Body.String())
			}
		})
	}
}

func TestMethodNotAllowedOnLeadsPath(t *testing.T) {
	engine := newTestRouter(&stubRepo{})
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "error": "Method not allowed"})
	})

	w := doJSON(t, engine, http.MethodPut, "/api/leads", `{}`)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

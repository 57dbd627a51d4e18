package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meteory_backend/internal/auth/service"
	"meteory_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type stubConfig struct{}

func (stubConfig) GetAdminPassword() string         { return "s3cret" }
func (stubConfig) GetAdminPasswordHash() string     { return "" }
func (stubConfig) GetAdminCookieName() string       { return "meteory_admin" }
func (stubConfig) GetAdminCookieTTL() time.Duration { return 8 * time.Hour }
func (stubConfig) GetAdminCookieSecure() bool       { return false }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := stubConfig{}
	h := New(service.New(cfg), cfg, nil, logger.New("test"))

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api"))
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/api/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func adminCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "meteory_admin" {
			return c
		}
	}
	return nil
}

func TestLogin_CorrectPasswordSetsCookie(t *testing.T) {
	engine := newTestRouter()

	w := do(t, engine, http.MethodPost, `{"password":"s3cret"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	cookie := adminCookie(w)
	if cookie == nil {
		t.Fatal("expected admin cookie to be set")
	}
	if cookie.Value != "1" {
		t.Fatalf("expected cookie value 1, got %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
	if cookie.Path != "/" {
		t.Fatalf("expected Path /, got %q", cookie.Path)
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite Lax, got %v", cookie.SameSite)
	}
	if cookie.MaxAge != int((8 * time.Hour).Seconds()) {
		t.Fatalf("expected Max-Age 28800, got %d", cookie.MaxAge)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || !body.Success {
		t.Fatalf("expected success body, got %s", w.Body.String())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	engine := newTestRouter()

	w := do(t, engine, http.MethodPost, `{"password":"nope"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if adminCookie(w) != nil {
		t.Fatal("failed login must not set a cookie")
	}

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Success || body.Error != "Invalid password" {
		t.Fatalf("wrong body: %s", w.Body.String())
	}
}

func TestLogin_MalformedBodyIsUnauthorized(t *testing.T) {
	engine := newTestRouter()

	w := do(t, engine, http.MethodPost, `{`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCheck_ReflectsCookieState(t *testing.T) {
	engine := newTestRouter()

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   bool
	}{
		{"no cookie", nil, false},
		{"valid cookie", &http.Cookie{Name: "meteory_admin", Value: "1"}, true},
		{"wrong value", &http.Cookie{Name: "meteory_admin", Value: "0"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, engine, http.MethodGet, "", tt.cookie)
			if w.Code != http.StatusOK {
				t.Fatalf("check must always answer 200, got %d", w.Code)
			}
			var body struct {
				Success       bool `json:"success"`
				Authenticated bool `json:"authenticated"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if !body.Success || body.Authenticated != tt.want {
				t.Fatalf("expected authenticated=%v, got %s", tt.want, w.Body.String())
			}
		})
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	engine := newTestRouter()

	w := do(t, engine, http.MethodDelete, "", &http.Cookie{Name: "meteory_admin", Value: "1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	cookie := adminCookie(w)
	if cookie == nil {
		t.Fatal("expected clearing Set-Cookie header")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired empty cookie, got value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

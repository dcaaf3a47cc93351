package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caknak/email_check_api/config"
	"github.com/caknak/email_check_api/handlers"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		Port:            "0",
		GinMode:         gin.TestMode,
		APIKey:          "key",
		UpstreamBaseURL: baseURL,
		UserAgent:       "test-agent",
		UpstreamTimeout: 2 * time.Second,
		SimulationDelay: 0,
		HandoffTTL:      time.Minute,
		HandoffMax:      100,
	}
}

func newTestApp(t *testing.T, baseURL string) *App {
	t.Helper()
	app, err := NewApp(testConfig(baseURL))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func do(app *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	rec := do(app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("wanted: %d\ngot: %d", http.StatusOK, rec.Code)
	}
	if _, err := uuid.Parse(rec.Header().Get(requestIDHeader)); err != nil {
		t.Errorf("expected a UUID request ID, got %q", rec.Header().Get(requestIDHeader))
	}

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(requestIDHeader, inbound)
	if got := do(app, req).Header().Get(requestIDHeader); got != inbound {
		t.Errorf("wanted inbound ID %q echoed, got %q", inbound, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(requestIDHeader, "<script>")
	if got := do(app, req).Header().Get(requestIDHeader); got == "<script>" {
		t.Error("expected a malformed inbound ID to be replaced")
	}
}

func TestRoutes(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "pwned") {
			w.Write([]byte(`[{"Name":"Adobe"}]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer registry.Close()

	app := newTestApp(t, registry.URL)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "health", method: http.MethodGet, path: "/api/v1/health", wantStatus: http.StatusOK, wantBody: `"status":"UP"`},
		{name: "legacy check secure", method: http.MethodPost, path: "/api/check-email", body: `{"email":"clean@example.com"}`, wantStatus: http.StatusOK, wantBody: `"status":"secure"`},
		{name: "versioned check at risk", method: http.MethodPost, path: "/api/v1/email/check", body: `{"email":"pwned@example.com"}`, wantStatus: http.StatusOK, wantBody: `"affectedSites":"Adobe"`},
		{name: "missing email", method: http.MethodPost, path: "/api/check-email", body: `{}`, wantStatus: http.StatusBadRequest, wantBody: `Email is required`},
		{name: "unknown token", method: http.MethodGet, path: "/api/v1/email/results/" + uuid.NewString(), wantStatus: http.StatusNotFound},
		{name: "swagger doc", method: http.MethodGet, path: "/swagger/doc.json", wantStatus: http.StatusOK, wantBody: `"/email/check"`},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := do(app, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("wanted: %d\ngot: %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("expected body to contain %s, got %s", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandoffRoundTrip(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer registry.Close()

	app := newTestApp(t, registry.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/check-email", strings.NewReader(`{"email":"someone@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(app, req)
	token := rec.Header().Get(handlers.HandoffTokenHeader)
	if rec.Code != http.StatusOK || token == "" {
		t.Fatalf("expected a token with a 200, got %d and %q", rec.Code, token)
	}
	if app.Handoffs.Len() != 1 {
		t.Errorf("wanted 1 pending handoff, got %d", app.Handoffs.Len())
	}

	read := do(app, httptest.NewRequest(http.MethodGet, "/api/v1/email/results/"+token, nil))
	if read.Code != http.StatusOK || read.Body.String() != rec.Body.String() {
		t.Errorf("unexpected handoff read %d: %s", read.Code, read.Body.String())
	}
	if again := do(app, httptest.NewRequest(http.MethodGet, "/api/v1/email/results/"+token, nil)); again.Code != http.StatusNotFound {
		t.Errorf("expected a second read to miss, got %d", again.Code)
	}
}

func TestServerAddr(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")
	if srv := app.Server(":9090"); srv.Addr != ":9090" || srv.Handler != app.Router {
		t.Errorf("unexpected server %+v", srv)
	}
}

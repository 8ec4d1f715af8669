package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shapestone/http2java/internal/config"
)

func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	return NewRouter(cfg, log.New(&logs, "", 0)), &logs
}

func doRequest(r http.Handler, method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) compileResponse {
	t.Helper()
	var out compileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := doRequest(r, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status=%d, got=%d", http.StatusOK, w.Code)
	}
	if got := w.Header().Get(RequestIDHeader); got == "" {
		t.Fatalf("expected generated request id header")
	}
}

func TestCompile_RawBody(t *testing.T) {
	r, logs := newTestRouter(t, nil)
	w := doRequest(r, http.MethodPost, "/v1/compile", "text/plain",
		strings.NewReader("GET /index HTTP/1.1\nHost: example.com\n"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status=%d, got=%d body=%s", http.StatusOK, w.Code, w.Body.String())
	}
	out := decode(t, w)
	if !out.OK || !strings.Contains(out.Code, `.uri(new URI("http://example.com/index"))`) {
		t.Fatalf("response=%+v", out)
	}
	if !strings.Contains(logs.String(), `path="/v1/compile" status=200`) {
		t.Fatalf("access log=%q", logs.String())
	}
}

func TestCompile_JSONBody(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	body := `{"input":"GET /index HTTP/1.1\n"}`
	w := doRequest(r, http.MethodPost, "/v1/compile", "application/json", strings.NewReader(body))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status=%d, got=%d", http.StatusOK, w.Code)
	}
	out := decode(t, w)
	if out.OK || out.Code != "" {
		t.Fatalf("expected failure, got %+v", out)
	}
	if len(out.Errors) != 1 || out.Errors[0].Code != "missing-host" {
		t.Fatalf("errors=%+v", out.Errors)
	}
	if out.Warnings == nil {
		t.Fatalf("warnings should encode as an empty list")
	}
}

func TestCompile_StrictRejectsWarnings(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	body := `{"input":"GET /index HTTP/1.1\nHost: a\n\nbody","strict":true}`
	w := doRequest(r, http.MethodPost, "/v1/compile", "application/json", strings.NewReader(body))
	out := decode(t, w)
	if out.OK || len(out.Warnings) != 1 || out.Warnings[0].Code != "body-on-get" {
		t.Fatalf("response=%+v", out)
	}
}

func TestCompile_InvalidJSON(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := doRequest(r, http.MethodPost, "/v1/compile", "application/json", strings.NewReader("{"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status=%d, got=%d", http.StatusBadRequest, w.Code)
	}
}

func TestCompile_BodyTooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBodyBytes = 16
	r, _ := newTestRouter(t, cfg)
	w := doRequest(r, http.MethodPost, "/v1/compile", "text/plain",
		strings.NewReader("GET /index HTTP/1.1\nHost: example.com\n"))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status=%d, got=%d", http.StatusRequestEntityTooLarge, w.Code)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	r, logs := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "rid-1" {
		t.Fatalf("request id=%q want=%q", got, "rid-1")
	}
	if !strings.Contains(logs.String(), "request_id=rid-1") {
		t.Fatalf("access log=%q", logs.String())
	}
}

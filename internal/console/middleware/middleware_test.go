package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/transfer-console/internal/metrics"
	"github.com/preston-bernstein/transfer-console/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, metrics.NewRecorder(), next)
	rr := testutil.Serve(handler, http.MethodGet, "/players", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if rr.Header().Get(HeaderRequestID) == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	if !strings.Contains(buf.String(), "status_code=418") {
		t.Fatalf("expected status in log line, got %q", buf.String())
	}
}

func TestLoggingMiddlewareKeepsValidIncomingID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected incoming id, got %s", got)
		}
	})
	req := httptest.NewRequest(http.MethodGet, "/players", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rr := testutil.ServeRequest(LoggingMiddleware(nil, nil, next), req)
	if rr.Header().Get(HeaderRequestID) != "abc-123" {
		t.Fatalf("expected id echoed, got %s", rr.Header().Get(HeaderRequestID))
	}
}

func TestLoggingMiddlewareReplacesInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/players", nil)
	req.Header.Set(HeaderRequestID, "bad id; drop table")
	rr := testutil.ServeRequest(LoggingMiddleware(nil, nil, http.NotFoundHandler()), req)
	if got := rr.Header().Get(HeaderRequestID); got == "" || got == "bad id; drop table" {
		t.Fatalf("expected generated id, got %q", got)
	}
}

func TestRouteTemplateUsesMuxPattern(t *testing.T) {
	var seen string
	r := mux.NewRouter()
	r.HandleFunc("/players/{id}", func(w http.ResponseWriter, req *http.Request) {
		seen = routeTemplate(req)
	})
	testutil.Serve(r, http.MethodGet, "/players/42", nil)
	if seen != "/players/{id}" {
		t.Fatalf("expected route template, got %q", seen)
	}

	if got := routeTemplate(httptest.NewRequest(http.MethodGet, "/x", nil)); got != "unmatched" {
		t.Fatalf("expected unmatched outside a router, got %q", got)
	}
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec, status: http.StatusOK}
	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)
	if w.status != http.StatusCreated {
		t.Fatalf("expected first status to stick, got %d", w.status)
	}
}

package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/tournament-registry/internal/platform/logging"
)

type fixedIDGenerator struct {
	id  string
	err error
}

func (g fixedIDGenerator) NewID() (string, error) {
	return g.id, g.err
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequestID(fixedIDGenerator{id: "req-1"}, next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))

	if seen != "req-1" {
		t.Fatalf("expected request id in context, got %q", seen)
	}
	if got := rec.Header().Get(requestIDHeader); got != "req-1" {
		t.Fatalf("expected request id header, got %q", got)
	}
}

func TestRequestID_KeepsIncomingHeader(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	})
	handler := RequestID(fixedIDGenerator{id: "generated"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/teams", nil)
	req.Header.Set(requestIDHeader, "from-client")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "from-client" {
		t.Fatalf("expected incoming request id, got %q", seen)
	}
}

func TestRequestID_GeneratorFailure(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	handler := RequestID(fixedIDGenerator{err: errors.New("entropy")}, next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))

	if !called {
		t.Fatalf("request must still be served")
	}
	if got := rec.Header().Get(requestIDHeader); got != "" {
		t.Fatalf("expected no request id header, got %q", got)
	}
}

func TestRequestLogging_RecordsStatus(t *testing.T) {
	var out bytes.Buffer
	logger := logging.NewJSONWriter(&out, logging.LevelInfo)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	rec := httptest.NewRecorder()
	RequestLogging(logger, next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/teams/Halcones/players", nil))

	line := out.String()
	if !strings.Contains(line, `"status":409`) || !strings.Contains(line, `"path":"/v1/teams/Halcones/players"`) {
		t.Fatalf("unexpected log line: %s", line)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: "/metrics", want: false},
		{path: "/v1/teams", want: true},
	}

	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
		}
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func captureRequestID(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var captured string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = chimiddleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(chimiddleware.RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return captured, rec
}

func TestRequestIDGeneratesUUIDv4(t *testing.T) {
	captured, rec := captureRequestID(t, "")

	if captured == "" {
		t.Fatal("expected generated request ID")
	}
	if header := rec.Header().Get(chimiddleware.RequestIDHeader); header != captured {
		t.Fatalf("expected response header %q, got %q", captured, header)
	}
	parsed, err := uuid.Parse(captured)
	if err != nil {
		t.Fatalf("request ID %q is not a valid UUID: %v", captured, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("expected UUIDv4, got version %d", parsed.Version())
	}
}

func TestRequestIDPreservesIncomingHeader(t *testing.T) {
	captured, rec := captureRequestID(t, "external-id")

	if captured != "external-id" {
		t.Fatalf("expected request ID external-id, got %q", captured)
	}
	if header := rec.Header().Get(chimiddleware.RequestIDHeader); header != "external-id" {
		t.Fatalf("expected header external-id, got %q", header)
	}
}

func TestRequestIDRejectsInvalidHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"too long", strings.Repeat("a", maxRequestIDLength+1)},
		{"tab", "abc\tdef"},
		{"non ascii", "héllo"},
		{"delete char", "abc\x7f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured, _ := captureRequestID(t, tt.header)
			if captured == tt.header {
				t.Fatalf("expected invalid header to be replaced")
			}
			if _, err := uuid.Parse(captured); err != nil {
				t.Fatalf("expected generated UUID, got %q", captured)
			}
		})
	}
}

func TestValidRequestIDBoundaries(t *testing.T) {
	if !validRequestID(strings.Repeat("x", maxRequestIDLength)) {
		t.Fatal("expected max length ID to be valid")
	}
	if !validRequestID(" ~") {
		t.Fatal("expected printable ASCII range to be valid")
	}
	if validRequestID("") {
		t.Fatal("expected empty ID to be invalid")
	}
}

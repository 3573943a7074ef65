package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureID(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var seen string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return seen, w
}

func TestRequestID_Generated(t *testing.T) {
	id, w := captureID(t, "")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesClientValue(t *testing.T) {
	id, w := captureID(t, "client-123")
	assert.Equal(t, "client-123", id)
	assert.Equal(t, "client-123", w.Header().Get(RequestIDHeader))
}

func TestRequestID_RejectsOversizedValue(t *testing.T) {
	id, _ := captureID(t, strings.Repeat("x", maxRequestIDLength+1))
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestGetRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetRequestID(req.Context()))
}

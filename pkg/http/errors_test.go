package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, 400, "bad_request", "invalid input")

	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bad_request", resp.Error)
	assert.Equal(t, "invalid input", resp.Message)
}

func TestWriteDetail(t *testing.T) {
	w := httptest.NewRecorder()
	WriteDetail(w, 404, "Email not found — please register first.")

	assert.Equal(t, 404, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Email not found — please register first.", resp["detail"])
}

func TestCommonWriters(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w *httptest.ResponseRecorder)
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", func(w *httptest.ResponseRecorder) { WriteUnauthorized(w, "nope") }, 401, "unauthorized"},
		{"forbidden", func(w *httptest.ResponseRecorder) { WriteForbidden(w, "nope") }, 403, "forbidden"},
		{"not found", func(w *httptest.ResponseRecorder) { WriteNotFound(w, "nope") }, 404, "not_found"},
		{"conflict", func(w *httptest.ResponseRecorder) { WriteConflict(w, "nope") }, 409, "conflict"},
		{"internal", func(w *httptest.ResponseRecorder) { WriteInternalError(w, "nope") }, 500, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
		})
	}
}

package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getmockd/sessiontrace/pkg/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON with correct content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusOK, map[string]string{"session": "7a9f2c"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "7a9f2c", result["session"])
	})

	t.Run("handles nil data", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusNoContent, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	t.Run("without request id", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteNotFound(rec, "not_found", "no such route")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var result map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "not_found", result["error"])
		assert.Equal(t, "no such route", result["message"])
		_, hasID := result["requestId"]
		assert.False(t, hasID)
	})

	t.Run("echoes request id header", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rec.Header().Set(requestid.Header, "r_a3f7b2c1")

		WriteInternalError(rec, "internal_error", "boom")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var result ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "r_a3f7b2c1", result.RequestID)
	})

	t.Run("method not allowed sets Allow", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteMethodNotAllowed(rec, http.MethodGet, http.MethodHead)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, []string{"GET", "HEAD"}, rec.Header().Values("Allow"))
	})
}

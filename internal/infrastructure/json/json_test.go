package json

import (
	stdjson "encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDecodesBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tripName":"Lisbon"}`))

	var body struct {
		TripName string `json:"tripName"`
	}
	require.NoError(t, Read(r, &body))
	assert.Equal(t, "Lisbon", body.TripName)
}

func TestReadRejectsEmptyAndTrailingData(t *testing.T) {
	var body map[string]any

	empty := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.Error(t, Read(empty, &body))

	twice := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{} {}`))
	assert.Error(t, Read(twice, &body))
}

func TestWriteErrorShape(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteForbiddenError(rec, "You are not a member of this trip")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, stdjson.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Forbidden", resp.Error)
	assert.Equal(t, "You are not a member of this trip", resp.Message)
}

func TestWriteRateLimitSetsRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteRateLimitError(rec, 3)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("Retry-After"))
}

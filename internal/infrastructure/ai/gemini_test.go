package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiReply(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
}

func newTestClient(url string, attempts uint) *GeminiClient {
	c := NewGeminiClient(Config{
		Endpoint:    url,
		Model:       "gemini-test",
		APIKey:      "k",
		Timeout:     time.Second,
		MaxAttempts: attempts,
	})
	c.retryDelay = time.Millisecond
	return c
}

func TestGenerateItinerary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Contents[0].Parts[0].Text, "2-day travel itinerary for Goa")

		_ = json.NewEncoder(w).Encode(geminiReply("```json\n{\"days\":[\"Day 1\",\"Day 2\"],\"activities\":{\"Day 1\":[\" Morning: Beach \",\"\"],\"Day 2\":[\"Evening: Market\"]}}\n```"))
	}))
	defer srv.Close()

	it, err := newTestClient(srv.URL, 1).GenerateItinerary(context.Background(), "Goa", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Day 1", "Day 2"}, it.Days)
	assert.Equal(t, []string{"Morning: Beach"}, it.Activities["Day 1"])
}

func TestGenerateItinerary_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(geminiReply(`{"days":["Day 1"],"activities":{"Day 1":["Walk"]}}`))
	}))
	defer srv.Close()

	it, err := newTestClient(srv.URL, 3).GenerateItinerary(context.Background(), "Goa", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Day 1"}, it.Days)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateItinerary_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).GenerateItinerary(context.Background(), "Goa", 1)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, int32(1), calls.Load())
}

func TestParseItinerary(t *testing.T) {
	_, err := ParseItinerary("   ")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = ParseItinerary("Sure! Here is your trip")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = ParseItinerary(`{"days":[],"activities":{}}`)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	it, err := ParseItinerary(`{"days":["Day 1"],"activities":{"Day 1":["A", 3]}}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "3"}, it.Activities["Day 1"])
}

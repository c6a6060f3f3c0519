package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/hilthontt/tripsync/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrEmptyResponse   = errors.New("ai returned no itinerary")
	ErrInvalidResponse = errors.New("ai response is not valid itinerary json")
	ErrUpstream        = errors.New("ai upstream error")
)

// Generator produces an itinerary draft for a destination.
type Generator interface {
	GenerateItinerary(ctx context.Context, destination string, days int) (domain.Itinerary, error)
}

type Config struct {
	Endpoint    string
	Model       string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts uint
}

type GeminiClient struct {
	cfg        Config
	httpClient *http.Client
	retryDelay time.Duration
}

func NewGeminiClient(cfg Config) *GeminiClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 1
	}

	return &GeminiClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		retryDelay: 300 * time.Millisecond,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type itineraryDraft struct {
	Days       domain.DayList     `json:"days"`
	Activities domain.ActivityMap `json:"activities"`
}

func Prompt(destination string, days int) string {
	return fmt.Sprintf(`Create a %d-day travel itinerary for %s.
Each day should have 3 short activities: morning, afternoon, and evening.

Respond ONLY in this strict JSON format:
{
  "days": ["Day 1", "Day 2", "Day 3"],
  "activities": {
    "Day 1": ["Morning: ...", "Afternoon: ...", "Evening: ..."],
    ...
  }
}

No explanation. No markdown. Only JSON.`, days, destination)
}

func (c *GeminiClient) GenerateItinerary(ctx context.Context, destination string, days int) (domain.Itinerary, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: Prompt(destination, days)}}}},
	})
	if err != nil {
		return domain.Itinerary{}, err
	}

	var text string
	err = retry.Do(
		func() error {
			var callErr error
			text, callErr = c.call(ctx, body)
			return callErr
		},
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxAttempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return domain.Itinerary{}, err
	}

	return ParseItinerary(text)
}

func (c *GeminiClient) call(ctx context.Context, body []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Model, url.QueryEscape(c.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", retry.Unrecoverable(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
		// Only throttling and server errors are worth another attempt.
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", err
		}
		return "", retry.Unrecoverable(err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", retry.Unrecoverable(fmt.Errorf("%w: %v", ErrInvalidResponse, err))
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", retry.Unrecoverable(ErrEmptyResponse)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// ParseItinerary decodes model output, tolerating markdown code fences.
func ParseItinerary(text string) (domain.Itinerary, error) {
	cleaned := strings.NewReplacer("```json", "", "```", "").Replace(text)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return domain.Itinerary{}, ErrEmptyResponse
	}

	var draft itineraryDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return domain.Itinerary{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	it := domain.Itinerary{
		Days:       []string(draft.Days),
		Activities: draft.Activities.Strings(),
	}.Sanitize()

	if len(it.Days) == 0 {
		return domain.Itinerary{}, ErrEmptyResponse
	}
	return it, nil
}

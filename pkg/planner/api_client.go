package planner

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrMissingTripCode = errors.New("missing required trip code parameter")
	ErrMissingID       = errors.New("missing required id parameter")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool  { return hasStatus(err, http.StatusNotFound) }
func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

type ClientOption func(*APIClient)

func WithBaseURL(base string) ClientOption {
	return func(c *APIClient) { c.baseURL = strings.TrimRight(base, "/") }
}

func WithBearerToken(token string) ClientOption {
	return func(c *APIClient) { c.token = token }
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *APIClient) { c.http = client }
}

// WithConnectionID binds HTTP calls to a live realtime connection so the
// server joins it to rooms and skips it when echoing updates.
func WithConnectionID(id string) ClientOption {
	return func(c *APIClient) { c.connectionID = id }
}

// APIClient talks to the REST side of the API.
type APIClient struct {
	baseURL      string
	token        string
	connectionID string
	http         *http.Client
}

func NewAPIClient(opts ...ClientOption) *APIClient {
	c := &APIClient{
		baseURL: "http://localhost:5000",
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type TripResponse struct {
	ID         string              `json:"id"`
	TripCode   string              `json:"tripCode"`
	TripName   string              `json:"tripName"`
	Members    []string            `json:"members"`
	Days       []string            `json:"days"`
	Activities map[string][]string `json:"activities"`
}

func (t TripResponse) Itinerary() Itinerary {
	return Itinerary{Days: t.Days, Activities: t.Activities}
}

type JoinResponse struct {
	Message    string              `json:"message"`
	TripName   string              `json:"tripName"`
	TripCode   string              `json:"tripCode"`
	Days       []string            `json:"days"`
	Activities map[string][]string `json:"activities"`
}

type SoloTrip struct {
	ID            string              `json:"id,omitempty"`
	ItineraryName string              `json:"itineraryName"`
	Destination   string              `json:"destination"`
	StartDate     string              `json:"startDate"`
	EndDate       string              `json:"endDate"`
	Days          []string            `json:"days"`
	Activities    map[string][]string `json:"activities"`
}

func (c *APIClient) CreateTrip(ctx context.Context, tripName string) (*TripResponse, error) {
	res := &TripResponse{}
	err := c.Execute(ctx, http.MethodPost, "/api/collaborations", map[string]string{"tripName": tripName}, res)
	return res, err
}

func (c *APIClient) JoinTrip(ctx context.Context, tripCode string) (*JoinResponse, error) {
	if tripCode == "" {
		return nil, ErrMissingTripCode
	}

	res := &JoinResponse{}
	err := c.Execute(ctx, http.MethodPost, "/api/collaborations/join", map[string]string{"tripCode": tripCode}, res)
	return res, err
}

func (c *APIClient) GetTrip(ctx context.Context, tripCode string) (*TripResponse, error) {
	if tripCode == "" {
		return nil, ErrMissingTripCode
	}

	res := &TripResponse{}
	err := c.Execute(ctx, http.MethodGet, "/api/collaborations/"+url.PathEscape(tripCode), nil, res)
	return res, err
}

func (c *APIClient) UpdateItinerary(ctx context.Context, tripCode string, it Itinerary) (Itinerary, error) {
	if tripCode == "" {
		return Itinerary{}, ErrMissingTripCode
	}

	var res Itinerary
	err := c.Execute(ctx, http.MethodPut, "/api/collaborations/update/"+url.PathEscape(tripCode), it, &res)
	return res, err
}

// Fetch implements Fetcher over GET /collaborations/{tripCode}.
func (c *APIClient) Fetch(ctx context.Context, tripCode string) (Itinerary, error) {
	trip, err := c.GetTrip(ctx, tripCode)
	if err != nil {
		return Itinerary{}, err
	}
	return trip.Itinerary(), nil
}

func (c *APIClient) SaveSoloTrip(ctx context.Context, trip SoloTrip) (*SoloTrip, error) {
	method, path := http.MethodPost, "/api/trips"
	if trip.ID != "" {
		method, path = http.MethodPut, "/api/trips/"+url.PathEscape(trip.ID)
	}

	res := &SoloTrip{}
	err := c.Execute(ctx, method, path, trip, res)
	return res, err
}

// CollaborationSaver returns a Saver that persists the shared itinerary
// of tripCode through the collaboration update endpoint.
func (c *APIClient) CollaborationSaver(tripCode string) Saver {
	return &collaborationSaver{client: c, tripCode: tripCode}
}

type collaborationSaver struct {
	client   *APIClient
	tripCode string
}

func (s *collaborationSaver) Save(ctx context.Context, it Itinerary) error {
	_, err := s.client.UpdateItinerary(ctx, s.tripCode, it)
	return err
}

// SoloSaver returns a Saver that writes the editor's itinerary into trip,
// creating it on the first save.
func (c *APIClient) SoloSaver(trip SoloTrip) Saver {
	return &soloSaver{client: c, trip: trip}
}

type soloSaver struct {
	client *APIClient
	trip   SoloTrip
}

func (s *soloSaver) Save(ctx context.Context, it Itinerary) error {
	s.trip.Days = it.Days
	s.trip.Activities = it.Activities

	saved, err := s.client.SaveSoloTrip(ctx, s.trip)
	if err != nil {
		return err
	}
	s.trip.ID = saved.ID
	return nil
}

func (c *APIClient) Execute(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.connectionID != "" {
		req.Header.Set("X-Connection-ID", c.connectionID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

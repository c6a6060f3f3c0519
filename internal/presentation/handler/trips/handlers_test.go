package trips

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/tripsync/internal/application/usecases/trip"
	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/repository"
	"github.com/hilthontt/tripsync/internal/presentation/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() http.Handler {
	h := NewHandler(trip.NewUseCase(repository.NewSoloTripRepository(), nil), nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := r.Header.Get("X-Test-User"); user != "" {
				r = r.WithContext(utils.WithIdentity(r.Context(), domain.Identity{UserID: user}))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Post("/trips", h.CreateTripHandler)
	r.Get("/trips", h.ListTripsHandler)
	r.Get("/trips/{id}", h.GetTripHandler)
	r.Put("/trips/{id}", h.UpdateTripHandler)
	r.Delete("/trips/{id}", h.DeleteTripHandler)
	return r
}

func call(t *testing.T, router http.Handler, method, path, user, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Test-User", user)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

const lisbon = `{
	"itineraryName": "Lisbon",
	"destination": "Lisbon",
	"startDate": "2099-06-20",
	"endDate": "2099-06-22",
	"days": ["Day 1", "Day 2", "Day 3"],
	"activities": {"Day 1": [" Tram 28 ", ""], "Day 2": []}
}`

const oldTrip = `{
	"itineraryName": "Rome",
	"destination": "Rome",
	"startDate": "2001-01-01",
	"endDate": "2001-01-03"
}`

func TestTripsCRUD(t *testing.T) {
	router := newRouter()

	status, created := call(t, router, http.MethodPost, "/trips", "ann", lisbon)
	require.Equal(t, http.StatusCreated, status)
	id := created["id"].(string)
	assert.Equal(t, []any{"Tram 28"}, created["activities"].(map[string]any)["Day 1"])

	status, _ = call(t, router, http.MethodPost, "/trips", "ann", oldTrip)
	require.Equal(t, http.StatusCreated, status)

	status, list := call(t, router, http.MethodGet, "/trips", "ann", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list["currentTrips"], 1)
	assert.Len(t, list["pastTrips"], 1)

	status, got := call(t, router, http.MethodGet, "/trips/"+id, "ann", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Lisbon", got["destination"])

	status, _ = call(t, router, http.MethodGet, "/trips/"+id, "ben", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, updated := call(t, router, http.MethodPut, "/trips/"+id, "ann",
		strings.Replace(lisbon, `"itineraryName": "Lisbon"`, `"itineraryName": "Lisbon again"`, 1))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Lisbon again", updated["itineraryName"])

	status, _ = call(t, router, http.MethodDelete, "/trips/"+id, "ben", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, router, http.MethodDelete, "/trips/"+id, "ann", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, router, http.MethodGet, "/trips/"+id, "ann", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateTripHandler_Validation(t *testing.T) {
	router := newRouter()

	status, body := call(t, router, http.MethodPost, "/trips", "ann", `{"destination":"Lisbon","startDate":"June","endDate":"2099-06-22"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "itineraryName")
	assert.Contains(t, body["message"], "startDate")

	status, _ = call(t, router, http.MethodPost, "/trips", "ann",
		`{"itineraryName":"x","destination":"Lisbon","startDate":"2099-06-22","endDate":"2099-06-20"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, router, http.MethodPost, "/trips", "", lisbon)
	assert.Equal(t, http.StatusUnauthorized, status)
}

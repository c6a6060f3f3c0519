package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeActivityList(t *testing.T) {
	got := SanitizeActivityList([]string{"  Museum  ", "", "Lunch"})
	assert.Equal(t, []string{"Museum", "Lunch"}, got)

	assert.Empty(t, SanitizeActivityList([]string{"   ", ""}))
}

func TestItinerary_SanitizeIsIdempotent(t *testing.T) {
	it := Itinerary{
		Days: []string{"Day 1", "", " ", "Day 2"},
		Activities: map[string][]string{
			"Day 1": {" Breakfast ", "\t", "Walk"},
			"Day 2": {},
		},
	}

	once := it.Sanitize()
	twice := once.Sanitize()

	assert.Equal(t, []string{"Day 1", " ", "Day 2"}, once.Days)
	assert.Equal(t, []string{"Breakfast", "Walk"}, once.Activities["Day 1"])
	assert.True(t, once.Equal(twice))
}

func TestSanitizeDays(t *testing.T) {
	assert.Equal(t, []string{"Day 1", "   ", "Day 2"}, SanitizeDays([]string{"Day 1", "   ", "", "Day 2"}))
	assert.Empty(t, SanitizeDays([]string{"", ""}))
}

func TestItinerary_CloneIsDeep(t *testing.T) {
	it := Itinerary{
		Days:       []string{"Day 1"},
		Activities: map[string][]string{"Day 1": {"Museum"}},
	}

	clone := it.Clone()
	clone.Days[0] = "changed"
	clone.Activities["Day 1"][0] = "changed"

	assert.Equal(t, "Day 1", it.Days[0])
	assert.Equal(t, "Museum", it.Activities["Day 1"][0])
}

func TestItinerary_Equal(t *testing.T) {
	a := Itinerary{Days: []string{"Day 1"}, Activities: map[string][]string{"Day 1": {"A"}}}
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Activities["Day 1"] = []string{"B"}
	assert.False(t, a.Equal(b))

	c := a.Clone()
	c.Days = append(c.Days, "Day 2")
	assert.False(t, a.Equal(c))
}

func TestExpandDays(t *testing.T) {
	day := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []string
	}{
		{"same day", day, day, []string{"Day 1"}},
		{"three days", day, day.AddDate(0, 0, 2), []string{"Day 1", "Day 2", "Day 3"}},
		{"end before start", day, day.AddDate(0, 0, -3), []string{"Day 1"}},
		{"ignores time of day", time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC), time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC), []string{"Day 1", "Day 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandDays(tt.start, tt.end))
		})
	}
}

func TestDayCount_LongRanges(t *testing.T) {
	start := time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3652059, DayCount(start, end))
}

func TestEmptyItinerary(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	it := EmptyItinerary(start, start.AddDate(0, 0, 1))

	assert.Equal(t, []string{"Day 1", "Day 2"}, it.Days)
	assert.Equal(t, map[string][]string{"Day 1": {}, "Day 2": {}}, it.Activities)
}

func TestDayList_UnmarshalJSON(t *testing.T) {
	var days DayList
	require.NoError(t, json.Unmarshal([]byte(`["Day 1", 2, null, "Day 2"]`), &days))
	assert.Equal(t, DayList{"Day 1", "Day 2"}, days)

	require.NoError(t, json.Unmarshal([]byte(`[null, " null ", "", "Day 3"]`), &days))
	assert.Equal(t, DayList{" null ", "", "Day 3"}, days)

	err := json.Unmarshal([]byte(`"Day 1"`), &days)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestActivityMap_UnmarshalJSON(t *testing.T) {
	var m ActivityMap
	body := `{"Day 1": ["Museum", 42, true, null, {"x": 1}, ["y"]], "Day 2": "not a list"}`
	require.NoError(t, json.Unmarshal([]byte(body), &m))

	got := m.Strings()
	assert.Equal(t, []string{"Museum", "42", "true"}, got["Day 1"])
	assert.Equal(t, []string{}, got["Day 2"])
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

const dayLabelPrefix = "Day "

// Itinerary is the shared document: ordered day labels and, per label, an
// ordered list of free-text activities.
type Itinerary struct {
	Days       []string            `json:"days" bson:"days"`
	Activities map[string][]string `json:"activities" bson:"activities"`
}

func NewItinerary() Itinerary {
	return Itinerary{
		Days:       []string{},
		Activities: map[string][]string{},
	}
}

// Sanitize trims every activity, drops empty ones and drops empty day labels.
// Applying it twice yields the same result.
func (it Itinerary) Sanitize() Itinerary {
	return Itinerary{
		Days:       SanitizeDays(it.Days),
		Activities: SanitizeActivities(it.Activities),
	}
}

// Clone returns a deep copy.
func (it Itinerary) Clone() Itinerary {
	out := Itinerary{
		Days:       append([]string{}, it.Days...),
		Activities: make(map[string][]string, len(it.Activities)),
	}
	for day, list := range it.Activities {
		out.Activities[day] = append([]string{}, list...)
	}
	return out
}

// Equal reports whether both documents hold the same days and activities.
func (it Itinerary) Equal(other Itinerary) bool {
	if len(it.Days) != len(other.Days) || len(it.Activities) != len(other.Activities) {
		return false
	}
	for i := range it.Days {
		if it.Days[i] != other.Days[i] {
			return false
		}
	}
	for day, list := range it.Activities {
		otherList, ok := other.Activities[day]
		if !ok || len(list) != len(otherList) {
			return false
		}
		for i := range list {
			if list[i] != otherList[i] {
				return false
			}
		}
	}
	return true
}

// SanitizeDays keeps every non-empty label exactly as given.
func SanitizeDays(days []string) []string {
	return lo.Filter(days, func(day string, _ int) bool {
		return day != ""
	})
}

func SanitizeActivities(activities map[string][]string) map[string][]string {
	out := make(map[string][]string, len(activities))
	for day, list := range activities {
		out[day] = SanitizeActivityList(list)
	}
	return out
}

func SanitizeActivityList(list []string) []string {
	trimmed := lo.Map(list, func(activity string, _ int) string {
		return strings.TrimSpace(activity)
	})
	return lo.Filter(trimmed, func(activity string, _ int) bool {
		return activity != ""
	})
}

// DayLabel returns the label of the n-th day, counting from 1.
func DayLabel(n int) string {
	return dayLabelPrefix + strconv.Itoa(n)
}

// DayCount is the number of calendar days spanned by [start, end], both
// inclusive. A range whose end precedes its start counts as a single day.
func DayCount(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	n := int((e.Unix()-s.Unix())/(24*60*60)) + 1
	if n < 1 {
		return 1
	}
	return n
}

// ExpandDays builds "Day 1".."Day N" for the inclusive date range.
func ExpandDays(start, end time.Time) []string {
	n := DayCount(start, end)
	days := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		days = append(days, DayLabel(i))
	}
	return days
}

// EmptyItinerary expands the range and gives every day an empty activity list.
func EmptyItinerary(start, end time.Time) Itinerary {
	it := NewItinerary()
	it.Days = ExpandDays(start, end)
	for _, day := range it.Days {
		it.Activities[day] = []string{}
	}
	return it
}

// DayList decodes a JSON array of day labels, keeping only string entries.
type DayList []string

func (d *DayList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: days must be an array", ErrInvalidInput)
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '"' {
			continue
		}
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	*d = out
	return nil
}

// ActivityList decodes a JSON array of activities. Strings are kept as-is,
// numbers and booleans are coerced to their text form, anything else is
// dropped. A value that is not an array decodes to an empty list.
type ActivityList []string

func (a *ActivityList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*a = ActivityList{}
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := coerceActivity(item); ok {
			out = append(out, s)
		}
	}
	*a = out
	return nil
}

func coerceActivity(item json.RawMessage) (string, bool) {
	item = bytes.TrimSpace(item)
	if len(item) == 0 {
		return "", false
	}

	switch item[0] {
	case '"':
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return "", false
		}
		return s, true
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(item, &b); err != nil {
			return "", false
		}
		return strconv.FormatBool(b), true
	case 'n', '{', '[':
		return "", false
	default:
		var n json.Number
		if err := json.Unmarshal(item, &n); err != nil {
			return "", false
		}
		return n.String(), true
	}
}

// ActivityMap is the inbound shape of the activities mapping.
type ActivityMap map[string]ActivityList

func (m ActivityMap) Strings() map[string][]string {
	out := make(map[string][]string, len(m))
	for day, list := range m {
		out[day] = []string(list)
	}
	return out
}

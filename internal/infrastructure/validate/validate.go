// Package validate holds composable string validators for request fields.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Validator is a function that validates a string and returns an error if invalid
type Validator func(value string) error

// Field labels the first failing validator's error with the field name.
func Field(name string, validators ...Validator) Validator {
	return func(value string) error {
		for _, v := range validators {
			if err := v(value); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return nil
	}
}

// Compose chains validators, first error wins.
func Compose(validators ...Validator) Validator {
	return func(value string) error {
		for _, v := range validators {
			if err := v(value); err != nil {
				return err
			}
		}
		return nil
	}
}

func Required() Validator {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("this field is required")
		}
		return nil
	}
}

// MaxLength counts runes, not bytes.
func MaxLength(max int) Validator {
	return func(v string) error {
		if utf8.RuneCountInString(v) > max {
			return fmt.Errorf("must be no more than %d characters", max)
		}
		return nil
	}
}

func Length(exact int) Validator {
	return func(v string) error {
		if utf8.RuneCountInString(v) != exact {
			return fmt.Errorf("must be exactly %d characters", exact)
		}
		return nil
	}
}

func Matches(pattern, message string) Validator {
	re := regexp.MustCompile(pattern)
	return func(v string) error {
		if !re.MatchString(v) {
			if message != "" {
				return fmt.Errorf("%s", message)
			}
			return fmt.Errorf("invalid format")
		}
		return nil
	}
}

func OneOf(allowed ...string) Validator {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return func(v string) error {
		if !set[v] {
			return fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
		}
		return nil
	}
}

// Date accepts a calendar date or an RFC 3339 timestamp.
func Date() Validator {
	return func(v string) error {
		if _, err := ParseDate(v); err != nil {
			return fmt.Errorf("must be a date (YYYY-MM-DD)")
		}
		return nil
	}
}

func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

// WithinDays bounds a date to the inclusive span of days starting at from.
// An unparsable from is left to its own rule.
func WithinDays(from string, days int) Validator {
	return func(v string) error {
		start, err := ParseDate(from)
		if err != nil {
			return nil
		}
		end, err := ParseDate(v)
		if err != nil {
			return nil
		}
		if end.Unix()-start.Unix() >= int64(days)*24*60*60 {
			return fmt.Errorf("must be within %d days of the start date", days)
		}
		return nil
	}
}

// TripName is the rule applied to collaborative trip names.
func TripName() Validator {
	return Field("tripName", Required(), MaxLength(120))
}

// TripCode expects an already normalized code.
func TripCode() Validator {
	return Field("tripCode",
		Required(),
		Length(6),
		Matches(`^[A-Z0-9]+$`, "must contain only letters and digits"),
	)
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	for _, name := range []string{"zap", "zerolog"} {
		t.Run(name, func(t *testing.T) {
			l, err := NewLogger(&LoggerConfig{Logger: name, Encoding: "json", Level: "info"})
			require.NoError(t, err)
			assert.NotPanics(t, func() {
				l.Info(General, Startup, "hello", map[ExtraKey]any{TripCode: "ABC123"})
				l.Debugf("value %d", 1)
			})
		})
	}
}

func TestNewLogger_Unsupported(t *testing.T) {
	_, err := NewLogger(&LoggerConfig{Logger: "logrus"})
	assert.Error(t, err)
}

func TestWithCategoryDoesNotMutateInput(t *testing.T) {
	extra := map[ExtraKey]any{Path: "/api"}
	out := withCategory(General, Startup, extra)

	assert.Len(t, extra, 1)
	assert.Equal(t, "General", out["Category"])
	assert.Equal(t, "Startup", out["SubCategory"])
	assert.Equal(t, "/api", out[Path])
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNew tests Config creation.
func TestNew(t *testing.T) {
	cfg := New(map[string]any{"key": "value"})
	assert.Equal(t, "value", cfg.String("key", ""))
}

// TestNew_NilMap verifies a nil map yields a usable empty config.
func TestNew_NilMap(t *testing.T) {
	cfg := New(nil)
	assert.Equal(t, "fallback", cfg.String("anything", "fallback"))
	assert.False(t, cfg.Has("anything"))
	assert.NotNil(t, cfg.Raw())
}

// TestConfig_String tests string extraction with defaults.
func TestConfig_String(t *testing.T) {
	cfg := New(map[string]any{
		"name":   "nodegraph",
		"number": 42,
	})

	assert.Equal(t, "nodegraph", cfg.String("name", "default"))
	assert.Equal(t, "default", cfg.String("missing", "default"))
	// Wrong type falls back.
	assert.Equal(t, "default", cfg.String("number", "default"))
}

// TestConfig_Bool tests boolean extraction with defaults.
func TestConfig_Bool(t *testing.T) {
	cfg := New(map[string]any{
		"enabled":  true,
		"disabled": false,
		"text":     "true",
	})

	assert.True(t, cfg.Bool("enabled", false))
	assert.False(t, cfg.Bool("disabled", true))
	assert.True(t, cfg.Bool("missing", true))
	// A string "true" is not a bool.
	assert.False(t, cfg.Bool("text", false))
}

// TestConfig_Int tests integer extraction and numeric conversions.
func TestConfig_Int(t *testing.T) {
	cfg := New(map[string]any{
		"int":        10,
		"int64":      int64(20),
		"whole":      float64(30),
		"fractional": 30.5,
		"text":       "40",
	})

	assert.Equal(t, 10, cfg.Int("int", 0))
	assert.Equal(t, 20, cfg.Int("int64", 0))
	assert.Equal(t, 30, cfg.Int("whole", 0))
	// Fractional floats do not silently truncate.
	assert.Equal(t, -1, cfg.Int("fractional", -1))
	assert.Equal(t, -1, cfg.Int("text", -1))
	assert.Equal(t, -1, cfg.Int("missing", -1))
}

// TestConfig_Float tests float extraction and numeric conversions.
func TestConfig_Float(t *testing.T) {
	cfg := New(map[string]any{
		"float": 2.5,
		"int":   3,
		"int64": int64(4),
	})

	assert.Equal(t, 2.5, cfg.Float("float", 0))
	assert.Equal(t, 3.0, cfg.Float("int", 0))
	assert.Equal(t, 4.0, cfg.Float("int64", 0))
	assert.Equal(t, 1.5, cfg.Float("missing", 1.5))
}

// TestConfig_Any_Has tests raw access and key presence.
func TestConfig_Any_Has(t *testing.T) {
	nested := map[string]any{"inner": 1}
	cfg := New(map[string]any{"nested": nested})

	assert.Equal(t, nested, cfg.Any("nested", nil))
	assert.Equal(t, "fallback", cfg.Any("missing", "fallback"))
	assert.True(t, cfg.Has("nested"))
	assert.False(t, cfg.Has("missing"))
}

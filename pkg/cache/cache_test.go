package cache

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreReadWrite(t *testing.T) {
	store := New(time.Minute)
	require.True(t, store.Enabled())

	_, ok := store.Read("stock:2330")
	assert.False(t, ok)

	store.Write("stock:2330", []string{"a", "b"})
	cached, ok := store.Read("stock:2330")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, cached)
}

func TestStoreExpiry(t *testing.T) {
	store := New(30 * time.Millisecond)
	store.Write("daily:20240101", 42)

	cached, ok := store.Read("daily:20240101")
	require.True(t, ok)
	assert.Equal(t, 42, cached)

	time.Sleep(60 * time.Millisecond)

	_, ok = store.Read("daily:20240101")
	assert.False(t, ok)
}

func TestStoreDisabled(t *testing.T) {
	store := New(0)
	require.False(t, store.Enabled())

	store.Write("stock:2330", "value")
	_, ok := store.Read("stock:2330")
	assert.False(t, ok)

	// no-ops must not panic
	store.Delete("stock:2330")
	store.Flush()
}

func TestStoreDeleteAndFlush(t *testing.T) {
	store := New(time.Minute)
	store.Write("a", 1)
	store.Write("b", 2)

	store.Delete("a")
	_, ok := store.Read("a")
	assert.False(t, ok)
	_, ok = store.Read("b")
	assert.True(t, ok)

	store.Flush()
	_, ok = store.Read("b")
	assert.False(t, ok)
}

func TestStoreFromInvalidTTLStillCaches(t *testing.T) {
	store := New(TTLFromMinutes(math.NaN()))
	require.True(t, store.Enabled())

	store.Write("stock:2330", "v")
	cached, ok := store.Read("stock:2330")
	require.True(t, ok)
	assert.Equal(t, "v", cached)
}

func TestTTLFromMinutes(t *testing.T) {
	tests := []struct {
		name     string
		minutes  float64
		expected time.Duration
	}{
		{name: "positive minutes", minutes: 5, expected: 5 * time.Minute},
		{name: "fractional minutes", minutes: 0.5, expected: 30 * time.Second},
		{name: "zero stays zero", minutes: 0, expected: 0},
		{name: "negative falls back to default", minutes: -1, expected: DefaultTTL},
		{name: "nan falls back to default", minutes: math.NaN(), expected: DefaultTTL},
		{name: "positive infinity falls back to default", minutes: math.Inf(1), expected: DefaultTTL},
		{name: "negative infinity falls back to default", minutes: math.Inf(-1), expected: DefaultTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TTLFromMinutes(tt.minutes))
		})
	}
}

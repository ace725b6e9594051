package geodata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGazetteer(t *testing.T) {
	g, err := NewGazetteer()
	require.NoError(t, err)
	assert.Greater(t, g.Count(), 20)
}

func TestGazetteer_Lookup(t *testing.T) {
	g, err := NewGazetteer()
	require.NoError(t, err)

	tests := []struct {
		name    string
		query   string
		wantOK  bool
		wantLat float64
	}{
		{name: "exact match", query: "New York", wantOK: true, wantLat: 40.7128},
		{name: "case insensitive", query: "new york", wantOK: true, wantLat: 40.7128},
		{name: "query contains city", query: "New York, NY", wantOK: true, wantLat: 40.7128},
		{name: "london", query: "London", wantOK: true, wantLat: 51.5074},
		{name: "southern hemisphere", query: "Sydney", wantOK: true, wantLat: -33.8688},
		{name: "unknown place", query: "Atlantis", wantOK: false},
		{name: "empty query", query: "", wantOK: false},
		{name: "single letter fragment", query: "a", wantOK: false},
		{name: "city name fragment", query: "York", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, ok := g.Lookup(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantLat, coords.Latitude(), 1e-4)
			}
		})
	}
}

func TestGazetteer_Default(t *testing.T) {
	g, err := NewGazetteer()
	require.NoError(t, err)

	coords := g.Default()
	assert.InDelta(t, 40.7128, coords.Latitude(), 1e-4)
	assert.InDelta(t, -74.0060, coords.Longitude(), 1e-4)
}

package acl

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
	pkgerrors "astrotune-backend/pkg/errors"
)

func newTestAdapter() *PreciseEphemerisAdapter {
	return NewPreciseEphemerisAdapter(
		"python3", "astrology_engine.py", 5*time.Second,
		DefaultCircuitBreakerConfig("test-precise"), zap.NewNop(),
	)
}

// fixtureChart builds a calculator document shaped like the external
// calculator's real output: planets keyed by name, houses keyed "1".."12",
// sign-relative degrees and arcminutes.
func fixtureChart() *calculatorChart {
	planets := map[string]calculatorPlanet{
		"Sun":     {Sign: "Pisces", Degree: 24, Minute: 7},
		"Moon":    {Sign: "Scorpio", Degree: 19, Minute: 15},
		"Mercury": {Sign: "Pisces", Degree: 2, Minute: 41, Retrograde: true},
		"Venus":   {Sign: "Aquarius", Degree: 28, Minute: 3},
		"Mars":    {Sign: "Capricorn", Degree: 27, Minute: 50},
		"Jupiter": {Sign: "Cancer", Degree: 0, Minute: 53},
		"Saturn":  {Sign: "Capricorn", Degree: 24, Minute: 39},
		"Uranus":  {Sign: "Capricorn", Degree: 8, Minute: 55},
		"Neptune": {Sign: "Capricorn", Degree: 14, Minute: 46},
		"Pluto":   {Sign: "Scorpio", Degree: 17, Minute: 41, Retrograde: true},

		externalNorthNode: {Sign: "Aquarius", Degree: 15, Minute: 30},
		externalAscendant: {Sign: "Leo", Degree: 4, Minute: 12},
	}

	houses := make(map[string]calculatorHouse, 12)
	rising, _ := valueobjects.SignFromName("Leo")
	for number := 1; number <= 12; number++ {
		sign := valueobjects.Sign((int(rising) + number - 1) % 12)
		houses[fmt.Sprintf("%d", number)] = calculatorHouse{Sign: sign.String()}
	}

	return &calculatorChart{Planets: planets, Houses: houses}
}

func TestTranslate_CompleteChart(t *testing.T) {
	adapter := newTestAdapter()

	set, err := adapter.translate(fixtureChart())
	require.NoError(t, err)

	require.Len(t, set.Bodies, 10)
	sun := set.Bodies[0]
	assert.Equal(t, entities.Sun, sun.Body())
	assert.InDelta(t, 330+24+7.0/60, sun.Longitude().Degrees(), 1e-9)
	assert.Equal(t, "24°07' Pisces", sun.Formatted())
	assert.False(t, sun.Approximate())

	assert.Equal(t, valueobjects.Leo, set.Ascendant.Sign())
	assert.InDelta(t, 120+4+12.0/60, set.Ascendant.Degrees(), 1e-9)

	assert.Equal(t, 1, set.Houses[0].Number())
	assert.Equal(t, valueobjects.Leo, set.Houses[0].Sign())
	assert.Equal(t, valueobjects.Cancer, set.Houses[11].Sign())
}

func TestTranslate_SouthNodeDerivedFromNorth(t *testing.T) {
	adapter := newTestAdapter()

	set, err := adapter.translate(fixtureChart())
	require.NoError(t, err)

	north := set.NorthNode.Longitude()
	assert.True(t, set.SouthNode.Longitude().Equals(north.Opposite()),
		"the south node must sit exactly opposite the north node")
	assert.InDelta(t, 180, north.SeparationTo(set.SouthNode.Longitude()), 1e-9)
}

func TestTranslate_LuminaryRetrogradeCoerced(t *testing.T) {
	adapter := newTestAdapter()
	chart := fixtureChart()

	// A flaky calculator flag on a luminary must not reject the chart
	entry := chart.Planets["Sun"]
	entry.Retrograde = true
	chart.Planets["Sun"] = entry

	set, err := adapter.translate(chart)
	require.NoError(t, err)
	assert.False(t, set.Bodies[0].Retrograde())

	// Mercury's flag is kept as-is
	for _, p := range set.Bodies {
		if p.Body() == entities.Mercury {
			assert.True(t, p.Retrograde())
		}
	}
}

func TestTranslate_MissingData(t *testing.T) {
	adapter := newTestAdapter()

	tests := []struct {
		name   string
		mutate func(*calculatorChart)
	}{
		{
			name:   "missing planet",
			mutate: func(c *calculatorChart) { delete(c.Planets, "Mars") },
		},
		{
			name:   "missing north node",
			mutate: func(c *calculatorChart) { delete(c.Planets, externalNorthNode) },
		},
		{
			name:   "missing house",
			mutate: func(c *calculatorChart) { delete(c.Houses, "7") },
		},
		{
			name: "unknown sign",
			mutate: func(c *calculatorChart) {
				c.Planets["Venus"] = calculatorPlanet{Sign: "Ophiuchus", Degree: 10}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := fixtureChart()
			tt.mutate(chart)
			_, err := adapter.translate(chart)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsExternal(err))
		})
	}
}

func TestTranslate_AscendantFallsBackToFirstCusp(t *testing.T) {
	adapter := newTestAdapter()
	chart := fixtureChart()
	delete(chart.Planets, externalAscendant)

	set, err := adapter.translate(chart)
	require.NoError(t, err)
	assert.Equal(t, valueobjects.Leo, set.Ascendant.Sign())
	assert.InDelta(t, set.Houses[0].CuspDegree(), set.Ascendant.Degrees(), 1e-9)
}

func TestCalculatorChart_DecodesWireFormat(t *testing.T) {
	payload := `{
		"planets": {
			"Sun": {"sign": "Pisces", "degree": 24, "minute": 7, "retrograde": false}
		},
		"houses": {
			"1": {"sign": "Leo", "degree": 0, "minute": 0}
		}
	}`

	var chart calculatorChart
	require.NoError(t, json.Unmarshal([]byte(payload), &chart))
	assert.Equal(t, "Pisces", chart.Planets["Sun"].Sign)
	assert.Equal(t, float64(24), chart.Planets["Sun"].Degree)
	assert.Empty(t, chart.Error)
}

func TestCalculatorChart_ErrorEnvelope(t *testing.T) {
	var chart calculatorChart
	require.NoError(t, json.Unmarshal([]byte(`{"error": "ephemeris file not found"}`), &chart))
	assert.Equal(t, "ephemeris file not found", chart.Error)
}

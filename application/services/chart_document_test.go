package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChartDocument(t *testing.T) {
	chart := computeTestChart(t)
	doc := NewChartDocument(chart)

	assert.Equal(t, "Pisces", doc.BigThree.SunSign)
	assert.Equal(t, chart.MoonSign().String(), doc.BigThree.MoonSign)
	assert.Equal(t, chart.RisingSign().String(), doc.BigThree.RisingSign)

	// Ten tracked bodies plus the two lunar nodes
	assert.Len(t, doc.Planets, 12)
	require.Contains(t, doc.Planets, "Sun")
	require.Contains(t, doc.Planets, "North Node")
	require.Contains(t, doc.Planets, "South Node")

	assert.Len(t, doc.Houses, 12)
	for _, key := range []string{"1", "6", "12"} {
		assert.Contains(t, doc.Houses, key)
	}

	assert.Equal(t, "1990-03-15", doc.ChartInfo.Date)
	assert.Equal(t, "14:30", doc.ChartInfo.Time)
	assert.Equal(t, "New York", doc.ChartInfo.Location)
	assert.Equal(t, "approximate", doc.Source)
	assert.True(t, doc.Approximate)
	assert.Nil(t, doc.Resonance)

	total := 0
	for _, n := range doc.ElementBalance {
		total += n
	}
	assert.Equal(t, 10, total)
}

func TestNewChartDocument_WholeSignHouseNumbers(t *testing.T) {
	chart := computeTestChart(t)
	doc := NewChartDocument(chart)

	// In the whole-sign system the house number is the sign's distance
	// from the rising sign; house 1 holds the rising sign itself.
	rising := chart.RisingSign()
	for _, position := range chart.Bodies() {
		entry := doc.Planets[position.Body().String()]
		want := (int(position.Sign())-int(rising)+12)%12 + 1
		assert.Equal(t, want, entry.House, position.Body().String())
		assert.GreaterOrEqual(t, entry.House, 1)
		assert.LessOrEqual(t, entry.House, 12)
	}
}

func TestChartDocument_JSONContract(t *testing.T) {
	chart := computeTestChart(t)
	doc := NewChartDocument(chart)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{
		"bigThree", "lunarNodes", "planets", "houses", "aspects",
		"elementBalance", "modalityBalance", "dominantPlanet",
		"pattern", "lifeThemes", "chartInfo", "source", "approximate",
	} {
		assert.Contains(t, decoded, key)
	}
	assert.NotContains(t, decoded, "resonance", "resonance is omitted until scored")
}

func TestNewResonanceReportDocument(t *testing.T) {
	chart := computeTestChart(t)
	report, err := newTestResonanceService().Score(context.Background(), chart, validSeries())
	require.NoError(t, err)

	doc := NewResonanceReportDocument(report)
	assert.InDelta(t, report.Score, doc.Score, 1e-12)
	assert.Len(t, doc.Correlations, len(report.Correlations))
	for i, c := range report.Correlations {
		assert.Equal(t, c.Ratio.IntervalName, doc.Correlations[i].IntervalName)
		assert.Equal(t, string(c.ResonanceType), doc.Correlations[i].ResonanceType)
	}
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
)

func tenPositions(t *testing.T, longitudes [10]float64) []entities.BodyPosition {
	t.Helper()
	tracked := entities.TrackedBodies()
	positions := make([]entities.BodyPosition, 0, 10)
	for i, degrees := range longitudes {
		lon, err := valueobjects.NewLongitude(degrees)
		require.NoError(t, err)
		pos, err := entities.NewBodyPosition(tracked[i], lon, false, true)
		require.NoError(t, err)
		positions = append(positions, pos)
	}
	return positions
}

func TestBalanceSynthesizer_BalancesTotalTen(t *testing.T) {
	synth := NewBalanceSynthesizer()
	positions := tenPositions(t, [10]float64{5, 35, 65, 95, 125, 155, 185, 215, 245, 275})

	elements := synth.ElementBalance(positions)
	modalities := synth.ModalityBalance(positions)

	assert.Equal(t, 10, elements.Total())
	assert.Equal(t, 10, modalities.Total())
}

func TestBalanceSynthesizer_ElementTallies(t *testing.T) {
	// Sun..Pluto in Aries, Leo, Sagittarius (fire) and Taurus (earth)
	positions := tenPositions(t, [10]float64{5, 125, 245, 5, 125, 245, 5, 125, 245, 35})

	synth := NewBalanceSynthesizer()
	elements := synth.ElementBalance(positions)

	assert.Equal(t, 9, elements.Fire)
	assert.Equal(t, 1, elements.Earth)
	assert.Equal(t, 0, elements.Air)
	assert.Equal(t, 0, elements.Water)
}

func TestBalanceSynthesizer_DominantBody(t *testing.T) {
	synth := NewBalanceSynthesizer()

	t.Run("defaults to sun with no aspects", func(t *testing.T) {
		assert.Equal(t, entities.Sun, synth.DominantBody(nil))
	})

	t.Run("highest aspect-weighted score wins", func(t *testing.T) {
		strong, err := entities.NewAspect(entities.Mars, entities.Venus, entities.Trine, 1, "")
		require.NoError(t, err)
		strong2, err := entities.NewAspect(entities.Mars, entities.Saturn, entities.Square, 0.5, "")
		require.NoError(t, err)
		weak, err := entities.NewAspect(entities.Sun, entities.Moon, entities.Opposition, 7, "")
		require.NoError(t, err)

		// Mars scores 6, Venus and Saturn 3, Sun and Moon 1
		assert.Equal(t, entities.Mars, synth.DominantBody([]entities.Aspect{strong, strong2, weak}))
	})

	t.Run("ties resolve to the first-enumerated body", func(t *testing.T) {
		aspect, err := entities.NewAspect(entities.Neptune, entities.Mercury, entities.Sextile, 1, "")
		require.NoError(t, err)

		// Mercury and Neptune tie; Mercury enumerates first
		assert.Equal(t, entities.Mercury, synth.DominantBody([]entities.Aspect{aspect}))
	})
}

func TestBalanceSynthesizer_LifeThemes(t *testing.T) {
	synth := NewBalanceSynthesizer()

	t.Run("distinct big three yields six themes", func(t *testing.T) {
		themes := synth.LifeThemes(valueobjects.Pisces, valueobjects.Scorpio, valueobjects.Leo, entities.Mars)
		require.Len(t, themes, 6)

		assert.Equal(t, "Spirituality", themes[0])
		assert.Equal(t, "Compassion", themes[1])
		assert.Equal(t, "Intuition", themes[2])
		assert.Equal(t, "Emotionally intense (Scorpio Moon)", themes[3])
		assert.Equal(t, "Projects presence (Leo Rising)", themes[4])
		assert.Equal(t, "Drive", themes[5])
	})

	t.Run("moon and rising matching the sun add nothing", func(t *testing.T) {
		themes := synth.LifeThemes(valueobjects.Aries, valueobjects.Aries, valueobjects.Aries, entities.Sun)
		require.Len(t, themes, 4)
		assert.Equal(t, []string{"Leadership", "Initiative", "Independence", "Vitality"}, themes)
	})

	t.Run("never exceeds eight themes", func(t *testing.T) {
		for _, sun := range valueobjects.AllSigns() {
			themes := synth.LifeThemes(sun, sun.Offset(1), sun.Offset(2), entities.Pluto)
			assert.LessOrEqual(t, len(themes), 8)
		}
	})
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
)

func positionFor(t *testing.T, body entities.Body, degrees float64) entities.BodyPosition {
	t.Helper()
	lon, err := valueobjects.NewLongitude(degrees)
	require.NoError(t, err)
	pos, err := entities.NewBodyPosition(body, lon, false, true)
	require.NoError(t, err)
	return pos
}

func TestAspectEngine_Between_Classification(t *testing.T) {
	tests := []struct {
		name      string
		a, b      float64
		wantKind  entities.AspectKind
		wantOrb   float64
		wantFound bool
	}{
		{name: "opposition with two degree orb", a: 0, b: 182, wantKind: entities.Opposition, wantOrb: 2, wantFound: true},
		{name: "exact conjunction", a: 45, b: 45, wantKind: entities.Conjunction, wantOrb: 0, wantFound: true},
		{name: "trine inside orb", a: 10, b: 127, wantKind: entities.Trine, wantOrb: 3, wantFound: true},
		{name: "sextile at orb edge", a: 0, b: 64, wantKind: entities.Sextile, wantOrb: 4, wantFound: true},
		{name: "quincunx tight orb", a: 0, b: 152, wantKind: entities.Quincunx, wantOrb: 2, wantFound: true},
		{name: "square across the wrap", a: 350, b: 80, wantKind: entities.Square, wantOrb: 0, wantFound: true},
		{name: "no aspect between orbs", a: 0, b: 40, wantFound: false},
		{name: "just outside sextile orb", a: 0, b: 64.5, wantFound: false},
	}

	engine := NewAspectEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := positionFor(t, entities.Sun, tt.a)
			b := positionFor(t, entities.Moon, tt.b)

			aspect, found, err := engine.Between(a, b)
			require.NoError(t, err)
			require.Equal(t, tt.wantFound, found)
			if !found {
				return
			}
			assert.Equal(t, tt.wantKind, aspect.Kind())
			assert.InDelta(t, tt.wantOrb, aspect.Orb(), 1e-9)
		})
	}
}

func TestAspectEngine_Between_Symmetric(t *testing.T) {
	engine := NewAspectEngine(nil)
	a := positionFor(t, entities.Mars, 10)
	b := positionFor(t, entities.Venus, 192)

	forward, foundF, err := engine.Between(a, b)
	require.NoError(t, err)
	backward, foundB, err := engine.Between(b, a)
	require.NoError(t, err)

	require.True(t, foundF)
	require.True(t, foundB)
	assert.Equal(t, forward.Kind(), backward.Kind())
	assert.InDelta(t, forward.Orb(), backward.Orb(), 1e-9)
	assert.Equal(t, forward.Strength(), backward.Strength())
}

func TestAspectEngine_Aspects_AtMostOnePerPair(t *testing.T) {
	engine := NewAspectEngine(nil)
	positions := []entities.BodyPosition{
		positionFor(t, entities.Sun, 0),
		positionFor(t, entities.Moon, 182),
		positionFor(t, entities.Mercury, 60),
		positionFor(t, entities.Venus, 121),
	}

	aspects, err := engine.Aspects(positions)
	require.NoError(t, err)

	type pair struct{ a, b entities.Body }
	seen := make(map[pair]int)
	for _, aspect := range aspects {
		a, b := aspect.BodyA(), aspect.BodyB()
		if b < a {
			a, b = b, a
		}
		seen[pair{a, b}]++
	}
	for p, count := range seen {
		assert.Equal(t, 1, count, "pair %v/%v classified more than once", p.a, p.b)
	}
}

func TestAspectEngine_OrbWithinKindLimit(t *testing.T) {
	engine := NewAspectEngine(nil)
	positions := []entities.BodyPosition{
		positionFor(t, entities.Sun, 3),
		positionFor(t, entities.Moon, 94),
		positionFor(t, entities.Mercury, 178),
		positionFor(t, entities.Venus, 241),
		positionFor(t, entities.Mars, 300),
	}

	aspects, err := engine.Aspects(positions)
	require.NoError(t, err)

	for _, aspect := range aspects {
		angle, ok := aspect.Kind().Angle()
		require.True(t, ok)
		assert.LessOrEqual(t, aspect.Orb(), angle.MaxOrb,
			"%s orb exceeds its limit", aspect.Kind())
	}
}

func TestAspectEngine_OrbOverrides(t *testing.T) {
	// Tighten the conjunction orb so a 5 degree separation stops
	// qualifying.
	engine := NewAspectEngine(&AspectEngineConfig{
		OrbOverrides: map[entities.AspectKind]float64{entities.Conjunction: 3},
	})

	a := positionFor(t, entities.Sun, 0)
	b := positionFor(t, entities.Moon, 5)

	_, found, err := engine.Between(a, b)
	require.NoError(t, err)
	assert.False(t, found)

	engine.UpdateOrbOverrides(nil)
	_, found, err = engine.Between(a, b)
	require.NoError(t, err)
	assert.True(t, found, "default orb admits five degrees")
}

func TestAspectEngine_WideOverrideCannotWidenWindow(t *testing.T) {
	// A 10 degree trine override must cap at the canonical 6: a pair
	// nine degrees off the exact angle stays unaspected, and admitted
	// pairs always report their true deviation.
	engine := NewAspectEngine(&AspectEngineConfig{
		OrbOverrides: map[entities.AspectKind]float64{entities.Trine: 10},
	})

	a := positionFor(t, entities.Sun, 0)
	beyond := positionFor(t, entities.Moon, 129)

	_, found, err := engine.Between(a, beyond)
	require.NoError(t, err)
	assert.False(t, found, "nine degrees is outside the canonical trine orb")

	within := positionFor(t, entities.Moon, 125)
	aspect, found, err := engine.Between(a, within)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, entities.Trine, aspect.Kind())
	assert.InDelta(t, 5, aspect.Orb(), 1e-9, "the recorded orb is the actual deviation")
	assert.Equal(t, entities.StrengthWeak, aspect.Strength())
}

func TestAspectEngine_InterpretationAttached(t *testing.T) {
	engine := NewAspectEngine(nil)

	aspect, found, err := engine.Between(
		positionFor(t, entities.Sun, 0),
		positionFor(t, entities.Moon, 1),
	)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, entities.Conjunction, aspect.Kind())
	assert.NotEmpty(t, aspect.Interpretation())
}

package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrengthForOrb(t *testing.T) {
	tests := []struct {
		orb  float64
		want AspectStrength
	}{
		{orb: 0, want: StrengthStrong},
		{orb: 2, want: StrengthStrong},
		{orb: 2.001, want: StrengthModerate},
		{orb: 4, want: StrengthModerate},
		{orb: 4.001, want: StrengthWeak},
		{orb: 7.9, want: StrengthWeak},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StrengthForOrb(tt.orb), "orb %v", tt.orb)
	}
}

func TestNewAspect(t *testing.T) {
	tests := []struct {
		name    string
		bodyA   Body
		bodyB   Body
		kind    AspectKind
		orb     float64
		wantErr bool
	}{
		{name: "valid opposition", bodyA: Sun, bodyB: Moon, kind: Opposition, orb: 2, wantErr: false},
		{name: "orb at kind maximum", bodyA: Sun, bodyB: Mars, kind: Conjunction, orb: 8, wantErr: false},
		{name: "orb beyond kind maximum", bodyA: Sun, bodyB: Mars, kind: Quincunx, orb: 3.5, wantErr: true},
		{name: "negative orb", bodyA: Sun, bodyB: Mars, kind: Trine, orb: -1, wantErr: true},
		{name: "same body twice", bodyA: Venus, bodyB: Venus, kind: Conjunction, orb: 0, wantErr: true},
		{name: "unknown kind", bodyA: Sun, bodyB: Moon, kind: AspectKind("novile"), orb: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aspect, err := NewAspect(tt.bodyA, tt.bodyB, tt.kind, tt.orb, "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, aspect.Kind())
			assert.Equal(t, tt.orb, aspect.Orb())
		})
	}
}

func TestAspect_ExactAndStrength(t *testing.T) {
	exact, err := NewAspect(Sun, Moon, Trine, 0.5, "")
	require.NoError(t, err)
	assert.True(t, exact.Exact())
	assert.Equal(t, StrengthStrong, exact.Strength())
	assert.Equal(t, 3, exact.StrengthScore())

	loose, err := NewAspect(Sun, Moon, Opposition, 5, "")
	require.NoError(t, err)
	assert.False(t, loose.Exact())
	assert.Equal(t, StrengthWeak, loose.Strength())
	assert.Equal(t, 1, loose.StrengthScore())
}

func TestAspect_Involves(t *testing.T) {
	aspect, err := NewAspect(Mars, Saturn, Square, 1, "")
	require.NoError(t, err)

	assert.True(t, aspect.Involves(Mars))
	assert.True(t, aspect.Involves(Saturn))
	assert.False(t, aspect.Involves(Sun))
}

func TestAspectAngles_Table(t *testing.T) {
	angles := AspectAngles()
	require.Len(t, angles, 6)

	wantOrbs := map[AspectKind]float64{
		Conjunction: 8, Sextile: 4, Square: 6,
		Trine: 6, Quincunx: 3, Opposition: 8,
	}
	for _, angle := range angles {
		assert.Equal(t, wantOrbs[angle.Kind], angle.MaxOrb, "%s orb", angle.Kind)
	}

	// Mutating the returned slice must not touch the table
	angles[0].MaxOrb = 99
	fresh := AspectAngles()
	assert.Equal(t, 8.0, fresh[0].MaxOrb)
}

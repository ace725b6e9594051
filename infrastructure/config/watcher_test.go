package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTuningFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "engine-tuning.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const baseTuning = `{
	"features": {"usePreciseEphemeris": false},
	"orbs": {"conjunction": 8, "trine": 6},
	"harmonic": {"matchTolerance": 0.05},
	"metadata": {"version": "1.2.0", "updatedBy": "ops"}
}`

func TestNewConfigWatcher_LoadsInitialConfig(t *testing.T) {
	path := writeTuningFile(t, t.TempDir(), baseTuning)

	w, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	current := w.GetCurrent()
	assert.Equal(t, "1.2.0", current.Metadata.Version)
	assert.False(t, w.GetFeatures().UsePreciseEphemeris)

	orbs := w.GetOrbs()
	assert.Equal(t, 8.0, orbs.Conjunction)
	assert.Equal(t, 6.0, orbs.Trine)
	assert.Zero(t, orbs.Sextile, "unset overrides stay zero and keep engine defaults")
	assert.InDelta(t, 0.05, current.Harmonic.MatchTolerance, 1e-9)
}

func TestNewConfigWatcher_MissingFile(t *testing.T) {
	_, err := NewConfigWatcher(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())
	assert.Error(t, err)
}

func TestNewConfigWatcher_DefaultsVersion(t *testing.T) {
	path := writeTuningFile(t, t.TempDir(), `{"orbs": {}}`)

	w, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	assert.Equal(t, "1.0.0", w.GetCurrent().Metadata.Version)
}

func TestConfigWatcher_ReloadNotifiesListeners(t *testing.T) {
	dir := t.TempDir()
	path := writeTuningFile(t, dir, baseTuning)

	w, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	updated := make(chan *DynamicConfig, 1)
	w.OnChange(func(cfg *DynamicConfig) {
		select {
		case updated <- cfg:
		default:
		}
	})
	w.Start()

	writeTuningFile(t, dir, `{
		"features": {"usePreciseEphemeris": true},
		"orbs": {"conjunction": 4},
		"harmonic": {"matchTolerance": 0.1},
		"metadata": {"version": "1.3.0"}
	}`)

	select {
	case cfg := <-updated:
		assert.True(t, cfg.Features.UsePreciseEphemeris)
		assert.Equal(t, 4.0, cfg.Orbs.Conjunction)
		assert.Equal(t, "1.3.0", cfg.Metadata.Version)
	case <-time.After(3 * time.Second):
		t.Fatal("config change was not observed")
	}

	assert.True(t, w.GetFeatures().UsePreciseEphemeris)
}

func TestConfigWatcher_OnChangeAfterStart(t *testing.T) {
	dir := t.TempDir()
	path := writeTuningFile(t, dir, baseTuning)

	w, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()
	w.Start()

	// Handlers registered after the watch loop is running must still be
	// notified, and registration must be safe against a concurrent reload.
	notified := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			w.OnChange(func(*DynamicConfig) {})
		}
	}()
	w.OnChange(func(*DynamicConfig) {
		select {
		case notified <- struct{}{}:
		default:
		}
	})
	<-done

	writeTuningFile(t, dir, `{"metadata": {"version": "1.4.0"}}`)

	select {
	case <-notified:
	case <-time.After(3 * time.Second):
		t.Fatal("handler registered after Start was not notified")
	}
}

func TestConfigWatcher_InvalidReloadKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	path := writeTuningFile(t, dir, baseTuning)

	w, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()
	w.Start()

	// Out-of-range orb must be rejected on reload
	writeTuningFile(t, dir, `{"orbs": {"conjunction": 45}}`)
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, 8.0, w.GetOrbs().Conjunction)
	assert.Equal(t, "1.2.0", w.GetCurrent().Metadata.Version)
}

func TestValidateConfig(t *testing.T) {
	path := writeTuningFile(t, t.TempDir(), baseTuning)
	w, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Stop()

	tests := []struct {
		name    string
		config  DynamicConfig
		wantErr bool
	}{
		{
			name:   "zero config is valid",
			config: DynamicConfig{},
		},
		{
			name:   "orbs at the upper bound",
			config: DynamicConfig{Orbs: Orbs{Conjunction: 12, Opposition: 12}},
		},
		{
			name:    "orb above twelve degrees",
			config:  DynamicConfig{Orbs: Orbs{Square: 12.5}},
			wantErr: true,
		},
		{
			name:    "negative orb",
			config:  DynamicConfig{Orbs: Orbs{Trine: -1}},
			wantErr: true,
		},
		{
			name:    "tolerance above half",
			config:  DynamicConfig{Harmonic: HarmonicTuning{MatchTolerance: 0.6}},
			wantErr: true,
		},
		{
			name:   "tolerance at the bound",
			config: DynamicConfig{Harmonic: HarmonicTuning{MatchTolerance: 0.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.validateConfig(&tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

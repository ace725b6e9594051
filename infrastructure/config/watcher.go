package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ConfigWatcher watches the engine tuning file for changes
type ConfigWatcher struct {
	path        string
	watcher     *fsnotify.Watcher
	current     *DynamicConfig
	mu          sync.RWMutex
	onChange    []func(*DynamicConfig)
	logger      *zap.Logger
	stopCh      chan struct{}
	lastModTime time.Time
}

// DynamicConfig represents runtime-changeable engine tuning
type DynamicConfig struct {
	Features Features       `json:"features"`
	Orbs     Orbs           `json:"orbs"`
	Harmonic HarmonicTuning `json:"harmonic"`
	Metadata ConfigMetadata `json:"metadata"`
}

// Features holds runtime feature flags
type Features struct {
	// UsePreciseEphemeris toggles the external precision path without
	// a restart; the static config must still supply its command
	UsePreciseEphemeris bool `json:"usePreciseEphemeris"`
}

// Orbs holds per-aspect-kind orb overrides in degrees. Zero values keep
// the engine defaults.
type Orbs struct {
	Conjunction float64 `json:"conjunction"`
	Sextile     float64 `json:"sextile"`
	Square      float64 `json:"square"`
	Trine       float64 `json:"trine"`
	Quincunx    float64 `json:"quincunx"`
	Opposition  float64 `json:"opposition"`
}

// HarmonicTuning holds harmonic correlation tuning
type HarmonicTuning struct {
	// MatchTolerance is the match window as a fraction of the aspect
	// ratio; zero keeps the engine default
	MatchTolerance float64 `json:"matchTolerance"`
}

// ConfigMetadata holds metadata about the configuration
type ConfigMetadata struct {
	Version   string    `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// NewConfigWatcher creates a new configuration watcher
func NewConfigWatcher(configPath string, logger *zap.Logger) (*ConfigWatcher, error) {
	// Load initial configuration
	config, err := loadConfigFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Add the config file to watcher
	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}

	// Also watch the directory for atomic saves (rename operations)
	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		logger.Warn("Failed to watch config directory", zap.Error(err))
	}

	cw := &ConfigWatcher{
		path:        configPath,
		watcher:     watcher,
		current:     config,
		onChange:    make([]func(*DynamicConfig), 0),
		logger:      logger,
		stopCh:      make(chan struct{}),
		lastModTime: time.Now(),
	}

	return cw, nil
}

// Start begins watching for configuration changes
func (w *ConfigWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("Configuration watcher started", zap.String("path", w.path))
}

// Stop stops watching for configuration changes
func (w *ConfigWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("Configuration watcher stopped")
}

// watchLoop is the main loop that watches for file changes
func (w *ConfigWatcher) watchLoop() {
	// Debounce timer to avoid multiple reloads
	var debounceTimer *time.Timer
	debounceDuration := 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only handle write and create events for our config file
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Reset debounce timer
				if debounceTimer != nil {
					debounceTimer.Stop()
				}

				debounceTimer = time.AfterFunc(debounceDuration, func() {
					w.handleConfigChange()
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

// handleConfigChange handles configuration file changes
func (w *ConfigWatcher) handleConfigChange() {
	w.logger.Info("Configuration file changed, reloading", zap.String("path", w.path))

	// Load new configuration
	newConfig, err := loadConfigFromFile(w.path)
	if err != nil {
		w.logger.Error("Failed to reload configuration", zap.Error(err))
		return
	}

	// Validate configuration
	if err := w.validateConfig(newConfig); err != nil {
		w.logger.Error("Invalid configuration, keeping current", zap.Error(err))
		return
	}

	// Store old config for comparison, and snapshot the handlers:
	// OnChange may append concurrently with a reload
	w.mu.Lock()
	oldConfig := w.current
	w.current = newConfig
	handlers := make([]func(*DynamicConfig), len(w.onChange))
	copy(handlers, w.onChange)
	w.mu.Unlock()

	// Log changes
	w.logConfigChanges(oldConfig, newConfig)

	// Notify listeners
	for _, handler := range handlers {
		go handler(newConfig)
	}

	w.logger.Info("Configuration reloaded successfully",
		zap.String("version", newConfig.Metadata.Version),
	)
}

// validateConfig validates the configuration
func (w *ConfigWatcher) validateConfig(config *DynamicConfig) error {
	orbs := []struct {
		name  string
		value float64
	}{
		{"conjunction", config.Orbs.Conjunction},
		{"sextile", config.Orbs.Sextile},
		{"square", config.Orbs.Square},
		{"trine", config.Orbs.Trine},
		{"quincunx", config.Orbs.Quincunx},
		{"opposition", config.Orbs.Opposition},
	}
	for _, orb := range orbs {
		if orb.value < 0 || orb.value > 12 {
			return fmt.Errorf("orb override %s must be between 0 and 12 degrees", orb.name)
		}
	}

	if config.Harmonic.MatchTolerance < 0 || config.Harmonic.MatchTolerance > 0.5 {
		return fmt.Errorf("matchTolerance must be between 0 and 0.5")
	}

	return nil
}

// logConfigChanges logs the differences between old and new config
func (w *ConfigWatcher) logConfigChanges(oldConfig, newConfig *DynamicConfig) {
	changes := []string{}

	if oldConfig.Features.UsePreciseEphemeris != newConfig.Features.UsePreciseEphemeris {
		changes = append(changes, fmt.Sprintf("UsePreciseEphemeris: %v -> %v",
			oldConfig.Features.UsePreciseEphemeris, newConfig.Features.UsePreciseEphemeris))
	}

	if oldConfig.Harmonic.MatchTolerance != newConfig.Harmonic.MatchTolerance {
		changes = append(changes, fmt.Sprintf("MatchTolerance: %v -> %v",
			oldConfig.Harmonic.MatchTolerance, newConfig.Harmonic.MatchTolerance))
	}

	if oldConfig.Orbs != newConfig.Orbs {
		changes = append(changes, "Orb overrides updated")
	}

	if len(changes) > 0 {
		w.logger.Info("Configuration changes detected",
			zap.Strings("changes", changes),
		)
	}
}

// OnChange registers a callback for configuration changes
func (w *ConfigWatcher) OnChange(handler func(*DynamicConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// GetCurrent returns the current configuration
func (w *ConfigWatcher) GetCurrent() *DynamicConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// GetFeatures returns current feature flags
func (w *ConfigWatcher) GetFeatures() Features {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Features
}

// GetOrbs returns current orb overrides
func (w *ConfigWatcher) GetOrbs() Orbs {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Orbs
}

// loadConfigFromFile loads configuration from a JSON file
func loadConfigFromFile(path string) (*DynamicConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config DynamicConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Set metadata if not present
	if config.Metadata.Version == "" {
		config.Metadata.Version = "1.0.0"
	}
	config.Metadata.UpdatedAt = time.Now()

	return &config, nil
}

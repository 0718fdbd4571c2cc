// ABOUTME: Configuration management for the review editor
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// ReviewConfig holds all tunable review editor parameters
type ReviewConfig struct {
	// Boundary editing
	NudgeStep   float64 `toml:"nudge_step"`    // Seconds moved per nudge
	MinAdLength float64 `toml:"min_ad_length"` // Minimum gap kept between start and end
	JumpSlack   float64 `toml:"jump_slack"`    // How close a jump time must land to a candidate

	// Touch gesture thresholds
	TapMaxMS       int     `toml:"tap_max_ms"`      // Press shorter than this counts as a tap
	DoubleTapMS    int     `toml:"double_tap_ms"`   // Second tap within this window is a double tap
	LongPressMS    int     `toml:"long_press_ms"`   // Press held this long fires a long press
	SwipeThreshold float64 `toml:"swipe_threshold"` // Horizontal travel in pixels that counts as a swipe
	PixelsPerCell  float64 `toml:"pixels_per_cell"` // Approximate terminal cell width used to scale swipe travel

	// Save lifecycle
	AckWindowMS     int    `toml:"ack_window_ms"` // How long success/error stays on screen before reset
	SubmitTimeoutMS int    `toml:"submit_timeout_ms"`
	APIBaseURL      string `toml:"api_base_url"`
	JournalPath     string `toml:"journal_path"` // Empty means <config dir>/journal.sqlite
}

// DefaultConfig returns the default review configuration
// Gesture timings match the web editor this tool replaced
func DefaultConfig() ReviewConfig {
	return ReviewConfig{
		NudgeStep:       0.5,
		MinAdLength:     1.0,
		JumpSlack:       0.5,
		TapMaxMS:        500,
		DoubleTapMS:     300,
		LongPressMS:     500,
		SwipeThreshold:  50,
		PixelsPerCell:   10,
		AckWindowMS:     2000,
		SubmitTimeoutMS: 10000,
		APIBaseURL:      "http://localhost:8080",
		JournalPath:     "",
	}
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/ad-review/config.toml
func GetConfigPath() string {
	// First try current directory
	if _, err := os.Stat("./ad-review.toml"); err == nil {
		return "./ad-review.toml"
	}

	// Then try ~/.config/ad-review/config.toml
	home, err := os.UserHomeDir()
	if err != nil {
		return "./ad-review.toml"
	}

	return filepath.Join(home, ".config", "ad-review", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist or fails to load, returns default config
func LoadConfig(path string) (ReviewConfig, error) {
	// Try to read the file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse TOML
	var config ReviewConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config ReviewConfig) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	// Encode config as TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// SharedConfig provides thread-safe access to a ReviewConfig that may be
// swapped out while the TUI is running
type SharedConfig struct {
	mu     sync.RWMutex
	config ReviewConfig
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SharedConfig) Get() ReviewConfig {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// Update replaces the config (thread-safe write)
func (sc *SharedConfig) Update(config ReviewConfig) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = config
}

package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/pipeline"
)

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultMaterial         string  `json:"default_material"`
	DefaultDialect          string  `json:"default_dialect"`
	DefaultProfileTolerance float64 `json:"default_profile_tolerance"`
	DefaultClearance        float64 `json:"default_clearance"`
	DefaultSafetyHeight     float64 `json:"default_safety_height"`

	// UI / workflow preferences
	RecentJobs []string `json:"recent_jobs"`
}

const maxRecentJobs = 10

// DefaultAppConfig returns an AppConfig populated with defaults matching
// pipeline.DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := pipeline.DefaultSettings()
	return AppConfig{
		DefaultMaterial:         defaults.Material,
		DefaultDialect:          "Generic",
		DefaultProfileTolerance: defaults.ProfileTolerance,
		DefaultClearance:        defaults.Clearance,
		DefaultSafetyHeight:     defaults.SafetyHeight,
		RecentJobs:              []string{},
	}
}

// ApplyToSettings copies the saved defaults into a pipeline Settings struct.
// Used when creating a new job so it inherits the user's preferences.
func (c AppConfig) ApplyToSettings(s *pipeline.Settings) {
	s.ProfileTolerance = c.DefaultProfileTolerance
	s.Clearance = c.DefaultClearance
	s.SafetyHeight = c.DefaultSafetyHeight
}

// AddRecentJob records a job path at the front of the recent list,
// removing duplicates and capping the list length.
func (c *AppConfig) AddRecentJob(path string) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path && len(recent) < maxRecentJobs {
			recent = append(recent, p)
		}
	}
	c.RecentJobs = recent
}

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.intuicam/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".intuicam")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path and merges it over
// the defaults: keys absent from the file keep their default values, and a
// missing file yields the full defaults with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	config := DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return AppConfig{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	// Ensure RecentJobs is never nil
	if config.RecentJobs == nil {
		config.RecentJobs = []string{}
	}
	return config, nil
}

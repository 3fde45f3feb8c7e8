package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/photodrop/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerURL     string         `json:"server_url"`
	DBPath        string         `json:"db_path"`
	SyncDelay     timex.Duration `json:"sync_delay"`
	LandingPath   string         `json:"landing_path"`
	PublicBaseURL string         `json:"public_base_url"`
	HTTPTimeout   timex.Duration `json:"http_timeout"`
	LogLevel      string         `json:"log_level"`
}

// parseJson overlays cfg with the values found in the JSON file at path.
// Keys absent from the file keep their current value.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.SyncDelay.Duration != 0 {
		cfg.SyncDelay = jc.SyncDelay.Duration
	}
	if jc.LandingPath != "" {
		cfg.LandingPath = jc.LandingPath
	}
	if jc.PublicBaseURL != "" {
		cfg.PublicBaseURL = jc.PublicBaseURL
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}

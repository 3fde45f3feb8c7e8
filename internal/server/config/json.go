package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/photodrop/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr                     string         `json:"http_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	StorageBackend               string         `json:"storage_backend"`
	StorageAccessKey             string         `json:"storage_access_key"`
	StorageSecretKey             string         `json:"storage_secret_key"`
	StorageBucket                string         `json:"storage_bucket"`
	StorageRegion                string         `json:"storage_region"`
	StorageEndpoint              string         `json:"storage_endpoint"`
	GCSCredentialsFile           string         `json:"gcs_credentials_file"`
	GCSServiceAccount            string         `json:"gcs_service_account"`
	PresignTTL                   timex.Duration `json:"presign_ttl"`
	PublicBaseURL                string         `json:"public_base_url"`
	DefaultExtension             string         `json:"default_ext"`
	AllowedExtensions            []string       `json:"allowed_exts"`
	LogLevel                     string         `json:"log_level"`
}

// parseJson loads the JSON file at path into config. An empty path means
// there is nothing to load. Keys missing from the file keep their current
// value.
func parseJson(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.StorageAccessKey, c.StorageAccessKey)
	setString(&config.StorageSecretKey, c.StorageSecretKey)
	setString(&config.StorageBucket, c.StorageBucket)
	setString(&config.StorageRegion, c.StorageRegion)
	setString(&config.StorageEndpoint, c.StorageEndpoint)
	setString(&config.GCSCredentialsFile, c.GCSCredentialsFile)
	setString(&config.GCSServiceAccount, c.GCSServiceAccount)
	setDuration(&config.PresignTTL, c.PresignTTL)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.DefaultExtension, c.DefaultExtension)
	if len(c.AllowedExtensions) > 0 {
		config.AllowedExtensions = c.AllowedExtensions
	}
	setString(&config.LogLevel, c.LogLevel)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("PHOTODROP_STORAGE_BACKEND", "gcs")
	t.Setenv("PHOTODROP_PRESIGN_TTL", "5m")
	t.Setenv("PHOTODROP_ALLOWED_EXTS", "png,jpg")
	t.Setenv("PHOTODROP_GCS_SERVICE_ACCOUNT", "signer@project.iam.gserviceaccount.com")

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseEnv(&c))

	assert.Equal(t, BackendGCS, c.StorageBackend)
	assert.Equal(t, 5*time.Minute, c.PresignTTL)
	assert.Equal(t, []string{"png", "jpg"}, c.AllowedExtensions)
	assert.Equal(t, "signer@project.iam.gserviceaccount.com", c.GCSServiceAccount)

	// untouched
	assert.Equal(t, "photos", c.StorageBucket)
	assert.Equal(t, ":8080", c.HTTPAddr)
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("PHOTODROP_PRESIGN_TTL", "soon")

	var c Config
	c.LoadDefaults()
	assert.Error(t, parseEnv(&c))
}

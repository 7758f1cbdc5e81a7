package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFullEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GPN_ENDPOINT", "https://backend.gestpornub.example/v1")
	t.Setenv("GPN_PLATFORM", "com.gestpornub.app")
	t.Setenv("GPN_PROJECT_ID", "proj-1")
	t.Setenv("GPN_STORAGE_ID", "media")
	t.Setenv("GPN_DATABASE_ID", "app")
	t.Setenv("GPN_USER_COLLECTION_ID", "users")
	t.Setenv("GPN_VIDEO_COLLECTION_ID", "videos")
}

func TestLoadConfig(t *testing.T) {
	setFullEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://backend.gestpornub.example/v1", cfg.Endpoint)
	assert.Equal(t, "com.gestpornub.app", cfg.Platform)
	assert.Equal(t, "proj-1", cfg.ProjectID)
	assert.Equal(t, "media", cfg.StorageID)
	assert.Equal(t, "app", cfg.DatabaseID)
	assert.Equal(t, "users", cfg.UserCollectionID)
	assert.Equal(t, "videos", cfg.VideoCollectionID)
}

func TestLoadConfigMissingKeyFails(t *testing.T) {
	keys := []string{
		"GPN_ENDPOINT",
		"GPN_PLATFORM",
		"GPN_PROJECT_ID",
		"GPN_STORAGE_ID",
		"GPN_DATABASE_ID",
		"GPN_USER_COLLECTION_ID",
		"GPN_VIDEO_COLLECTION_ID",
	}

	for _, missing := range keys {
		t.Run(missing, func(t *testing.T) {
			setFullEnv(t)
			t.Setenv(missing, "")

			cfg, err := LoadConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

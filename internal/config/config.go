package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config identifies the remote backend project and the collections the app
// reads and writes. It is assembled once at startup and never mutated.
type Config struct {
	Endpoint string
	Platform string

	ProjectID string

	StorageID         string
	DatabaseID        string
	UserCollectionID  string
	VideoCollectionID string
}

// LoadConfig reads configuration from environment variables, with a .env file
// as fallback for local development. Every key is required: a missing one is
// a fatal misconfiguration, not something the client can limp along without.
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	cfg := &Config{
		Endpoint:          os.Getenv("GPN_ENDPOINT"),
		Platform:          os.Getenv("GPN_PLATFORM"),
		ProjectID:         os.Getenv("GPN_PROJECT_ID"),
		StorageID:         os.Getenv("GPN_STORAGE_ID"),
		DatabaseID:        os.Getenv("GPN_DATABASE_ID"),
		UserCollectionID:  os.Getenv("GPN_USER_COLLECTION_ID"),
		VideoCollectionID: os.Getenv("GPN_VIDEO_COLLECTION_ID"),
	}

	required := map[string]string{
		"GPN_ENDPOINT":            cfg.Endpoint,
		"GPN_PLATFORM":            cfg.Platform,
		"GPN_PROJECT_ID":          cfg.ProjectID,
		"GPN_STORAGE_ID":          cfg.StorageID,
		"GPN_DATABASE_ID":         cfg.DatabaseID,
		"GPN_USER_COLLECTION_ID":  cfg.UserCollectionID,
		"GPN_VIDEO_COLLECTION_ID": cfg.VideoCollectionID,
	}
	for key, value := range required {
		if value == "" {
			return nil, fmt.Errorf("missing required configuration: %s", key)
		}
	}

	return cfg, nil
}

package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gestpornub/client-go/internal/model"
)

// sessionFile persists the active session between CLI invocations. Only the
// secret and enough metadata to know when to stop trusting it.
type sessionFile struct {
	SessionID string    `json:"session_id"`
	Secret    string    `json:"secret"`
	ExpiresAt time.Time `json:"expires_at"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "gestpornub")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gestpornub")
}

func sessionPath() string { return filepath.Join(cfgDir(), "session.json") }

func saveSession(session *model.Session) error {
	_ = os.MkdirAll(cfgDir(), 0o700)
	f, err := os.OpenFile(sessionPath(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	expiresAt := session.ExpiresAt
	if exp, ok := secretExpiry(session.Secret); ok {
		expiresAt = exp
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(sessionFile{
		SessionID: session.ID,
		Secret:    session.Secret,
		ExpiresAt: expiresAt,
	})
}

func loadSession() (*sessionFile, error) {
	b, err := os.ReadFile(sessionPath())
	if err != nil {
		return nil, err
	}
	var sf sessionFile
	if err := json.Unmarshal(b, &sf); err != nil {
		return nil, err
	}
	if sf.Secret == "" || (!sf.ExpiresAt.IsZero() && time.Now().After(sf.ExpiresAt)) {
		return nil, errors.New("no valid session (login required)")
	}
	return &sf, nil
}

func clearSession() error {
	err := os.Remove(sessionPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// secretExpiry reads the expiry claim out of a token-shaped secret without
// verifying it; the CLI never knows the platform's signing key.
func secretExpiry(secret string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(secret, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

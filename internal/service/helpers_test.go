package service

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gestpornub/client-go/internal/backend"
	"github.com/gestpornub/client-go/internal/backendtest"
	"github.com/gestpornub/client-go/internal/config"
	"github.com/gestpornub/client-go/internal/model"
)

// testStack wires the facade against an in-memory platform over real HTTP.
type testStack struct {
	fake   *backendtest.Server
	server *httptest.Server
	cfg    *config.Config
	client *backend.Client
	auth   *AuthService
	media  *MediaService
	posts  *PostService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	fake := backendtest.NewServer()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Endpoint:          server.URL,
		Platform:          "com.gestpornub.test",
		ProjectID:         "test-project",
		StorageID:         "media",
		DatabaseID:        "app",
		UserCollectionID:  "users",
		VideoCollectionID: "videos",
	}

	client := backend.NewClient(cfg, zap.NewNop())
	media := NewMediaService(client, cfg)

	return &testStack{
		fake:   fake,
		server: server,
		cfg:    cfg,
		client: client,
		auth:   NewAuthService(client, cfg, zap.NewNop()),
		media:  media,
		posts:  NewPostService(client, cfg, media),
	}
}

// signUp registers and signs in a throwaway user so authenticated calls work.
func (ts *testStack) signUp(t *testing.T, email, password, username string) *model.User {
	t.Helper()
	user, err := ts.auth.CreateUser(context.Background(), email, password, username)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func requireBackendError(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, model.IsBackendError(err), "expected a BackendError, got %T: %v", err, err)
	require.Equal(t, message, err.Error())
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestpornub/client-go/internal/model"
)

func TestCreateUser(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()

	user, err := ts.auth.CreateUser(ctx, "a@x.com", "pw123456", "alice")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.AccountID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.AvatarURL, "avatar URL must be derived at sign-up")
	assert.Contains(t, user.AvatarURL, "/avatars/initials")

	// Sign-up must leave the new account signed in.
	assert.NotEmpty(t, ts.client.Session(), "sign-up must install an active session")
	assert.Equal(t, 1, ts.fake.AccountCount())
	assert.Equal(t, 1, ts.fake.SessionCount())
	assert.Equal(t, 1, ts.fake.DocumentCount(ts.cfg.DatabaseID, ts.cfg.UserCollectionID))

	// The avatar URL is deterministic for a given username.
	again := ts.signUp(t, "b@x.com", "pw123456", "alice")
	assert.Equal(t, user.AvatarURL, again.AvatarURL)
}

func TestCreateUserRepeatedCallIsNotDeduplicated(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()

	first, err := ts.auth.CreateUser(ctx, "a@x.com", "pw123456", "alice")
	require.NoError(t, err)
	second, err := ts.auth.CreateUser(ctx, "a@x.com", "pw123456", "alice")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.AccountID, second.AccountID)
	assert.Equal(t, 2, ts.fake.AccountCount())
	assert.Equal(t, 2, ts.fake.DocumentCount(ts.cfg.DatabaseID, ts.cfg.UserCollectionID))
}

func TestCreateUserCollapsesPartialFailure(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()

	// Account creation and sign-in succeed, the profile write does not; the
	// caller still sees the single fixed message and never a partial user.
	ts.fake.FailDocumentWrites(true)

	user, err := ts.auth.CreateUser(ctx, "a@x.com", "pw123456", "alice")
	require.Nil(t, user)
	requireBackendError(t, err, model.MsgAccountCreateFailed)
	assert.Equal(t, 0, ts.fake.DocumentCount(ts.cfg.DatabaseID, ts.cfg.UserCollectionID))
}

func TestCreateUserTransportFailure(t *testing.T) {
	ts := newTestStack(t)
	ts.server.Close()

	user, err := ts.auth.CreateUser(context.Background(), "a@x.com", "pw123456", "alice")
	require.Nil(t, user)
	requireBackendError(t, err, model.MsgAccountCreateFailed)
}

func TestSignIn(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	ts.signUp(t, "a@x.com", "pw123456", "alice")
	require.NoError(t, ts.auth.SignOut(ctx))

	session, err := ts.auth.SignIn(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.Secret)
	assert.Equal(t, session.Secret, ts.client.Session())
}

func TestSignInBadCredentials(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	ts.signUp(t, "a@x.com", "pw123456", "alice")

	session, err := ts.auth.SignIn(ctx, "a@x.com", "wrong-password")
	require.Nil(t, session)
	requireBackendError(t, err, model.MsgSignInFailed)
}

func TestAccountWithoutSession(t *testing.T) {
	ts := newTestStack(t)

	account, err := ts.auth.Account(context.Background())
	require.Nil(t, account)
	requireBackendError(t, err, model.MsgAccountFetchFailed)
}

func TestCurrentUserNeverErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		ts := newTestStack(t)
		user, err := ts.auth.CurrentUser(ctx)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("session without profile document", func(t *testing.T) {
		ts := newTestStack(t)
		// Create the account and session but lose the profile write.
		ts.fake.FailDocumentWrites(true)
		_, _ = ts.auth.CreateUser(ctx, "a@x.com", "pw123456", "alice")
		ts.fake.FailDocumentWrites(false)
		require.NotEmpty(t, ts.client.Session())

		user, err := ts.auth.CurrentUser(ctx)
		assert.NoError(t, err, "document absence is silent, not an error")
		assert.Nil(t, user)
	})

	t.Run("signed in", func(t *testing.T) {
		ts := newTestStack(t)
		created := ts.signUp(t, "a@x.com", "pw123456", "alice")

		user, err := ts.auth.CurrentUser(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, created.AccountID, user.AccountID)
	})

	t.Run("transport failure", func(t *testing.T) {
		ts := newTestStack(t)
		ts.server.Close()
		user, err := ts.auth.CurrentUser(ctx)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestSignOut(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	ts.signUp(t, "a@x.com", "pw123456", "alice")
	require.Equal(t, 1, ts.fake.SessionCount())

	require.NoError(t, ts.auth.SignOut(ctx))
	assert.Equal(t, 0, ts.fake.SessionCount())
	assert.Empty(t, ts.client.Session())

	// A second sign-out has no session to delete.
	err := ts.auth.SignOut(ctx)
	requireBackendError(t, err, model.MsgSignOutFailed)
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gestpornub/client-go/internal/backend"
	"github.com/gestpornub/client-go/internal/config"
	"github.com/gestpornub/client-go/internal/model"
)

// AuthService is the account and session side of the remote-data facade. It
// translates sign-up, sign-in, and profile lookups into platform calls and
// collapses every failure into a fixed BackendError message, so screens can
// show the message as-is without classifying anything.
type AuthService struct {
	backend *backend.Client
	cfg     *config.Config
	logger  *zap.Logger
}

func NewAuthService(client *backend.Client, cfg *config.Config, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		backend: client,
		cfg:     cfg,
		logger:  logger,
	}
}

// userDocument is the payload written to the user collection on sign-up.
type userDocument struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// userList is the envelope user-collection listings arrive in.
type userList struct {
	Total     int          `json:"total"`
	Documents []model.User `json:"documents"`
}

// CreateUser registers an account, derives an initials avatar URL, signs the
// new account in, and writes the profile document. The sign-in is a required
// side effect: after a successful CreateUser the new account is also the
// active session. Every failure surfaces as the same BackendError, so a
// caller cannot tell which step broke.
func (s *AuthService) CreateUser(ctx context.Context, email, password, username string) (*model.User, error) {
	account, err := s.backend.Account.Create(ctx, email, password, username)
	if err != nil || account == nil || account.ID == "" {
		return nil, model.NewBackendError(model.MsgAccountCreateFailed)
	}

	// Pure URL derivation; the avatar image renders when the URL is fetched.
	avatarURL := s.backend.Avatars.InitialsURL(username)

	if _, err := s.SignIn(ctx, email, password); err != nil {
		return nil, model.NewBackendError(model.MsgAccountCreateFailed)
	}

	doc := userDocument{
		AccountID: account.ID,
		Email:     email,
		Username:  username,
		AvatarURL: avatarURL,
	}

	var user model.User
	err = s.backend.Databases.CreateDocument(ctx, s.cfg.DatabaseID, s.cfg.UserCollectionID, doc, &user)
	if err != nil {
		return nil, model.NewBackendError(model.MsgAccountCreateFailed)
	}
	return &user, nil
}

// SignIn creates an email/password session and installs its secret on the
// shared client. Bad credentials, network failures, and conflicts are
// indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	session, err := s.backend.Account.CreateEmailSession(ctx, email, password)
	if err != nil {
		return nil, model.NewBackendError(model.MsgSignInFailed)
	}

	s.backend.SetSession(session.Secret)
	return session, nil
}

// Account fetches the account bound to the current session.
func (s *AuthService) Account(ctx context.Context) (*model.Account, error) {
	account, err := s.backend.Account.Get(ctx)
	if err != nil {
		return nil, model.NewBackendError(model.MsgAccountFetchFailed)
	}
	return account, nil
}

// CurrentUser resolves the profile document of the signed-in account. It
// never returns an error: any failure is logged and swallowed to nil, and a
// missing profile document is a silent nil as well. Callers treat nil as
// "not signed in".
func (s *AuthService) CurrentUser(ctx context.Context) (*model.User, error) {
	account, err := s.Account(ctx)
	if err != nil {
		s.logger.Warn("current user lookup failed", zap.Error(err))
		return nil, nil
	}

	queries := []string{backend.Equal("accountId", account.ID)}

	var list userList
	err = s.backend.Databases.ListDocuments(ctx, s.cfg.DatabaseID, s.cfg.UserCollectionID, queries, &list)
	if err != nil {
		s.logger.Warn("current user lookup failed", zap.Error(err))
		return nil, nil
	}
	if len(list.Documents) == 0 {
		return nil, nil
	}

	user := list.Documents[0]
	return &user, nil
}

// SignOut deletes the active session and drops the installed secret.
func (s *AuthService) SignOut(ctx context.Context) error {
	if err := s.backend.Account.DeleteSession(ctx, model.CurrentSessionID); err != nil {
		return model.NewBackendError(model.MsgSignOutFailed)
	}
	s.backend.ClearSession()
	return nil
}

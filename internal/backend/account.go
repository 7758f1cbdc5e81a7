package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gestpornub/client-go/internal/model"
)

// AccountService covers the platform's account and session endpoints.
type AccountService struct {
	client *Client
}

type createAccountRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type jwtResponse struct {
	JWT string `json:"jwt"`
}

// Create registers a new account with a freshly minted id. It does not sign
// the account in; sessions are a separate step.
func (s *AccountService) Create(ctx context.Context, email, password, name string) (*model.Account, error) {
	req := createAccountRequest{
		UserID:   UniqueID(),
		Email:    email,
		Password: password,
		Name:     name,
	}

	var account model.Account
	if err := s.client.do(ctx, http.MethodPost, "/account", req, &account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &account, nil
}

// Get fetches the account bound to the current session.
func (s *AccountService) Get(ctx context.Context) (*model.Account, error) {
	var account model.Account
	if err := s.client.do(ctx, http.MethodGet, "/account", nil, &account); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}

// CreateEmailSession authenticates with email and password. The returned
// session carries the secret; installing it on the client is the caller's
// decision.
func (s *AccountService) CreateEmailSession(ctx context.Context, email, password string) (*model.Session, error) {
	req := createSessionRequest{Email: email, Password: password}

	var session model.Session
	if err := s.client.do(ctx, http.MethodPost, "/account/sessions/email", req, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session by id. The id "current" addresses whichever
// session the installed secret belongs to.
func (s *AccountService) DeleteSession(ctx context.Context, sessionID string) error {
	path := fmt.Sprintf("/account/sessions/%s", sessionID)
	if err := s.client.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CreateJWT exchanges the current session for a short-lived token that can be
// stored between CLI invocations without persisting the session secret.
func (s *AccountService) CreateJWT(ctx context.Context) (string, error) {
	var resp jwtResponse
	if err := s.client.do(ctx, http.MethodPost, "/account/jwt", nil, &resp); err != nil {
		return "", fmt.Errorf("create jwt: %w", err)
	}
	return resp.JWT, nil
}

package backendtest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestpornub/client-go/internal/httputil"
	"github.com/gestpornub/client-go/internal/model"
)

type contextKey string

const (
	accountIDKey contextKey = "account_id"
	sessionIDKey contextKey = "session_id"
)

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

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.TypeBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Email == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, httputil.TypeBadRequest, "userId, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.TypeInternal, "failed to hash password")
		return
	}

	// The platform does not deduplicate emails: registering the same email
	// twice produces two distinct accounts.
	account := &accountRecord{
		ID:           req.UserID,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	s.accounts[account.ID] = account
	s.mu.Unlock()

	httputil.WriteJSON(w, http.StatusCreated, accountJSON(account))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.TypeBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	var account *accountRecord
	for _, candidate := range s.accounts {
		if candidate.Email != req.Email {
			continue
		}
		if bcrypt.CompareHashAndPassword(candidate.PasswordHash, []byte(req.Password)) == nil {
			account = candidate
			break
		}
	}
	s.mu.Unlock()

	if account == nil {
		httputil.WriteUnauthorized(w, "invalid credentials")
		return
	}

	now := time.Now().UTC()
	session := &sessionRecord{
		ID:        newID(),
		AccountID: account.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	secret, err := s.signSessionToken(session)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.TypeInternal, "failed to sign session")
		return
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	httputil.WriteJSON(w, http.StatusCreated, model.Session{
		ID:        session.ID,
		UserID:    session.AccountID,
		Secret:    secret,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	})
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, _ := r.Context().Value(accountIDKey).(string)

	s.mu.Lock()
	account := s.accounts[accountID]
	s.mu.Unlock()

	if account == nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.TypeNotFound, "account not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, accountJSON(account))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == model.CurrentSessionID {
		sessionID, _ = r.Context().Value(sessionIDKey).(string)
	}

	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		httputil.WriteError(w, http.StatusNotFound, httputil.TypeNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateJWT(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(sessionIDKey).(string)

	s.mu.Lock()
	session := s.sessions[sessionID]
	s.mu.Unlock()

	if session == nil {
		httputil.WriteUnauthorized(w, "session no longer valid")
		return
	}

	// Short-lived compared to the session itself; meant for caching between
	// process runs, not for long-term storage.
	short := *session
	short.ExpiresAt = time.Now().UTC().Add(15 * time.Minute)
	token, err := s.signSessionToken(&short)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.TypeInternal, "failed to sign token")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"jwt": token})
}

// sessionMiddleware validates the session secret and resolves the session it
// belongs to, rejecting expired or signed-out sessions.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := r.Header.Get("X-Session")
		if secret == "" {
			httputil.WriteUnauthorized(w, "missing session")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(secret, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httputil.WriteUnauthorized(w, "invalid session")
			return
		}

		sessionID, _ := claims["sid"].(string)
		accountID, _ := claims["acc"].(string)

		s.mu.Lock()
		_, alive := s.sessions[sessionID]
		s.mu.Unlock()
		if !alive {
			httputil.WriteUnauthorized(w, "session no longer valid")
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey, accountID)
		ctx = context.WithValue(ctx, sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) signSessionToken(session *sessionRecord) (string, error) {
	claims := jwt.MapClaims{
		"sid": session.ID,
		"acc": session.AccountID,
		"exp": session.ExpiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.JWTSecret))
}

func accountJSON(account *accountRecord) map[string]any {
	return map[string]any{
		"id":        account.ID,
		"email":     account.Email,
		"name":      account.Name,
		"createdAt": account.CreatedAt,
	}
}

// Package backendtest is an in-memory stand-in for the remote backend
// platform, speaking the same wire protocol as the real thing. Tests mount
// it on an httptest.Server so the client and facade exercise real HTTP round
// trips without a network.
package backendtest

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gestpornub/client-go/internal/httputil"
)

// DefaultJWTSecret signs session secrets unless the test overrides it.
const DefaultJWTSecret = "backendtest-signing-secret"

const sessionTTL = 24 * time.Hour

type accountRecord struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
}

type sessionRecord struct {
	ID        string
	AccountID string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type document struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    map[string]any
}

type fileRecord struct {
	ID       string
	BucketID string
	Name     string
	MimeType string
	Data     []byte
}

// Server holds the whole fake platform state behind one mutex. It implements
// http.Handler.
type Server struct {
	JWTSecret string

	mu          sync.Mutex
	accounts    map[string]*accountRecord
	sessions    map[string]*sessionRecord
	collections map[string][]*document
	files       map[string]*fileRecord

	failUploads        bool
	failDocumentWrites bool

	router chi.Router
}

// NewServer builds a fake platform with empty state.
func NewServer() *Server {
	s := &Server{
		JWTSecret:   DefaultJWTSecret,
		accounts:    make(map[string]*accountRecord),
		sessions:    make(map[string]*sessionRecord),
		collections: make(map[string][]*document),
		files:       make(map[string]*fileRecord),
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	// Public endpoints: registration, sign-in, and derived media URLs, which
	// carry the project id as a query parameter instead of headers.
	r.Post("/account", s.handleCreateAccount)
	r.Post("/account/sessions/email", s.handleCreateSession)
	r.Get("/storage/buckets/{bucketID}/files/{fileID}/view", s.handleFileView)
	r.Get("/storage/buckets/{bucketID}/files/{fileID}/preview", s.handleFilePreview)
	r.Get("/avatars/initials", s.handleAvatarInitials)

	// Everything else requires an installed session.
	r.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Get("/account", s.handleGetAccount)
		r.Delete("/account/sessions/{sessionID}", s.handleDeleteSession)
		r.Post("/account/jwt", s.handleCreateJWT)

		r.Post("/databases/{databaseID}/collections/{collectionID}/documents", s.handleCreateDocument)
		r.Get("/databases/{databaseID}/collections/{collectionID}/documents", s.handleListDocuments)

		r.Post("/storage/buckets/{bucketID}/files", s.handleCreateFile)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusNotFound, httputil.TypeNotFound, "route not found")
	})

	return r
}

// FailUploads makes every subsequent file upload return a 500. Used to drive
// partial-failure paths.
func (s *Server) FailUploads(fail bool) {
	s.mu.Lock()
	s.failUploads = fail
	s.mu.Unlock()
}

// FailDocumentWrites makes every subsequent document create return a 500.
func (s *Server) FailDocumentWrites(fail bool) {
	s.mu.Lock()
	s.failDocumentWrites = fail
	s.mu.Unlock()
}

// AccountCount reports how many accounts exist.
func (s *Server) AccountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// SessionCount reports how many live sessions exist.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// FileCount reports how many blobs are stored.
func (s *Server) FileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// DocumentCount reports how many documents a collection holds.
func (s *Server) DocumentCount(databaseID, collectionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[collectionKey(databaseID, collectionID)])
}

// SeedDocument inserts a document directly with an explicit creation time,
// bypassing HTTP. Listing tests use it to control ordering.
func (s *Server) SeedDocument(databaseID, collectionID, id string, fields map[string]any, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := collectionKey(databaseID, collectionID)
	s.collections[key] = append(s.collections[key], &document{
		ID:        id,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Fields:    fields,
	})
}

func collectionKey(databaseID, collectionID string) string {
	return databaseID + "/" + collectionID
}

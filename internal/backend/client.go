package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gestpornub/client-go/internal/config"
)

// Request headers the platform expects on every call.
const (
	headerProject  = "X-Project"
	headerPlatform = "X-Platform"
	headerSession  = "X-Session"
)

// The platform throttles per project; pacing requests client-side keeps a
// chatty screen from tripping the limit and turning every call into a 429.
const (
	requestsPerSecond = 10
	requestBurst      = 20
)

// Client is the single long-lived handle to the remote backend platform. It
// is constructed once at process start and shared by every service; only the
// session secret changes over its lifetime.
type Client struct {
	endpoint   string
	projectID  string
	platform   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger

	mu      sync.RWMutex
	session string

	Account   *AccountService
	Databases *DatabaseService
	Storage   *StorageService
	Avatars   *AvatarsService
}

// NewClient wires a client against the configured project. The zero session
// means unauthenticated; SignIn installs one later.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		endpoint:  cfg.Endpoint,
		projectID: cfg.ProjectID,
		platform:  cfg.Platform,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		logger:  logger,
	}

	c.Account = &AccountService{client: c}
	c.Databases = &DatabaseService{client: c}
	c.Storage = &StorageService{client: c}
	c.Avatars = &AvatarsService{client: c}

	return c
}

// SetSession installs the secret attached to subsequent authenticated calls.
// Calls already in flight keep whatever secret they were sent with; session
// transitions are not serialized against concurrent requests.
func (c *Client) SetSession(secret string) {
	c.mu.Lock()
	c.session = secret
	c.mu.Unlock()
}

// ClearSession drops the installed secret.
func (c *Client) ClearSession() {
	c.SetSession("")
}

// Session returns the currently installed secret, or "" when signed out.
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Endpoint returns the base URL of the platform, without a trailing slash.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// do sends a JSON request to path and decodes the response into out. A nil
// body sends no payload; a nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send applies rate limiting and project headers, performs the round trip,
// and decodes either the success payload or the platform error envelope.
func (c *Client) send(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerProject, c.projectID)
	req.Header.Set(headerPlatform, c.platform)
	if secret := c.Session(); secret != "" {
		req.Header.Set(headerSession, secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("backend request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp)
		c.logger.Debug("backend request rejected",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.Error(apiErr))
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

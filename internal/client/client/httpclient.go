package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/dndadmin/internal/client/models"
	"github.com/dmitrijs2005/dndadmin/internal/common"
	"github.com/dmitrijs2005/dndadmin/internal/cryptox"
	"github.com/dmitrijs2005/dndadmin/internal/logging"
	"github.com/dmitrijs2005/dndadmin/internal/netx"
	"github.com/google/uuid"
)

// DefaultTimeout is the per-request ceiling used when ClientConfig.Timeout
// is zero.
const DefaultTimeout = 20 * time.Second

// API paths.
const (
	pathSalt  = "/api/auth/salt"
	pathLogin = "/api/auth/login"
	pathMe    = "/api/auth/me"
	pathUsers = "/api/admin/users"
)

// Operation names used in errors and logs.
const (
	opSalt   = "Salt"
	opLogin  = "Login"
	opMe     = "Me"
	opUsers  = "Users"
	opRole   = "Role update"
	opStatus = "Status update"
)

// ClientConfig configures an HTTPClient.
type ClientConfig struct {
	// BaseURL is the API root, e.g. http://127.0.0.1:5000. Trailing slashes
	// are trimmed.
	BaseURL string
	// Timeout bounds every request, including reading the response body.
	Timeout time.Duration
	// HashEncoding must match the server's verifier.
	HashEncoding cryptox.HashEncoding
	// HTTPClient overrides the transport. Its own Timeout is left as is;
	// the per-request ceiling is applied through the request context.
	HTTPClient *http.Client
	Logger     logging.Logger
}

// HTTPClient is the JSON-over-HTTP implementation of Client. It is safe
// for concurrent use; the bearer token is the only mutable state.
type HTTPClient struct {
	baseURL  string
	timeout  time.Duration
	encoding cryptox.HashEncoding
	http     *http.Client
	logger   logging.Logger

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient validates cfg and returns a client with no token installed.
func NewHTTPClient(cfg ClientConfig) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("base url is required")
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: want http(s)://host[:port]", cfg.BaseURL)
	}

	enc, err := cryptox.ParseHashEncoding(string(cfg.HashEncoding))
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout < 0 {
		return nil, fmt.Errorf("negative timeout %s", timeout)
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &HTTPClient{
		baseURL:  base,
		timeout:  timeout,
		encoding: enc,
		http:     hc,
		logger:   logger.With("component", "api-client"),
	}, nil
}

// BaseURL returns the normalized API root.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Timeout returns the per-request ceiling.
func (c *HTTPClient) Timeout() time.Duration { return c.timeout }

func (c *HTTPClient) SetBearerToken(token string) {
	token = strings.TrimSpace(token)
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) HasBearerToken() bool {
	return c.bearer() != ""
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) GetSalt(ctx context.Context, email string) (string, error) {
	body, err := c.doRequest(ctx, opSalt, http.MethodGet, pathSalt, url.Values{"email": {email}}, nil, false)
	if err != nil {
		return "", err
	}
	return requiredString(opSalt, body, "salt")
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	salt, err := c.GetSalt(ctx, email)
	if err != nil {
		return "", err
	}

	hash, err := cryptox.ComputeClientHashBytes(password, salt, c.encoding)
	if err != nil {
		return "", fmt.Errorf("%s: %w", opLogin, err)
	}

	q := url.Values{"email": {email}, "password": {hash}}
	body, err := c.doRequest(ctx, opLogin, http.MethodPost, pathLogin, q, nil, false)
	if err != nil {
		return "", err
	}
	return requiredString(opLogin, body, "token")
}

func (c *HTTPClient) CurrentProfile(ctx context.Context) (*models.Profile, error) {
	body, err := c.doRequest(ctx, opMe, http.MethodGet, pathMe, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var p *models.Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &ProtocolError{Op: opMe, Reason: "malformed profile", Err: err}
	}
	if p == nil {
		return nil, &ProtocolError{Op: opMe, Reason: "empty profile"}
	}
	return p, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	body, err := c.doRequest(ctx, opUsers, http.MethodGet, pathUsers, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, &ProtocolError{Op: opUsers, Reason: "malformed user list", Err: err}
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

type roleUpdate struct {
	Role string `json:"role"`
}

type statusUpdate struct {
	IsActive bool `json:"isActive"`
}

func (c *HTTPClient) UpdateUserRole(ctx context.Context, userID int, role string) error {
	_, err := c.doRequest(ctx, opRole, http.MethodPut, userPath(userID, "role"), nil, roleUpdate{Role: role}, true)
	return err
}

func (c *HTTPClient) UpdateUserStatus(ctx context.Context, userID int, isActive bool) error {
	_, err := c.doRequest(ctx, opStatus, http.MethodPut, userPath(userID, "status"), nil, statusUpdate{IsActive: isActive}, true)
	return err
}

func userPath(id int, field string) string {
	return pathUsers + "/" + strconv.Itoa(id) + "/" + field
}

// doRequest sends one request and returns the body of a 2xx response.
// Query values are percent-encoded; in is JSON-encoded when non-nil.
func (c *HTTPClient) doRequest(ctx context.Context, op, method, path string, query url.Values, in any, auth bool) ([]byte, error) {
	var token string
	if auth {
		token = c.bearer()
		if token == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrNotLoggedIn)
		}
	}

	limit := c.limit(ctx)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	// The query may carry the client hash, so only the path is logged.
	log := c.logger.With("op", op, "method", method, "path", path, "request_id", requestID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, log, op, limit, err)
	}
	defer resp.Body.Close()

	body, err := netx.ReadResponse(resp.Body)
	if errors.Is(err, netx.ErrResponseTooLarge) {
		log.Warn(ctx, "api response too large", "status", resp.StatusCode)
		return nil, &ProtocolError{Op: op, Reason: "response too large", Err: err}
	}
	if err != nil {
		return nil, c.transportError(ctx, log, op, limit, err)
	}

	log.Debug(ctx, "api request", "status", resp.StatusCode, "elapsed", time.Since(started))

	if !netx.IsSuccess(resp.StatusCode) {
		log.Warn(ctx, "api request failed", "status", resp.StatusCode)
		return nil, &ServerError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// limit is the time a request started now may take: the per-request
// ceiling, or less when ctx carries an earlier deadline.
func (c *HTTPClient) limit(ctx context.Context) time.Duration {
	limit := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < limit {
			limit = max(left.Round(time.Millisecond), 0)
		}
	}
	return limit
}

func (c *HTTPClient) transportError(ctx context.Context, log logging.Logger, op string, limit time.Duration, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		log.Debug(ctx, "api request canceled")
		return fmt.Errorf("%s: %w", op, err)
	case netx.IsTimeout(err):
		log.Warn(ctx, "api request timed out", "timeout", limit)
		return &TimeoutError{Op: op, Timeout: limit, Err: err}
	default:
		log.Warn(ctx, "api request failed", "error", err)
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
}

// requiredString extracts a non-empty string field from a JSON object.
func requiredString(op string, body []byte, field string) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", &ProtocolError{Op: op, Field: field, Reason: "unreadable", Err: err}
	}

	raw, ok := obj[field]
	if !ok {
		return "", &ProtocolError{Op: op, Field: field, Reason: "missing"}
	}

	var v *string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", &ProtocolError{Op: op, Field: field, Reason: "not a string", Err: err}
	}
	if v == nil {
		return "", &ProtocolError{Op: op, Field: field, Reason: "is null"}
	}
	if strings.TrimSpace(*v) == "" {
		return "", &ProtocolError{Op: op, Field: field, Reason: "is empty"}
	}
	return *v, nil
}

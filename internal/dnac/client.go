// Package dnac is a small REST client for the Catalyst Centre intent API.
package dnac

import (
	"bytes"
	"context"
	"crypto/tls"
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

	"github.com/google/uuid"
	"github.com/netops-tools/dnac-console/internal/logging/events"
	"github.com/netops-tools/dnac-console/internal/settings"
	"golang.org/x/time/rate"
)

const (
	authPath = "/dna/system/api/v1/auth/token"

	defaultRequestsPerSecond = 5
	maxErrorBody             = 512
)

// ErrNoToken is returned when the auth endpoint answers without a token.
var ErrNoToken = errors.New("authentication response carried no token")

// APIError is a non-2xx answer from the controller.
type APIError struct {
	Method string
	Path   string
	Status int
	// Message is taken from the response envelope when present.
	Message string
	Body    string
}

func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	if detail == "" {
		detail = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, detail)
}

// Client talks to one controller. It authenticates lazily and refreshes the
// token once when a request is rejected with 401.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	limiter  *rate.Limiter
	newID    func() string

	mu    sync.Mutex
	token string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewClient builds a client from the persisted server and auth settings.
func NewClient(cfg settings.Config, opts ...Option) *Client {
	timeout := time.Duration(cfg.Server.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.Server.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	c := &Client{
		baseURL:  BaseURL(cfg.Server),
		username: cfg.Auth.Username,
		password: cfg.Auth.Password,
		http:     &http.Client{Timeout: timeout, Transport: transport},
		limiter:  rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL normalises the configured host: https is assumed when no scheme
// is given, a trailing slash is dropped and the port is appended unless the
// host already names one.
func BaseURL(server settings.Server) string {
	host := strings.TrimSpace(server.Host)
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	host = strings.TrimRight(host, "/")
	if u, err := url.Parse(host); err == nil && u.Port() != "" {
		return host
	}
	if server.Port > 0 {
		host += ":" + strconv.Itoa(server.Port)
	}
	return host
}

// BaseURL reports the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticate exchanges the configured credentials for a token and caches it.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authPath, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Token string `json:"Token"`
	}
	if err := c.send(req, &out); err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	}
	if out.Token == "" {
		return "", ErrNoToken
	}
	c.mu.Lock()
	c.token = out.Token
	c.mu.Unlock()
	events.API.Authenticated(c.baseURL)
	return out.Token, nil
}

func (c *Client) cachedToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) clearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// do performs an authenticated JSON request against path.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		payload = data
	}
	for attempt := 0; ; attempt++ {
		token := c.cachedToken()
		if token == "" {
			var err error
			if token, err = c.Authenticate(ctx); err != nil {
				return err
			}
		}
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return err
		}
		req.Header.Set("X-Auth-Token", token)
		req.Header.Set("Content-Type", "application/json")
		err = c.send(req, out)
		var apiErr *APIError
		if attempt == 0 && errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			c.clearToken()
			continue
		}
		return err
	}
}

func (c *Client) send(req *http.Request, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return err
		}
	}
	id := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", id)
	events.API.Request(id, req.Method, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		events.API.Response(id, 0, time.Since(start), err)
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	events.API.Response(id, resp.StatusCode, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("read %s: %w", req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(req, resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func newAPIError(req *http.Request, status int, body []byte) *APIError {
	e := &APIError{Method: req.Method, Path: req.URL.Path, Status: status}
	var envelope struct {
		Response struct {
			ErrorCode string `json:"errorCode"`
			Message   string `json:"message"`
			Detail    string `json:"detail"`
		} `json:"response"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		parts := make([]string, 0, 3)
		for _, p := range []string{envelope.Response.ErrorCode, envelope.Response.Message, envelope.Response.Detail} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 && envelope.Message != "" {
			parts = append(parts, envelope.Message)
		}
		e.Message = strings.Join(parts, ": ")
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "…"
	}
	e.Body = text
	return e
}

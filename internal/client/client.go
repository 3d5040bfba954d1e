// Package client talks to the dashboard REST API. Resource implements the
// list view's Fetcher and Deleter so a ListView can drive a remote table.
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
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/pkg/circuit"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const apiPrefix = "/api/v1"

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
	Details []string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Config struct {
	BaseURL   string
	Token     string
	Transport TransportConfig
	Breaker   circuit.Config
}

type Client struct {
	base    *url.URL
	http    *http.Client
	breaker *circuit.Breaker
	group   singleflight.Group
	// writes counts successful mutations; fetches issued after one never
	// share a request started before it.
	writes atomic.Uint64
	log    *zap.Logger

	mu    sync.RWMutex
	token string
}

func New(cfg Config, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", cfg.BaseURL)
	}

	breaker := circuit.NewBreaker(base.Host, cfg.Breaker, log)
	// Only transport failures and 5xx answers say the API is unhealthy.
	breaker.IsFailure = func(err error) bool {
		if err == nil || errors.Is(err, context.Canceled) {
			return false
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr.Status >= http.StatusInternalServerError
		}
		return true
	}

	return &Client{
		base:    base,
		http:    newHTTPClient(cfg.Transport),
		breaker: breaker,
		log:     log,
		token:   cfg.Token,
	}, nil
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Breaker exposes the circuit guarding the API.
func (c *Client) Breaker() *circuit.Breaker { return c.breaker }

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/auth/login", "", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("login response carried no token")
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

// do sends one request through the breaker and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path, rawQuery string, in, out any) error {
	return c.breaker.Execute(func() error {
		return c.roundTrip(ctx, method, path, rawQuery, in, out)
	})
}

func (c *Client) roundTrip(ctx context.Context, method, path, rawQuery string, in, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = rawQuery

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	if in != nil {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	if token := c.Token(); token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set(constants.HeaderXRequestID, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("API request failed",
			zap.String("method", method),
			zap.String("url", u.String()),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("API request",
		zap.String("method", method),
		zap.String("url", u.String()),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{Status: status}
	var body struct {
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		var details []string
		if json.Unmarshal(body.Details, &details) == nil {
			apiErr.Details = details
		}
	}
	return apiErr
}

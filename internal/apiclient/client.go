// Package apiclient talks to the external pedidos REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// maxBody caps how much of an API response is read.
const maxBody = 10 << 20

var ErrUnauthorized = errors.New("credencial rechazada por la API")

// APIError is an application-level failure: the API answered but said no.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// MessageOf returns the server-provided message of err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type Options struct {
	Timeout     time.Duration
	RPS         float64
	Burst       int
	RefreshPath string
	HTTPClient  *http.Client // optional, mainly for tests
}

// Client is safe for concurrent use.
type Client struct {
	baseURL     string
	refreshPath string
	http        *http.Client
	limiter     *rate.Limiter
}

func New(baseURL string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	limit, burst := rate.Inf, opts.Burst
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		refreshPath: opts.RefreshPath,
		http:        hc,
		limiter:     rate.NewLimiter(limit, burst),
	}
}

// StorageURL is where the API serves uploaded files (receipts, product images).
func (c *Client) StorageURL(path string) string {
	return c.baseURL + "/storage/" + strings.TrimLeft(path, "/")
}

// response is the raw outcome of one request.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool { return r.status >= 200 && r.status < 300 }

func (c *Client) do(ctx context.Context, token, method, path string, body io.Reader, contentType string) (response, error) {
	// 1. --- Throttle ---
	if err := c.limiter.Wait(ctx); err != nil {
		return response{}, errors.Wrap(err, "rate limit wait")
	}

	// 2. --- Build request ---
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return response{}, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// 3. --- Send ---
	resp, err := c.http.Do(req)
	if err != nil {
		return response{}, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return response{}, errors.Wrap(err, "read body")
	}

	log.WithFields(log.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("api call")

	if resp.StatusCode == http.StatusUnauthorized {
		return response{status: resp.StatusCode, body: raw}, ErrUnauthorized
	}
	return response{status: resp.StatusCode, body: raw}, nil
}

func (c *Client) doJSON(ctx context.Context, token, method, path string, payload interface{}) (response, error) {
	if payload == nil {
		return c.do(ctx, token, method, path, nil, "")
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return response{}, errors.Wrap(err, "encode body")
	}
	return c.do(ctx, token, method, path, bytes.NewReader(buf), "application/json")
}

// envelope is the {success, message} wrapper most endpoints answer with.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// decodeEnvelope checks the wrapper and then decodes the whole body into out.
// out may be nil when only the message matters.
func decodeEnvelope(r response, out interface{}) (string, error) {
	if err := validateEnvelope(r.body); err != nil {
		if !r.ok() {
			return "", &APIError{Status: r.status}
		}
		return "", err
	}

	var env envelope
	if err := json.Unmarshal(r.body, &env); err != nil {
		return "", errors.Wrap(err, "decode envelope")
	}
	if !env.Success {
		return "", &APIError{Status: r.status, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(r.body, out); err != nil {
			return "", errors.Wrap(err, "decode body")
		}
	}
	return env.Message, nil
}

// messageFromBody extracts a "message" field from an arbitrary JSON body, if any.
func messageFromBody(raw []byte) string {
	var env envelope
	if json.Unmarshal(raw, &env) != nil {
		return ""
	}
	return env.Message
}

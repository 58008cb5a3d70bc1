package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

// SessionStore supplies the bearer token and is told when the backend rejects it.
type SessionStore interface {
	OAuthToken() (*oauth2.Token, bool)
	Logout()
}

// Client issues authenticated JSON requests against the backend. Each request is a single
// attempt: there are no retries and no client side timeouts beyond the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    SessionStore
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for baseURL, e.g. "https://api.example.com/api".
func New(baseURL string, session SessionStore, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		session:    session,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is a fully read 2xx response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON parses the body for path queries.
func (r *Response) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrapf(errors.ErrPayloadShape, "decode response: %v", err)
	}
	return nil
}

type requestOptions struct {
	query     url.Values
	header    http.Header
	noAuth    bool
	keepOn401 bool
}

type RequestOption func(*requestOptions)

// WithQuery adds a query parameter. Empty values are skipped.
func WithQuery(key, value string) RequestOption {
	return func(o *requestOptions) {
		if value == "" {
			return
		}
		o.query.Add(key, value)
	}
}

// WithHeader sets a header, overriding the defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.header.Set(key, value)
	}
}

// WithoutAuth sends no bearer token. A 401 then is an ordinary HTTP error and leaves the
// session alone.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) {
		o.noAuth = true
	}
}

// KeepSessionOn401 reports a 401 as ErrAuthenticationExpired without logging out.
func KeepSessionOn401() RequestOption {
	return func(o *requestOptions) {
		o.keepOn401 = true
	}
}

// Request sends method to baseURL+endpoint. body is sent as JSON unless it is nil or already
// []byte. A 401 invalidates the session and returns ErrAuthenticationExpired; any other non-2xx
// status returns *errors.HTTPError.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, options ...RequestOption) (*Response, error) {
	opts := requestOptions{query: url.Values{}, header: http.Header{}}
	for _, opt := range options {
		opt(&opts)
	}

	req, err := c.newRequest(ctx, method, endpoint, body, opts)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With().Str("method", method).Str("endpoint", endpoint).Str("requestID", req.Header.Get("X-Request-ID")).Logger()
	logger.Debug().Msg("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("transport failure")
		return nil, errors.Wrapf(errors.ErrTransport, "%s %s: %v", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTransport, "read %s %s: %v", method, endpoint, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !opts.noAuth {
		logger.Warn().Bool("keepSession", opts.keepOn401).Msg("unauthorized")
		if !opts.keepOn401 && c.session != nil {
			c.session.Logout()
		}
		return nil, errors.Wrapf(errors.ErrAuthenticationExpired, "%s %s", method, endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &errors.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    errorMessage(data),
			JSONBody:   gjson.ValidBytes(data),
		}
		logger.Error().Err(httpErr).Msg("request failed")
		return nil, httpErr
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any, opts requestOptions) (*http.Request, error) {
	target := c.baseURL + endpoint
	if len(opts.query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + opts.query.Encode()
	}

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	case json.RawMessage:
		reader = bytes.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrValidation, "encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrValidation, "build request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if !opts.noAuth && c.session != nil {
		if tok, ok := c.session.OAuthToken(); ok {
			tok.SetAuthHeader(req)
		}
	}
	for k, v := range opts.header {
		req.Header[k] = v
	}
	return req, nil
}

// errorMessage reads a human readable message from an error body, if it has one.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	doc := gjson.ParseBytes(body)
	for _, path := range []string{"message", "Message", "error", "Error", "title", "Title"} {
		if v := doc.Get(path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	if doc.Type == gjson.String {
		return doc.String()
	}
	return ""
}

func (c *Client) Get(ctx context.Context, endpoint string, options ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodGet, endpoint, nil, options...)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any, options ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodPost, endpoint, body, options...)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any, options ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodPut, endpoint, body, options...)
}

func (c *Client) Delete(ctx context.Context, endpoint string, options ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, options...)
}

// PingResult describes a connection check.
type PingResult struct {
	URL        string
	StatusCode int
	Err        error
}

// OK reports whether the backend answered with a 2xx status.
func (p PingResult) OK() bool {
	return p.Err == nil
}

// Ping issues an authenticated GET against endpoint and reports how it went.
func (c *Client) Ping(ctx context.Context, endpoint string) PingResult {
	result := PingResult{URL: c.baseURL + endpoint}
	resp, err := c.Get(ctx, endpoint)
	if err != nil {
		result.Err = err
		result.StatusCode = errors.StatusCode(err)
		return result
	}
	result.StatusCode = resp.StatusCode
	return result
}

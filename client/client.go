// Package client talks to the question-answering backend over plain HTTP.
//
// Every call classifies its failure the same way: a reply with a non-2xx
// status is an *HTTPError, a request that never got a reply is a
// *NetworkError. Callers tell them apart with errors.As.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// DefaultOrigin is where the backend listens in a local development setup.
const DefaultOrigin = "http://localhost:8000"

// Client is a backend client bound to one origin.
type Client struct {
	origin string
	http   *http.Client
	log    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for origin, e.g. "http://localhost:8000".
// No timeout is set on the default transport; a query runs until the
// backend answers or the connection fails.
func New(origin string, opts ...Option) (*Client, error) {
	if origin == "" {
		origin = DefaultOrigin
	}
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse backend origin: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend origin %q: scheme must be http or https", origin)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend origin %q: missing host", origin)
	}

	c := &Client{
		origin: strings.TrimRight(origin, "/"),
		http:   &http.Client{},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Origin returns the backend origin without a trailing slash.
func (c *Client) Origin() string { return c.origin }

// Query posts a question and returns the backend's answer text.
func (c *Client) Query(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(QueryRequest{Query: query})
	if err != nil {
		return "", err
	}

	var out QueryResponse
	if err := c.do(ctx, http.MethodPost, "/query", "application/json", bytes.NewReader(payload), &out); err != nil {
		return "", err
	}
	return out.Answer, nil
}

// Ping fetches the backend's welcome message from GET /.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var out RootResponse
	if err := c.do(ctx, http.MethodGet, "/", "", nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Ingest uploads a PDF document to be chunked and indexed.
func (c *Client) Ingest(ctx context.Context, filename string, r io.Reader) (*IngestResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out IngestResponse
	if err := c.do(ctx, http.MethodPost, "/ingest", mw.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Scrape starts a scraping job on the backend. The job runs asynchronously;
// the returned TaskID identifies it.
func (c *Client) Scrape(ctx context.Context, req ScrapeRequest) (*ScrapeResponse, error) {
	if req.TargetURL == "" {
		return nil, errors.New("scrape: target url is required")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var out ScrapeResponse
	if err := c.do(ctx, http.MethodPost, "/scrape", "application/json", bytes.NewReader(payload), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one request and decodes a 2xx JSON reply into out.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	target := c.origin + path
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("backend request", zap.String("method", method), zap.String("url", target))

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		// The connection dropped mid-reply.
		return &NetworkError{Op: method, URL: target, Err: err}
	}

	c.log.Debug("backend response",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(respBody)))

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s reply: %w", path, err)
	}
	return nil
}

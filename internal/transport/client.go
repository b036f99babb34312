package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"discount24/internal/domain"
	"discount24/internal/telemetry"
)

// DefaultTimeout bounds every call unless the deployment configures another.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response is read into memory.
const maxBody = 4 << 20

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session is the part of the session store the client needs.
type Session interface {
	Token() (string, bool)
	Invalidate(token string) (bool, error)
}

// Config holds per-deployment transport options.
type Config struct {
	BaseURL string        // e.g. http://127.0.0.1:5000
	Timeout time.Duration // zero means DefaultTimeout
	HTTP    Doer          // optional; defaults to an instrumented http.Client
	Logger  *slog.Logger
	Metrics *telemetry.Metrics
}

// Client performs JSON and multipart calls against the marketplace API.
type Client struct {
	base    string
	http    Doer
	timeout time.Duration
	session Session
	log     *slog.Logger
	metrics *telemetry.Metrics

	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
}

// New returns a Client for cfg reading credentials from session.
func New(cfg Config, session Session) *Client {
	doer := cfg.HTTP
	if doer == nil {
		doer = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base:      strings.TrimRight(cfg.BaseURL, "/"),
		http:      doer,
		timeout:   timeout,
		session:   session,
		log:       log,
		metrics:   cfg.Metrics,
		listeners: make(map[int]func()),
	}
}

// OnAuthExpired registers fn to run after a 401 has torn the session down.
// The returned func unregisters it.
func (c *Client) OnAuthExpired(fn func()) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Do sends in (if non-nil) as JSON and decodes the response into out (if non-nil).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = buf
		contentType = "application/json"
	}
	return c.roundTrip(ctx, method, path, body, contentType, out)
}

// DoMultipart sends form as multipart/form-data and decodes the response into out.
func (c *Client) DoMultipart(ctx context.Context, method, path string, form domain.MultipartForm, out any) error {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for _, f := range form.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("encode form field %q: %w", f.Name, err)
		}
	}
	for _, f := range form.Files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return fmt.Errorf("encode form file %q: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return fmt.Errorf("read form file %q: %w", f.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.roundTrip(ctx, method, path, buf, w.FormDataContentType(), out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	token, authed := c.session.Token()
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	op := method + " " + path
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Observe(method, 0, telemetry.OutcomeNetworkError, started)
		c.log.Warn("request failed", "method", method, "path", path, "error", err)
		return &domain.NetworkError{Op: op, Timeout: isTimeout(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		c.metrics.Observe(method, 0, telemetry.OutcomeNetworkError, started)
		return &domain.NetworkError{Op: op, Timeout: isTimeout(ctx, err), Err: err}
	}
	c.metrics.Observe(method, resp.StatusCode, "", started)
	c.log.Debug("request done", "method", method, "path", path, "status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusUnauthorized && authed:
		c.expire(token)
		return fmt.Errorf("%s: %w", op, domain.ErrAuthExpired)
	case resp.StatusCode/100 != 2:
		return &domain.ServerError{Status: resp.StatusCode, Message: serverMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn("malformed response", "method", method, "path", path, "error", err)
		return &domain.DecodeError{Err: err}
	}
	return nil
}

// expire drops the session that produced a 401 and notifies subscribers the
// first time that token is rejected.
func (c *Client) expire(token string) {
	cleared, err := c.session.Invalidate(token)
	if err != nil {
		c.log.Warn("clear expired session", "error", err)
	}
	if !cleared {
		return
	}
	c.metrics.SessionExpired()
	c.log.Warn("session expired")

	c.mu.Lock()
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// serverMessage extracts a human-readable message from an error body.
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}
	// Plain-text bodies such as those written by http.Error.
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Compile-time assertion that Client implements domain.Transport.
var _ domain.Transport = (*Client)(nil)

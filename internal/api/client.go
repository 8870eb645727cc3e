// Package api is the thin client for the storefront backend. It speaks the
// backend's JSON envelope, classifies failures, and clears the local session
// when the backend says the token is no longer good. No retries, no
// caching; the backend is authoritative.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gitlab.ozon.dev/qwestard/storefront/internal/session"
)

// Error is any failed backend call: HTTP failures and envelopes whose
// status is not "success". Fields carries per-field validation messages
// when the backend returns them.
type Error struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("backend: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("backend: %s (HTTP %d): %s", e.Message, e.StatusCode, strings.Join(parts, ", "))
}

func statusIs(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// IsUnauthorized reports a 401; by the time the caller sees it the session
// has already been cleared.
func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }

func IsForbidden(err error) bool { return statusIs(err, http.StatusForbidden) }

func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnprocessableEntity || len(apiErr.Fields) > 0)
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// errorBody covers both error payload conventions the backend emits: a
// plain message or a per-field validation map.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type Client struct {
	baseURL string
	httpc   *http.Client
	session *session.Store
}

// New builds a client for the backend at baseURL. The session store
// supplies the bearer token and is cleared when the backend returns 401.
func New(baseURL string, timeout time.Duration, sess *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: newLogTransport(newAuthTransport(sess, http.DefaultTransport)),
		},
		session: sess,
	}
}

// do issues one request and decodes the envelope's data into out (when out
// is non-nil). Every failure comes back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The token is dead; drop the session so the next command starts
		// from a clean logged-out state.
		_ = c.session.Clear()
	}
	if resp.StatusCode >= 400 {
		return errorFrom(resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s %s: decode envelope: %w", method, path, err)
	}
	if env.Status != "success" {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}
	return nil
}

func errorFrom(code int, raw []byte) *Error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	msg := body.Message
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &Error{StatusCode: code, Message: msg, Fields: body.Errors}
}

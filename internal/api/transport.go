package api

import (
	"log"
	"net/http"
	"time"

	"gitlab.ozon.dev/qwestard/storefront/internal/session"
)

// authTransport injects the session's bearer token. Requests issued while
// logged out (login itself) go through without a header.
type authTransport struct {
	session *session.Store
	next    http.RoundTripper
}

func newAuthTransport(sess *session.Store, next http.RoundTripper) http.RoundTripper {
	return &authTransport{session: sess, next: next}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.session.Token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.next.RoundTrip(req)
}

// logTransport logs every backend call with its outcome and duration.
type logTransport struct {
	next http.RoundTripper
}

func newLogTransport(next http.RoundTripper) http.RoundTripper {
	return &logTransport{next: next}
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		log.Printf("[%s] %s error: %v", req.Method, req.URL.Path, err)
		return nil, err
	}
	log.Printf("[%s] %s %d (%s)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	return resp, nil
}

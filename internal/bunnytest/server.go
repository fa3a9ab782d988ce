// Package bunnytest fakes the BunnyCDN HTTP APIs for tests.
//
// Every request a client sends through Server.Client is rewritten to the
// local gin router while keeping its original Host, so handlers and
// assertions see the real BunnyCDN hostnames.
package bunnytest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Recorded struct {
	Method   string
	Host     string
	Path     string
	RawPath  string
	RawQuery string
	Header   http.Header
	Body     []byte
}

type Server struct {
	*httptest.Server
	Router *gin.Engine

	mu       sync.Mutex
	requests []Recorded
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{Router: gin.New()}
	s.Router.RedirectTrailingSlash = false
	s.Router.Use(s.record)
	s.Router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"Message": "no route for " + c.Request.Method + " " + c.Request.URL.Path})
	})

	s.Server = httptest.NewServer(s.Router)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method:   c.Request.Method,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawPath:  c.Request.URL.EscapedPath(),
		RawQuery: c.Request.URL.RawQuery,
		Header:   c.Request.Header.Clone(),
		Body:     body,
	})
	s.mu.Unlock()

	c.Next()
}

// Handle registers a handler on the fake.
func (s *Server) Handle(method, path string, h gin.HandlerFunc) {
	s.Router.Handle(method, path, h)
}

// Reply answers with status and body. A []byte or string body is written
// raw; anything else is JSON encoded. A nil body writes no content.
func Reply(status int, body any) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch b := body.(type) {
		case nil:
			c.Status(status)
		case []byte:
			c.Data(status, "application/octet-stream", b)
		case string:
			c.Data(status, "text/plain; charset=utf-8", []byte(b))
		default:
			c.JSON(status, b)
		}
	}
}

func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request, or the zero value.
func (s *Server) Last() Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}
	}
	return s.requests[len(s.requests)-1]
}

// Client returns an *http.Client that routes every request to the fake.
func (s *Server) Client() *http.Client {
	target, _ := url.Parse(s.URL)
	return &http.Client{Transport: &RewriteTransport{Target: target}}
}

// RewriteTransport sends requests to Target but preserves their Host.
type RewriteTransport struct {
	Target *url.URL
	Base   http.RoundTripper
}

func (t *RewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Host == "" {
		out.Host = req.URL.Host
	}
	out.URL.Scheme = t.Target.Scheme
	out.URL.Host = t.Target.Host

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(out)
}

// FailingDoer fails every request before it reaches the network.
type FailingDoer struct{ Err error }

func (d FailingDoer) Do(*http.Request) (*http.Response, error) { return nil, d.Err }

func NewGUID() string { return uuid.NewString() }

// Package bunny is the entry point of the BunnyCDN SDK.
//
// A Client owns the account access key and the default Edge Storage
// endpoint. It hands out storage clients bound to a zone, Stream libraries
// bound to a library id and the account-level client. Storage clients read
// the key and endpoint from their Client on every call, so SetAccessKey and
// SetEndpoint take effect for clients created earlier.
package bunny

import (
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/khoahotran/bunny-go/internal/transport"
	"github.com/khoahotran/bunny-go/pkg/bunny/account"
	"github.com/khoahotran/bunny-go/pkg/bunny/storage"
	"github.com/khoahotran/bunny-go/pkg/bunny/stream"
	"github.com/khoahotran/bunny-go/pkg/logger"
)

type Client struct {
	mu         sync.RWMutex
	accessKey  string
	accountKey string
	endpoint   storage.Endpoint

	httpClient transport.Doer
	log        logger.Logger
	tp         trace.TracerProvider
	http       *transport.Client
}

var (
	_ storage.Credentials = (*Client)(nil)
	_ account.Credentials = (*Client)(nil)
)

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient. Timeouts belong here.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithDoer is WithHTTPClient for anything that can send a request.
func WithDoer(d transport.Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tp = tp }
}

// WithEndpoint sets the storage endpoint; the default is Falkenstein.
func WithEndpoint(e storage.Endpoint) Option {
	return func(c *Client) { c.endpoint = e }
}

// WithAccountKey sets a separate key for api.bunny.net. Without it the
// access key is used.
func WithAccountKey(key string) Option {
	return func(c *Client) { c.accountKey = key }
}

func New(accessKey string, opts ...Option) *Client {
	c := &Client{accessKey: accessKey, endpoint: storage.Falkenstein}
	for _, opt := range opts {
		opt(c)
	}
	c.http = transport.New(c.httpClient, c.log, c.tp)
	return c
}

func (c *Client) AccessKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessKey
}

func (c *Client) SetAccessKey(key string) {
	c.mu.Lock()
	c.accessKey = key
	c.mu.Unlock()
}

func (c *Client) Endpoint() storage.Endpoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

func (c *Client) SetEndpoint(e storage.Endpoint) {
	c.mu.Lock()
	c.endpoint = e
	c.mu.Unlock()
}

func (c *Client) AccountKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.accountKey != "" {
		return c.accountKey
	}
	return c.accessKey
}

// CreateClient returns an Edge Storage client for zone.
func (c *Client) CreateClient(zone string) *storage.Client {
	return storage.NewClient(c, c.http, zone)
}

// GetLibrary returns a Stream library handle. Libraries authenticate with
// their own key, not the account access key.
func (c *Client) GetLibrary(id int64, key string) *stream.Library {
	return stream.NewLibrary(id, key, c.http)
}

func (c *Client) Account() *account.Client {
	return account.NewClient(c, c.http)
}

// Package atlas is a client for the Atlas analytics API. A Client carries the
// API key and base URL; each Request holds one set of query parameters and a
// per-instance cache of successful endpoint results.
package atlas

import (
	"strings"

	"github.com/samvad-hq/atlas-client/pkg/httpclient"
)

// DefaultBaseURL is used when Config.BaseURL is empty.
const DefaultBaseURL = "https://atlas.infegy.com/api/v2/"

// Config holds the process-wide settings shared by every Request of a Client.
type Config struct {
	APIKey  string
	BaseURL string
}

// Client issues Atlas requests. It holds no per-query state and may be shared.
type Client struct {
	cfg  Config
	http httpclient.Client
	log  Logger
}

// Option configures a Client during construction in NewClient.
type Option func(*Client)

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(c httpclient.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l Logger) Option {
	return func(cl *Client) {
		cl.log = OrNop(l)
	}
}

// NewClient builds a Client. A missing API key is not an error here; it
// surfaces as a RequestError on the first URI build.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	c := &Client{cfg: cfg, log: NopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(httpclient.Options{})
	}
	return c
}

// Config returns a copy of the client's settings.
func (c *Client) Config() Config { return c.cfg }

// NewRequest is shorthand for NewRequest(c, query, params).
func (c *Client) NewRequest(query string, params map[string]any) *Request {
	return NewRequest(c, query, params)
}

package request

import (
	"net/http"
	"strings"
	"time"

	"github.com/okian/assetlens/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the origin (and optional path prefix) every descriptor URL is joined to.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.rawBase = strings.TrimSpace(base) }
}

// WithToken sets the bearer credential injected into every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient supplies the underlying client; its Transport is reused.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.base = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

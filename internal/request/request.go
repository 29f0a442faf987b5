// Package request is the shared request utility behind every typed API call:
// it resolves descriptor paths against a base URL, injects credentials,
// decodes the {success, data, msg} envelope and normalizes failures.
package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/okian/assetlens/pkg/logger"
	"github.com/okian/assetlens/pkg/metrics"
)

// HeaderRequestID carries a per-request correlation id.
const HeaderRequestID = "X-Request-Id"

const maxBodyBytes = 4 << 20

// Descriptor names one call: a path relative to the base URL, a method and
// optional query parameters.
type Descriptor struct {
	URL    string
	Method string
	Params map[string]string
}

// Response is the backend envelope. Data is left raw for the caller to decode.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Msg     string          `json:"msg"`
}

// Client sends Descriptors to a backend.
type Client struct {
	rawBase string
	baseURL *url.URL
	token   string
	timeout time.Duration
	base    *http.Client
	http    *http.Client
	logger  logger.Logger
}

// New builds a Client. A base URL is required.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		timeout: defaultTimeout,
		base:    http.DefaultClient,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.rawBase == "" {
		return nil, fmt.Errorf("%w: base url is required", ErrInvalidDescriptor)
	}
	u, err := url.Parse(c.rawBase)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %v", ErrInvalidDescriptor, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base url scheme %q", ErrInvalidDescriptor, u.Scheme)
	}
	c.baseURL = u

	transport := c.base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if c.token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token}),
			Base:   transport,
		}
	}
	c.http = &http.Client{
		Transport:     transport,
		CheckRedirect: c.base.CheckRedirect,
		Jar:           c.base.Jar,
		Timeout:       c.timeout,
	}
	return c, nil
}

// Do issues the request described by d and returns the decoded envelope.
func (c *Client) Do(ctx context.Context, d Descriptor) (*Response, error) {
	start := time.Now()
	resp, err := c.do(ctx, d)
	metrics.RecordClientRequest(d.URL, outcome(err), float64(time.Since(start).Milliseconds()))
	return resp, err
}

func (c *Client) do(ctx context.Context, d Descriptor) (*Response, error) {
	target, err := c.resolve(d)
	if err != nil {
		return nil, err
	}
	method := strings.ToUpper(strings.TrimSpace(d.Method))
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)

	c.logger.Debug(ctx, "sending request",
		logger.String("method", method),
		logger.String("url", target),
		logger.String("request_id", reqID))

	httpResp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", logger.String("url", target), logger.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, d.URL, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, d.URL, err)
	}

	var env Response
	decodeErr := json.Unmarshal(body, &env)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		serr := &StatusError{StatusCode: httpResp.StatusCode}
		if decodeErr == nil {
			serr.Msg = env.Msg
		}
		c.logger.Warn(ctx, "unexpected status",
			logger.String("url", target),
			logger.Int("status", httpResp.StatusCode),
			logger.String("request_id", reqID))
		return nil, serr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, method, d.URL, decodeErr)
	}
	if !env.Success {
		return nil, &APIError{Msg: env.Msg}
	}
	return &env, nil
}

// resolve joins the descriptor path onto the base URL and encodes params.
func (c *Client) resolve(d Descriptor) (string, error) {
	if strings.TrimSpace(d.URL) == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidDescriptor)
	}
	ref, err := url.Parse(d.URL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if ref.IsAbs() {
		return "", fmt.Errorf("%w: url must be relative to the base: %s", ErrInvalidDescriptor, d.URL)
	}

	u := c.baseURL.JoinPath(ref.Path)
	q := u.Query()
	for k, v := range ref.Query() {
		for _, vv := range v {
			q.Add(k, vv)
		}
	}
	for k, v := range d.Params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrAPI):
		return "api"
	default:
		return "invalid"
	}
}

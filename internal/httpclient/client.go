package httpclient

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/flexprice/cryptapi/internal/config"
	ierr "github.com/flexprice/cryptapi/internal/errors"
	"github.com/flexprice/cryptapi/internal/logger"
	"github.com/go-resty/resty/v2"
)

// Request represents an HTTP request
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   map[string]string
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Client interface for making HTTP requests
type Client interface {
	Send(ctx context.Context, req *Request) (*Response, error)
	// Close releases pooled connections. It is safe to call more than once.
	Close() error
}

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	// MaxConnections bounds concurrent connections per host
	MaxConnections int
	// Timeout bounds a whole request, from dial to the last body byte
	Timeout time.Duration
}

// NewClientConfig derives the transport settings from the gateway configuration
func NewClientConfig(cfg config.CryptAPIConfig) ClientConfig {
	return ClientConfig{
		MaxConnections: cfg.MaxConnections,
		Timeout:        cfg.Timeout,
	}
}

// DefaultClient implements the Client interface on top of a pooled resty client
type DefaultClient struct {
	client    *resty.Client
	transport *http.Transport
	closeOnce sync.Once
}

// NewDefaultClient creates a new DefaultClient owning its own connection pool
func NewDefaultClient(cfg ClientConfig, log *logger.Logger) Client {
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = config.DefaultMaxConnections
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          cfg.MaxConnections,
		MaxIdleConnsPerHost:   cfg.MaxConnections,
		MaxConnsPerHost:       cfg.MaxConnections,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	client := resty.New().
		SetTransport(transport).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if log != nil {
		client.SetLogger(log)
	}

	return &DefaultClient{
		client:    client,
		transport: transport,
	}
}

// Send makes an HTTP request and returns the response
func (c *DefaultClient) Send(ctx context.Context, req *Request) (*Response, error) {
	r := c.client.R().
		SetContext(ctx).
		SetHeaders(req.Headers).
		SetQueryParams(req.Query)

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unable to reach the payment gateway").
			WithReportableDetails(map[string]any{
				"method": req.Method,
				"url":    req.URL,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	headers := make(map[string]string)
	for k, v := range resp.Header() {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	// Return HTTP error for non-2xx responses
	if resp.StatusCode() >= 400 {
		return nil, NewError(resp.StatusCode(), resp.Body())
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    headers,
	}, nil
}

// Close drops idle pooled connections; in-flight requests finish normally
func (c *DefaultClient) Close() error {
	c.closeOnce.Do(func() {
		c.transport.CloseIdleConnections()
	})
	return nil
}

package cryptapi

import (
	"context"
	"net/http"
	"sync"

	"github.com/flexprice/cryptapi/internal/config"
	"github.com/flexprice/cryptapi/internal/httpclient"
	"github.com/flexprice/cryptapi/internal/logger"
)

// recordingClient is an httpclient.Client answering every request with a canned reply
type recordingClient struct {
	mu       sync.Mutex
	requests []*httpclient.Request
	opened   int
	closed   int

	status int
	body   string
	err    error
}

func newRecordingClient(body string) *recordingClient {
	return &recordingClient{status: http.StatusOK, body: body}
}

func (c *recordingClient) Send(_ context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if c.status >= 400 {
		return nil, httpclient.NewError(c.status, []byte(c.body))
	}
	return &httpclient.Response{StatusCode: c.status, Body: []byte(c.body)}, nil
}

func (c *recordingClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *recordingClient) requestCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func (c *recordingClient) lastRequest() *httpclient.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return nil
	}
	return c.requests[len(c.requests)-1]
}

// newTestGateway returns a Gateway whose transports are all the given client
func newTestGateway(client *recordingClient) *Gateway {
	cfg := config.GetDefaultConfig().CryptAPI
	log := logger.NewNopLogger()
	return &Gateway{
		cfg:        cfg,
		dispatcher: newDispatcher(cfg, log),
		logger:     log,
		newClient: func() httpclient.Client {
			client.mu.Lock()
			client.opened++
			client.mu.Unlock()
			return client
		},
	}
}

func testConfig(baseURL string) *config.Configuration {
	cfg := config.GetDefaultConfig()
	cfg.CryptAPI.BaseURL = baseURL
	return cfg
}

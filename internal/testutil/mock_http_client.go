package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/flexprice/cryptapi/internal/httpclient"
)

// MockHTTPClient implements httpclient.Client with canned replies keyed by URL suffix
type MockHTTPClient struct {
	mu       sync.RWMutex
	routes   map[string]MockResponse
	requests []*httpclient.Request
	closed   int
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

// RegisterResponse registers a mock response for URLs ending with route
func (m *MockHTTPClient) RegisterResponse(route string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route] = resp
}

// RegisterJSONResponse registers a 200 reply with a JSON body
func (m *MockHTTPClient) RegisterJSONResponse(route string, body string) {
	m.RegisterResponse(route, MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
}

// Send implements the httpclient.Client interface. Like the real client, a
// status of 400 or above is returned as an *httpclient.Error.
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.requests = append(m.requests, req)

	// Longest suffix wins so "usdt/info/" beats "info/"
	var matched MockResponse
	var matchedRoute string
	for route, resp := range m.routes {
		if strings.HasSuffix(req.URL, route) && len(route) > len(matchedRoute) {
			matched = resp
			matchedRoute = route
		}
	}

	if matchedRoute == "" {
		return nil, httpclient.NewError(http.StatusNotFound, []byte("Not Found"))
	}
	if matched.StatusCode >= http.StatusBadRequest {
		return nil, httpclient.NewError(matched.StatusCode, matched.Body)
	}

	return &httpclient.Response{
		StatusCode: matched.StatusCode,
		Body:       matched.Body,
		Headers:    matched.Headers,
	}, nil
}

// Close implements the httpclient.Client interface
func (m *MockHTTPClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

// Requests returns the requests sent so far, oldest first
func (m *MockHTTPClient) Requests() []*httpclient.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*httpclient.Request(nil), m.requests...)
}

// CloseCount returns how many times Close was called
func (m *MockHTTPClient) CloseCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Clear removes all registered responses and recorded requests
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string]MockResponse)
	m.requests = nil
}

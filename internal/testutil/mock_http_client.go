package testutil

import (
	"context"
	"sync"

	"github.com/memberly/memberly/internal/httpclient"
)

// MockHTTPClient is a configurable httpclient.Client for integration client
// tests.
type MockHTTPClient struct {
	mu       sync.Mutex
	Response *httpclient.Response
	Err      error
	Requests []*httpclient.Request
}

func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{}
}

func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

package mocks

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
)

type HTTPClient struct {
	mock.Mock
}

func (c *HTTPClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	args := c.Called(ctx, url, headers)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func (c *HTTPClient) PostJSON(ctx context.Context, url string, payload any, headers map[string]string) (*http.Response, error) {
	args := c.Called(ctx, url, payload, headers)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := c.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/Behyna/hypeconnect/pkg/httpclient"
)

const (
	InitializeEndpoint = "/transaction/initialize"
	VerifyEndpoint     = "/transaction/verify/"
)

type Client interface {
	Initialize(ctx context.Context, request InitializeRequest) (InitializeResponse, error)
	Verify(ctx context.Context, reference string) (VerifyResponse, error)
}

type client struct {
	http   httpclient.HTTPClient
	config Config
}

func NewClient(cfg Config, http httpclient.HTTPClient) Client {
	return &client{config: cfg, http: http}
}

func (c *client) Initialize(ctx context.Context, request InitializeRequest) (InitializeResponse, error) {
	resp, err := c.http.PostJSON(ctx, c.config.BaseURL+InitializeEndpoint, request, c.headers())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return InitializeResponse{}, ErrTimeout
		}
		return InitializeResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return InitializeResponse{}, MapStatusToError(resp.StatusCode)
	}

	var response InitializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return InitializeResponse{}, fmt.Errorf("decoding error: %w", err)
	}

	if !response.Status {
		return InitializeResponse{}, fmt.Errorf("%w: %s", ErrRejected, response.Message)
	}

	return response, nil
}

func (c *client) Verify(ctx context.Context, reference string) (VerifyResponse, error) {
	resp, err := c.http.Get(ctx, c.config.BaseURL+VerifyEndpoint+url.PathEscape(reference), c.headers())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return VerifyResponse{}, ErrTimeout
		}
		return VerifyResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return VerifyResponse{}, MapStatusToError(resp.StatusCode)
	}

	var response VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return VerifyResponse{}, fmt.Errorf("decoding error: %w", err)
	}

	return response, nil
}

func (c *client) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.config.SecretKey,
	}
}

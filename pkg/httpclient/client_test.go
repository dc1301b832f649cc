package httpclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Behyna/hypeconnect/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockServer() *httptest.Server {
	handler := http.NewServeMux()
	handler.HandleFunc("/headers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"authorization": r.Header.Get("Authorization"),
			"userAgent":     r.Header.Get("User-Agent"),
			"accept":        r.Header.Get("Accept"),
			"contentType":   r.Header.Get("Content-Type"),
		})
	})
	handler.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	})
	handler.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(handler)
}

func decodeHeaders(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	defer resp.Body.Close()

	var seen map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&seen))
	return seen
}

func TestHttpClient_Get(t *testing.T) {
	server := setupMockServer()
	defer server.Close()

	client := httpclient.NewHTTPClient(5 * time.Second)

	resp, err := client.Get(context.Background(), server.URL+"/headers", map[string]string{"Authorization": "Bearer sk_test"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	seen := decodeHeaders(t, resp)
	assert.Equal(t, "Bearer sk_test", seen["authorization"])
	assert.Equal(t, httpclient.DefaultUserAgent, seen["userAgent"])
	assert.Equal(t, "application/json", seen["accept"])
}

func TestHttpClient_PostJSON(t *testing.T) {
	server := setupMockServer()
	defer server.Close()

	client := httpclient.NewHTTPClient(5 * time.Second)

	t.Run("encodes payload", func(t *testing.T) {
		resp, err := client.PostJSON(context.Background(), server.URL+"/echo",
			map[string]int64{"amount": 2500000}, nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":2500000}`, string(body))
	})

	t.Run("sets content type", func(t *testing.T) {
		resp, err := client.PostJSON(context.Background(), server.URL+"/headers", struct{}{}, nil)
		require.NoError(t, err)

		assert.Equal(t, "application/json", decodeHeaders(t, resp)["contentType"])
	})

	t.Run("unencodable payload is never sent", func(t *testing.T) {
		_, err := client.PostJSON(context.Background(), server.URL+"/echo", map[string]any{"ch": make(chan int)}, nil)

		assert.ErrorContains(t, err, "encoding error")
	})
}

func TestHttpClient_Options(t *testing.T) {
	server := setupMockServer()
	defer server.Close()

	client := httpclient.NewHTTPClient(5*time.Second,
		httpclient.WithUserAgent("hypeconnect-alerts/2.0"),
		httpclient.WithHeader("Authorization", "Bearer base"))

	t.Run("base headers apply", func(t *testing.T) {
		resp, err := client.Get(context.Background(), server.URL+"/headers", nil)
		require.NoError(t, err)

		seen := decodeHeaders(t, resp)
		assert.Equal(t, "hypeconnect-alerts/2.0", seen["userAgent"])
		assert.Equal(t, "Bearer base", seen["authorization"])
	})

	t.Run("call headers win", func(t *testing.T) {
		resp, err := client.Get(context.Background(), server.URL+"/headers", map[string]string{"Authorization": "Bearer call"})
		require.NoError(t, err)

		assert.Equal(t, "Bearer call", decodeHeaders(t, resp)["authorization"])
	})

	t.Run("do keeps request headers", func(t *testing.T) {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/headers", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer request")

		resp, err := client.Do(req)
		require.NoError(t, err)

		seen := decodeHeaders(t, resp)
		assert.Equal(t, "Bearer request", seen["authorization"])
		assert.Equal(t, "hypeconnect-alerts/2.0", seen["userAgent"])
	})
}

func TestHttpClient_Timeout(t *testing.T) {
	server := setupMockServer()
	defer server.Close()

	client := httpclient.NewHTTPClient(50 * time.Millisecond)

	_, err := client.Get(context.Background(), server.URL+"/slow", nil)
	assert.Error(t, err)
}

package common

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BuildRequest(t *testing.T) {
	req, err := BuildRequest(context.Background(), http.MethodPost, "https://podm.example/redfish/v1/Nodes", []byte(`{"Name":"n"}`), &Credential{User: "admin", Pass: "secret"})
	require.NoError(t, err)

	user, pass, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "admin", user)
	assert.Equal(t, "secret", pass)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	body, err := req.BodyBytes()
	require.NoError(t, err)
	assert.Equal(t, `{"Name":"n"}`, string(body))

	req, err = BuildRequest(context.Background(), http.MethodGet, "https://podm.example/redfish/v1", nil, nil)
	require.NoError(t, err)
	_, _, ok = req.BasicAuth()
	assert.False(t, ok)
	assert.Empty(t, req.Header.Get("Content-Type"))

	_, err = BuildRequest(context.Background(), "BAD METHOD", "://", nil, nil)
	assert.Error(t, err)
}

// Test that requests are routed through a configured proxy.
func Test_HTTPProxy_RoutesThroughProxy(t *testing.T) {
	var proxyHits int32

	// Mock HTTP proxy server that returns a canned response
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&proxyHits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer proxy.Close()

	proxyURL, err := url.Parse(proxy.URL)
	require.NoError(t, err)

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 0
	client.HTTPClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}

	// Request to any HTTP URL should go via proxy
	uri := "http://unreachable.example/redfish/v1/Chassis/"
	req, err := BuildRequest(context.Background(), http.MethodGet, uri, nil, &Credential{User: "admin", Pass: "admin"})
	if err != nil {
		t.Fatalf("BuildRequest error: %v", err)
	}

	resp, err := DoRequest(client, req)
	if err != nil {
		t.Fatalf("DoRequest error: %v", err)
	}
	defer EmptyAndCloseBody(resp)

	if got, want := atomic.LoadInt32(&proxyHits), int32(1); got != want {
		t.Fatalf("proxy hits = %d, want %d", got, want)
	}

	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", string(body))
	}
}

func Test_IsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(http.StatusOK))
	assert.True(t, IsSuccess(http.StatusNoContent))
	assert.False(t, IsSuccess(http.StatusMultipleChoices))
	assert.False(t, IsSuccess(http.StatusUnauthorized))
}

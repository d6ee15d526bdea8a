/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package connector implements the HTTP transport used by resources to
// talk to an RSD management service.
package connector

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/comcast/rsdfish/buildinfo"
	"github.com/comcast/rsdfish/common"
	"github.com/comcast/rsdfish/resource"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/nrednav/cuid2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const traceHeader = "X-Request-ID"

var (
	log *zap.Logger

	ErrNoEndpoint = errors.New("no management endpoint configured")
)

// Options configures a Connector.
type Options struct {
	// Endpoint is a URL or a bare host[:port], in which case Scheme is used.
	Endpoint string
	Scheme   string
	User     string
	Pass     string
	Insecure bool
	Timeout  time.Duration

	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Credentials and CredentialTarget enable vault backed credentials,
	// which take precedence over User and Pass and are rotated on a 401.
	Credentials      *common.Credentials
	CredentialTarget string

	// Registerer receives the client metrics. Nil disables registration.
	Registerer prometheus.Registerer
}

// Connector is a resource.Transport over HTTP(S).
type Connector struct {
	base   *url.URL
	client *retryablehttp.Client
	creds  *common.Credentials
	target string
	static *common.Credential
	instr  *Instrumentation
}

// New builds a Connector. A proxy set on ctx with WithProxyURL overrides
// the HTTP(S)_PROXY environment.
func New(ctx context.Context, opts Options) (*Connector, error) {
	log = zap.L()

	base, err := parseEndpoint(opts.Endpoint, opts.Scheme)
	if err != nil {
		return nil, err
	}

	tr := &http.Transport{
		Dial:                  (&net.Dialer{Timeout: 3 * time.Second}).Dial,
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: opts.Insecure,
			Renegotiation:      tls.RenegotiateOnceAsClient,
		},
		TLSHandshakeTimeout: 10 * time.Second,
	}

	p, err := proxyURLFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if p != nil {
		proxy := *p
		tr.Proxy = func(r *http.Request) (*url.URL, error) { return &proxy, nil }
	}

	instr := NewInstrumentation(opts.Registerer)

	retryClient := retryablehttp.NewClient()
	retryClient.CheckRetry = retryablehttp.ErrorPropagatedRetryPolicy
	retryClient.HTTPClient.Transport = instr.RoundTripper(tr)
	retryClient.HTTPClient.Timeout = opts.Timeout
	retryClient.Logger = nil
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.RetryMax = opts.RetryMax
	retryClient.RequestLogHook = func(l retryablehttp.Logger, r *http.Request, i int) {
		retryCount := i
		if retryCount > 0 {
			log.Error("api call "+r.URL.String()+" failed, retry #"+strconv.Itoa(retryCount), zap.String("trace_id", r.Header.Get(traceHeader)))
		}
	}
	// keep the last response once retries are exhausted so its status can
	// be reported
	retryClient.ErrorHandler = func(resp *http.Response, err error, numTries int) (*http.Response, error) {
		if resp != nil {
			return resp, nil
		}
		return nil, fmt.Errorf("giving up after %d attempt(s): %w", numTries, err)
	}

	c := &Connector{
		base:   base,
		client: retryClient,
		creds:  opts.Credentials,
		target: opts.CredentialTarget,
		instr:  instr,
	}
	if opts.User != "" || opts.Pass != "" {
		c.static = &common.Credential{User: opts.User, Pass: opts.Pass}
	}
	return c, nil
}

func parseEndpoint(endpoint, scheme string) (*url.URL, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if u, err := url.ParseRequestURI(endpoint); err == nil && u.Host != "" {
		return u, nil
	}
	if scheme == "" {
		scheme = "https"
	}
	u, err := url.Parse(scheme + "://" + endpoint)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid management endpoint %q", endpoint)
	}
	return u, nil
}

// Endpoint returns the base URL requests are resolved against.
func (c *Connector) Endpoint() string {
	return c.base.String()
}

func (c *Connector) Get(ctx context.Context, path string) (map[string]any, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("decoding response of %s: %w", path, err)
	}
	return doc, nil
}

func (c *Connector) Post(ctx context.Context, path string, data any) (*resource.Response, error) {
	return c.do(ctx, http.MethodPost, path, data)
}

func (c *Connector) Patch(ctx context.Context, path string, data any) (*resource.Response, error) {
	return c.do(ctx, http.MethodPatch, path, data)
}

func (c *Connector) do(ctx context.Context, method, path string, data any) (*resource.Response, error) {
	var body []byte
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encoding %s body for %s: %w", method, path, err)
		}
		body = b
	}

	uri, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	traceID := cuid2.Generate()

	cred, err := c.credential(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, method, uri, body, cred, traceID)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.creds.HasVault() && c.target != "" {
		// Credentials may have rotated, clear cache, go to vault and get the latest
		common.EmptyAndCloseBody(resp)
		log.Info("credentials rejected, fetching them again from vault", zap.String("target", c.target), zap.String("trace_id", traceID))

		cred, err = c.creds.Rotate(ctx, c.target)
		if err != nil {
			return nil, err
		}
		resp, err = c.send(ctx, method, uri, body, cred, traceID)
		if err != nil {
			return nil, fmt.Errorf("retry DoRequest failed - %w", err)
		}
	}
	defer common.EmptyAndCloseBody(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading Response Body - %w", err)
	}

	if !common.IsSuccess(resp.StatusCode) {
		httpErr := &resource.HTTPError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: respBody}
		log.Error("request failed", zap.String("method", method), zap.String("url", uri), zap.Int("status", resp.StatusCode), zap.String("trace_id", traceID))
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidCredential, httpErr)
		}
		return nil, httpErr
	}

	return &resource.Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}

func (c *Connector) send(ctx context.Context, method, uri string, body []byte, cred *common.Credential, traceID string) (*http.Response, error) {
	req, err := common.BuildRequest(ctx, method, uri, body, cred)
	if err != nil {
		return nil, err
	}
	req.Header.Set(traceHeader, traceID)
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	start := time.Now()
	resp, err := common.DoRequest(c.client, req)
	if err != nil {
		log.Error("request error", zap.String("method", method), zap.String("url", uri), zap.String("trace_id", traceID), zap.Error(err))
		return nil, err
	}
	log.Debug("request completed",
		zap.String("method", method),
		zap.String("url", uri),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("trace_id", traceID))
	return resp, nil
}

func (c *Connector) credential(ctx context.Context) (*common.Credential, error) {
	if c.target != "" && c.creds.HasVault() {
		return c.creds.Lookup(ctx, c.target)
	}
	if c.target != "" && c.creds != nil {
		if cred, ok := c.creds.Get(c.target); ok {
			return cred, nil
		}
	}
	return c.static, nil
}

func (c *Connector) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid resource path %q: %w", path, err)
	}
	return c.base.ResolveReference(ref).String(), nil
}

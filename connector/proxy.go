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

package connector

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

var ErrInvalidProxy = errors.New("proxy URL needs a scheme and a host")

type proxyCtxKey string

const proxyHostKey proxyCtxKey = "proxy-host"

// WithProxyURL returns a new context that carries an override proxy URL.
// It is honored by New.
func WithProxyURL(ctx context.Context, proxy string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, proxyHostKey, proxy)
}

// proxyURLFromContext returns the override proxy carried by ctx, nil when
// there is none. A proxy without scheme and host is an error.
func proxyURLFromContext(ctx context.Context) (*url.URL, error) {
	if ctx == nil {
		return nil, nil
	}
	s, _ := ctx.Value(proxyHostKey).(string)
	if s == "" {
		return nil, nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", s, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", s, ErrInvalidProxy)
	}
	return u, nil
}

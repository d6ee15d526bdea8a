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

package resource

import (
	"context"
	"net/http"
)

// Transport performs the HTTP exchanges a resource needs. Paths are relative
// to the service endpoint.
type Transport interface {
	Get(ctx context.Context, path string) (map[string]any, error)
	Post(ctx context.Context, path string, data any) (*Response, error)
	Patch(ctx context.Context, path string, data any) (*Response, error)
}

// Response is the result of a mutating request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Location returns the Location header, empty if r is nil.
func (r *Response) Location() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return r.Header.Get("Location")
}

// Link is the JSON form of a reference to another resource.
type Link struct {
	ODataID string `json:"@odata.id"`
}

// Links wraps paths into link objects, keeping their order.
func Links(paths []string) []Link {
	out := make([]Link, len(paths))
	for i, p := range paths {
		out[i] = Link{ODataID: p}
	}
	return out
}

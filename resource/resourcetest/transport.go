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

// Package resourcetest provides an in-memory Transport for tests.
package resourcetest

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/comcast/rsdfish/resource"
)

// Request records a mutating call.
type Request struct {
	Path string
	Data any
}

// Transport serves documents registered by path and records every request.
// Documents are stored encoded, so each Get returns a fresh copy.
type Transport struct {
	mu sync.Mutex

	docs    map[string][]byte
	errs    map[string]error
	gets    map[string]int
	posts   []Request
	patches []Request

	// PostHeader is returned with every Post response.
	PostHeader http.Header
	// MutateErr, when set, is returned by Post and Patch.
	MutateErr error
}

func NewTransport() *Transport {
	return &Transport{
		docs:       make(map[string][]byte),
		errs:       make(map[string]error),
		gets:       make(map[string]int),
		PostHeader: http.Header{},
	}
}

// Add registers doc at path, replacing any previous document.
func (t *Transport) Add(tb testing.TB, path string, doc map[string]any) {
	tb.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		tb.Fatalf("encoding document for %s: %v", path, err)
	}
	t.mu.Lock()
	t.docs[path] = b
	t.mu.Unlock()
}

// AddFile registers the JSON fixture file at path.
func (t *Transport) AddFile(tb testing.TB, path, file string) {
	tb.Helper()
	b, err := os.ReadFile(file)
	if err != nil {
		tb.Fatalf("reading fixture %s: %v", file, err)
	}
	if !json.Valid(b) {
		tb.Fatalf("fixture %s is not valid JSON", file)
	}
	t.mu.Lock()
	t.docs[path] = b
	t.mu.Unlock()
}

// Fail makes every Get of path return err.
func (t *Transport) Fail(path string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err == nil {
		delete(t.errs, path)
		return
	}
	t.errs[path] = err
}

func (t *Transport) Get(ctx context.Context, path string) (map[string]any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gets[path]++
	if err := t.errs[path]; err != nil {
		return nil, err
	}
	b, ok := t.docs[path]
	if !ok {
		return nil, &resource.HTTPError{Method: http.MethodGet, Path: path, StatusCode: http.StatusNotFound}
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (t *Transport) Post(ctx context.Context, path string, data any) (*resource.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.posts = append(t.posts, Request{Path: path, Data: data})
	if t.MutateErr != nil {
		return nil, t.MutateErr
	}
	return &resource.Response{StatusCode: http.StatusCreated, Header: t.PostHeader.Clone()}, nil
}

func (t *Transport) Patch(ctx context.Context, path string, data any) (*resource.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.patches = append(t.patches, Request{Path: path, Data: data})
	if t.MutateErr != nil {
		return nil, t.MutateErr
	}
	return &resource.Response{StatusCode: http.StatusNoContent, Header: http.Header{}}, nil
}

// Gets returns how many times path was fetched.
func (t *Transport) Gets(path string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gets[path]
}

// TotalGets returns the number of fetches across all paths.
func (t *Transport) TotalGets() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.gets {
		n += c
	}
	return n
}

func (t *Transport) Posts() []Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Request(nil), t.posts...)
}

func (t *Transport) Patches() []Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Request(nil), t.patches...)
}

// JSON encodes a recorded request body and decodes it into a generic value,
// which lets tests compare typed bodies against literal maps.
func JSON(tb testing.TB, data any) any {
	tb.Helper()
	b, err := json.Marshal(data)
	if err != nil {
		tb.Fatalf("encoding request body: %v", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		tb.Fatalf("decoding request body: %v", err)
	}
	return out
}

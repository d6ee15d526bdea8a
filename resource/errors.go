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
	"errors"
	"fmt"
	"strings"
)

// MissingAttributeError is returned when a required field or link is absent
// from the JSON of a resource.
type MissingAttributeError struct {
	Attribute string
	Resource  string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("the attribute %s is missing from the resource %s", e.Attribute, e.Resource)
}

// MalformedAttributeError is returned when a field is present but cannot be
// converted to its declared type or has the wrong JSON shape.
type MalformedAttributeError struct {
	Attribute string
	Resource  string
	Value     any
	Err       error
}

func (e *MalformedAttributeError) Error() string {
	return fmt.Sprintf("the attribute %s is malformed in the resource %s: value %v: %v", e.Attribute, e.Resource, e.Value, e.Err)
}

func (e *MalformedAttributeError) Unwrap() error {
	return e.Err
}

// MissingActionError is returned when an action is not advertised in the
// Actions block of a resource.
type MissingActionError struct {
	Action   string
	Resource string
}

func (e *MissingActionError) Error() string {
	return fmt.Sprintf("the action %s is missing from the resource %s", e.Action, e.Resource)
}

// InvalidParameterValueError is returned when an action parameter is not one
// of the values the service advertises.
type InvalidParameterValueError struct {
	Parameter   string
	Value       any
	ValidValues []string
}

func (e *InvalidParameterValueError) Error() string {
	return fmt.Sprintf("the parameter %q value \"%v\" is invalid, valid values are: %s",
		e.Parameter, e.Value, strings.Join(e.ValidValues, ", "))
}

// HTTPError is returned by a Transport when the service answers with a
// non-2xx status code.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: HTTP status %d", e.Method, e.Path, e.StatusCode)
}

// ResourceFetchError is returned when the JSON of a resource could not be
// retrieved. StatusCode is zero for connectivity failures.
type ResourceFetchError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *ResourceFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("unable to fetch resource %s (HTTP status %d): %v", e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("unable to fetch resource %s: %v", e.Path, e.Err)
}

func (e *ResourceFetchError) Unwrap() error {
	return e.Err
}

func newFetchError(path string, err error) *ResourceFetchError {
	fe := &ResourceFetchError{Path: path, Err: err}
	var he *HTTPError
	if errors.As(err, &he) {
		fe.StatusCode = he.StatusCode
	}
	return fe
}

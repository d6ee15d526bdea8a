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
	"errors"
	"net/url"
	"slices"
	"strings"
)

// Action declares an entry of the Actions block. The bound composite holds
// target_uri and, when advertised, action_info_path.
func Action(name, key string) Spec {
	return Composite(name, key).Fields(
		Field("target_uri", "target").Required(),
		Field("action_info_path", "@Redfish.ActionInfo").Convert(Reference),
	)
}

// Action returns the bound action called name from the "actions" composite.
func (r *Resource) Action(ctx context.Context, name string) (*Values, error) {
	attrs, err := r.Attrs(ctx)
	if err != nil {
		return nil, err
	}
	if a := attrs.Composite("actions").Composite(name); a != nil {
		return a, nil
	}
	key := name
	if actions, ok := r.fields.Lookup("actions"); ok {
		if spec, ok := actions.Inner().Lookup(name); ok {
			key = actions.path.join(spec.path...).String()
		}
	}
	return nil, &MissingActionError{Action: key, Resource: r.path}
}

// CheckAllowed returns an InvalidParameterValueError when value is not in
// allowed.
func CheckAllowed(parameter, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &InvalidParameterValueError{Parameter: parameter, Value: value, ValidValues: allowed}
}

// ErrNoLocation is returned when a creation response does not say where the
// new resource lives.
var ErrNoLocation = errors.New("creation response carries no Location header")

// Create posts body to target and returns the identity of the created
// member of the collection at collectionPath.
func Create(ctx context.Context, conn Transport, target, collectionPath string, body any) (string, error) {
	resp, err := conn.Post(ctx, target, body)
	if err != nil {
		return "", err
	}
	location := resp.Location()
	if location == "" {
		return "", ErrNoLocation
	}
	return IdentityFromLocation(location, collectionPath), nil
}

// IdentityFromLocation derives the path of a created resource from the
// Location header of the creation response. The result starts at the
// collection path; when the collection path does not occur in location, the
// URL path of location is used.
func IdentityFromLocation(location, collectionPath string) string {
	if collectionPath != "" {
		if i := strings.Index(location, collectionPath); i >= 0 {
			return location[i:]
		}
	}
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		return u.Path
	}
	return location
}

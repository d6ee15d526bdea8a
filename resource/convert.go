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
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/comcast/rsdfish/oem"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errNotObject = errors.New("expected a JSON object")
	errNotArray  = errors.New("expected a JSON array")
)

// Int accepts JSON numbers without a fractional part and numeric strings.
func Int(v any) (any, error) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return nil, fmt.Errorf("%v is not an integer", t)
		}
		if t >= math.MaxInt64 || t < math.MinInt64 {
			return nil, fmt.Errorf("%v overflows an integer", t)
		}
		return int(t), nil
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return nil, err
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil, err
		}
		return i, nil
	}
	return nil, fmt.Errorf("cannot convert %T to an integer", v)
}

func Float(v any) (any, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	return nil, fmt.Errorf("cannot convert %T to a number", v)
}

func Bool(v any) (any, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(t))
	}
	return nil, fmt.Errorf("cannot convert %T to a boolean", v)
}

func String(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	}
	return nil, fmt.Errorf("cannot convert %T to a string", v)
}

// Strings converts an array of strings.
func Strings(v any) (any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errNotArray
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("array element %v is not a string", item)
		}
		out = append(out, s)
	}
	return out, nil
}

// Ints converts an array of integers.
func Ints(v any) (any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errNotArray
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		i, err := Int(item)
		if err != nil {
			return nil, err
		}
		out = append(out, i.(int))
	}
	return out, nil
}

// Identity returns the @odata.id of a link object, or nil when the object
// has none.
func Identity(v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	id, ok := m["@odata.id"]
	if !ok || id == nil {
		return nil, nil
	}
	s, ok := id.(string)
	if !ok {
		return nil, fmt.Errorf("@odata.id %v is not a string", id)
	}
	return s, nil
}

// Reference accepts either a plain path or a link object.
func Reference(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return Identity(v)
}

// Identities converts an array of link objects, keeping order and
// duplicates. Links without @odata.id are skipped.
func Identities(v any) (any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errNotArray
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		id, err := Identity(item)
		if err != nil {
			return nil, err
		}
		if id == nil {
			zap.L().Warn("skipping link without @odata.id", zap.Any("link", item))
			continue
		}
		out = append(out, id.(string))
	}
	return out, nil
}

// MembersIdentities converts the Members array of a collection.
func MembersIdentities(v any) (any, error) {
	return Identities(v)
}

// AllowableValues accepts an array of plain strings or link objects.
func AllowableValues(v any) (any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errNotArray
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			id, err := Identity(t)
			if err != nil {
				return nil, err
			}
			if id != nil {
				out = append(out, id.(string))
			}
		default:
			return nil, fmt.Errorf("allowable value %v is neither a string nor a link", item)
		}
	}
	return out, nil
}

func UUID(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("cannot convert %T to a UUID", v)
	}
	return uuid.Parse(s)
}

// OEM parses an Oem block into its vendor extensions.
func OEM(v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return oem.Parse(m)
}

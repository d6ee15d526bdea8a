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
	"sort"

	"github.com/comcast/rsdfish/oem"
	"github.com/google/uuid"
)

// Values holds the attributes bound from a document by a Fields table. All
// getters are safe on a nil *Values and return zero values.
type Values struct {
	values map[string]any
}

// Get returns the bound value of name, nil if absent or undeclared.
func (v *Values) Get(name string) any {
	if v == nil {
		return nil
	}
	return v.values[name]
}

// Has reports whether name was declared in the table that produced v.
func (v *Values) Has(name string) bool {
	if v == nil {
		return false
	}
	_, ok := v.values[name]
	return ok
}

func (v *Values) String(name string) string {
	s, _ := v.Get(name).(string)
	return s
}

func (v *Values) Int(name string) (int, bool) {
	i, ok := v.Get(name).(int)
	return i, ok
}

func (v *Values) Float(name string) (float64, bool) {
	switch f := v.Get(name).(type) {
	case float64:
		return f, true
	case int:
		return float64(f), true
	}
	return 0, false
}

func (v *Values) Bool(name string) (bool, bool) {
	b, ok := v.Get(name).(bool)
	return b, ok
}

func (v *Values) Strings(name string) []string {
	s, _ := v.Get(name).([]string)
	return s
}

func (v *Values) Ints(name string) []int {
	i, _ := v.Get(name).([]int)
	return i
}

func (v *Values) UUID(name string) (uuid.UUID, bool) {
	u, ok := v.Get(name).(uuid.UUID)
	return u, ok
}

func (v *Values) OEM(name string) *oem.Oem {
	o, _ := v.Get(name).(*oem.Oem)
	return o
}

// Composite returns a nested composite, nil when it was absent.
func (v *Values) Composite(name string) *Values {
	c, _ := v.Get(name).(*Values)
	return c
}

// List returns a nested list, empty when it was absent.
func (v *Values) List(name string) []*Values {
	l, _ := v.Get(name).([]*Values)
	return l
}

// Map returns an undeclared JSON object kept as-is.
func (v *Values) Map(name string) map[string]any {
	m, _ := v.Get(name).(map[string]any)
	return m
}

// Names returns the bound attribute names, sorted.
func (v *Values) Names() []string {
	if v == nil {
		return nil
	}
	names := make([]string, 0, len(v.values))
	for k := range v.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AsMap converts v, including nested composites and lists, into plain maps
// suitable for encoding.
func (v *Values) AsMap() map[string]any {
	if v == nil {
		return nil
	}
	out := make(map[string]any, len(v.values))
	for k, val := range v.values {
		switch t := val.(type) {
		case *Values:
			out[k] = t.AsMap()
		case []*Values:
			items := make([]map[string]any, len(t))
			for i, item := range t {
				items[i] = item.AsMap()
			}
			out[k] = items
		case uuid.UUID:
			out[k] = t.String()
		case *oem.Oem:
			out[k] = t.Raw()
		default:
			out[k] = val
		}
	}
	return out
}

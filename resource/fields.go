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
	"strconv"
)

type specKind int

const (
	scalarKind specKind = iota
	compositeKind
	listKind
)

// Converter turns a raw JSON value into the typed value stored for a field.
// It is never called for absent or null values.
type Converter func(v any) (any, error)

// Spec declares how one attribute is read out of a JSON document. Specs are
// values: every builder method returns a modified copy.
type Spec struct {
	name     string
	path     Path
	required bool
	def      any
	convert  Converter
	kind     specKind
	fields   *Fields
}

// Field declares a scalar attribute found at path.
func Field(name string, path ...string) Spec {
	return Spec{name: name, path: Path(nil).join(path...), kind: scalarKind}
}

// Composite declares a nested object whose members are bound by their own
// specs. The bound value is a *Values, or nil when the object is absent.
func Composite(name string, path ...string) Spec {
	return Spec{name: name, path: Path(nil).join(path...), kind: compositeKind, fields: NewFields()}
}

// List declares an array of objects, each bound by the same specs. The bound
// value is a []*Values and is empty, never nil, when the array is absent.
func List(name string, path ...string) Spec {
	return Spec{name: name, path: Path(nil).join(path...), kind: listKind, fields: NewFields()}
}

func (s Spec) Required() Spec {
	s.required = true
	return s
}

func (s Spec) Default(v any) Spec {
	s.def = v
	return s
}

func (s Spec) Convert(fn Converter) Spec {
	s.convert = fn
	return s
}

// Fields adds or replaces inner specs of a composite or list spec. Calling it
// on a spec copied from another table extends that copy only.
func (s Spec) Fields(specs ...Spec) Spec {
	s.fields = s.fields.Extend(specs...)
	return s
}

// Name returns the attribute name bound by s.
func (s Spec) Name() string { return s.name }

// Path returns a copy of the JSON path of s.
func (s Spec) Path() Path { return Path(nil).join(s.path...) }

func (s Spec) IsRequired() bool { return s.required }

// Inner returns the inner table of a composite or list spec, nil for scalars.
func (s Spec) Inner() *Fields {
	if s.kind == scalarKind {
		return nil
	}
	return s.fields
}

// Fields is an ordered, immutable table of specs keyed by name. Extend and
// Without return new tables, leaving the receiver untouched, so a table
// declared for one API version can be overlaid by the next.
type Fields struct {
	specs []Spec
}

// NewFields builds a table. A later spec replaces an earlier one of the same
// name.
func NewFields(specs ...Spec) *Fields {
	return (*Fields)(nil).Extend(specs...)
}

// Extend returns a copy of f with specs added. A spec whose name already
// exists replaces the old one in place.
func (f *Fields) Extend(specs ...Spec) *Fields {
	out := &Fields{}
	if f != nil {
		out.specs = append(out.specs, f.specs...)
	}
	for _, s := range specs {
		if i := out.index(s.name); i >= 0 {
			out.specs[i] = s
			continue
		}
		out.specs = append(out.specs, s)
	}
	return out
}

// Without returns a copy of f with the named specs removed.
func (f *Fields) Without(names ...string) *Fields {
	out := &Fields{}
	if f == nil {
		return out
	}
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	for _, s := range f.specs {
		if _, ok := drop[s.name]; !ok {
			out.specs = append(out.specs, s)
		}
	}
	return out
}

func (f *Fields) Lookup(name string) (Spec, bool) {
	if i := f.index(name); i >= 0 {
		return f.specs[i], true
	}
	return Spec{}, false
}

// Names lists the attribute names in declaration order.
func (f *Fields) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.specs))
	for i, s := range f.specs {
		names[i] = s.name
	}
	return names
}

func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.specs)
}

func (f *Fields) index(name string) int {
	if f == nil {
		return -1
	}
	for i, s := range f.specs {
		if s.name == name {
			return i
		}
	}
	return -1
}

// Bind evaluates every spec of f against doc. resourcePath is only used to
// name the resource in errors.
func (f *Fields) Bind(doc map[string]any, resourcePath string) (*Values, error) {
	return f.bind(doc, resourcePath, nil)
}

func (f *Fields) bind(doc map[string]any, resourcePath string, prefix Path) (*Values, error) {
	values := &Values{values: make(map[string]any, f.Len())}
	if f == nil {
		return values, nil
	}
	for _, s := range f.specs {
		v, err := extract(doc, s, resourcePath, prefix)
		if err != nil {
			return nil, err
		}
		values.values[s.name] = v
	}
	return values, nil
}

// Extract evaluates a single spec against doc.
func Extract(doc map[string]any, spec Spec, resourcePath string) (any, error) {
	return extract(doc, spec, resourcePath, nil)
}

func extract(doc map[string]any, spec Spec, resourcePath string, prefix Path) (any, error) {
	raw, found, err := lookup(doc, spec.path, resourcePath, prefix)
	if err != nil {
		return nil, err
	}
	full := prefix.join(spec.path...)

	switch spec.kind {
	case compositeKind:
		return bindComposite(raw, found, spec, resourcePath, full)
	case listKind:
		return bindList(raw, found, spec, resourcePath, full)
	}

	if !found {
		if spec.required {
			return nil, &MissingAttributeError{Attribute: full.String(), Resource: resourcePath}
		}
		return spec.def, nil
	}
	if raw == nil || spec.convert == nil {
		return raw, nil
	}
	v, err := spec.convert(raw)
	if err != nil {
		return nil, &MalformedAttributeError{Attribute: full.String(), Resource: resourcePath, Value: raw, Err: err}
	}
	return v, nil
}

// lookup walks path through doc. A missing key, or a null before the last
// segment, reports not found. A null leaf is found with a nil value.
func lookup(doc map[string]any, path Path, resourcePath string, prefix Path) (any, bool, error) {
	var cur any = doc
	for i, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false, &MalformedAttributeError{
				Attribute: prefix.join(path[:i]...).String(),
				Resource:  resourcePath,
				Value:     cur,
				Err:       errNotObject,
			}
		}
		v, ok := m[key]
		if !ok {
			return nil, false, nil
		}
		if v == nil && i < len(path)-1 {
			return nil, false, nil
		}
		cur = v
	}
	return cur, true, nil
}

func bindComposite(raw any, found bool, spec Spec, resourcePath string, full Path) (any, error) {
	if !found || raw == nil {
		if spec.required {
			return nil, &MissingAttributeError{Attribute: full.String(), Resource: resourcePath}
		}
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &MalformedAttributeError{Attribute: full.String(), Resource: resourcePath, Value: raw, Err: errNotObject}
	}
	return spec.fields.bind(m, resourcePath, full)
}

func bindList(raw any, found bool, spec Spec, resourcePath string, full Path) (any, error) {
	if !found || raw == nil {
		if spec.required {
			return nil, &MissingAttributeError{Attribute: full.String(), Resource: resourcePath}
		}
		return []*Values{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &MalformedAttributeError{Attribute: full.String(), Resource: resourcePath, Value: raw, Err: errNotArray}
	}
	out := make([]*Values, 0, len(items))
	for i, item := range items {
		elem := full.join(strconv.Itoa(i))
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &MalformedAttributeError{Attribute: elem.String(), Resource: resourcePath, Value: item, Err: errNotObject}
		}
		v, err := spec.fields.bind(m, resourcePath, elem)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

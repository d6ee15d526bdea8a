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

	"go.uber.org/zap"
)

var (
	// ResourceFields are bound for every addressable resource.
	ResourceFields = NewFields(
		Field("identity", "Id").Required(),
		Field("name", "Name"),
		Field("description", "Description"),
		Field("odata_type", "@odata.type"),
	)

	// CollectionFields are bound for every collection.
	CollectionFields = NewFields(
		Field("name", "Name"),
		Field("description", "Description"),
		Field("odata_type", "@odata.type"),
		Field("members_identities", "Members").Convert(MembersIdentities).Default([]string{}),
	)
)

// Resource is a remote JSON document bound to a field table. It is fetched
// on first use and refetched only after it has been invalidated. A Resource
// is not safe for concurrent use.
type Resource struct {
	conn    Transport
	path    string
	version string
	fields  *Fields

	json  map[string]any
	attrs *Values
	stale bool
	gen   uint64
}

// New creates a resource handle. Nothing is fetched until an accessor needs
// the document.
func New(conn Transport, path, version string, fields *Fields) *Resource {
	return &Resource{
		conn:    conn,
		path:    path,
		version: version,
		fields:  fields,
		stale:   true,
	}
}

func (r *Resource) Path() string           { return r.path }
func (r *Resource) RedfishVersion() string { return r.version }
func (r *Resource) Conn() Transport        { return r.conn }
func (r *Resource) Fields() *Fields        { return r.fields }

// Generation identifies the current incarnation of the resource. It changes
// on every Invalidate or forced Refresh and is used to expire cached
// sub-resources.
func (r *Resource) Generation() uint64 { return r.gen }

// Stale reports whether the next accessor will fetch the document.
func (r *Resource) Stale() bool { return r.stale }

// Parse fetches the document if needed and binds every field. On failure
// the previously bound attributes are kept and the resource stays stale.
func (r *Resource) Parse(ctx context.Context) error {
	if !r.stale {
		return nil
	}
	log := zap.L()

	doc, err := r.conn.Get(ctx, r.path)
	if err != nil {
		log.Error("unable to fetch resource", zap.String("path", r.path), zap.Error(err))
		return newFetchError(r.path, err)
	}
	attrs, err := r.fields.Bind(doc, r.path)
	if err != nil {
		log.Error("unable to bind resource", zap.String("path", r.path), zap.Error(err))
		return err
	}
	r.json = doc
	r.attrs = attrs
	r.stale = false
	log.Debug("resource parsed", zap.String("path", r.path), zap.Uint64("generation", r.gen))
	return nil
}

// Invalidate marks the resource stale and discards cached sub-resources.
// No I/O is done.
func (r *Resource) Invalidate() {
	r.stale = true
	r.gen++
}

// Refresh invalidates the resource and, when force is set, refetches it
// immediately.
func (r *Resource) Refresh(ctx context.Context, force bool) error {
	r.Invalidate()
	if !force {
		return nil
	}
	return r.Parse(ctx)
}

// Attrs returns the bound attributes.
func (r *Resource) Attrs(ctx context.Context) (*Values, error) {
	if err := r.Parse(ctx); err != nil {
		return nil, err
	}
	return r.attrs, nil
}

// JSON returns the raw document.
func (r *Resource) JSON(ctx context.Context) (map[string]any, error) {
	if err := r.Parse(ctx); err != nil {
		return nil, err
	}
	return r.json, nil
}

func (r *Resource) Identity(ctx context.Context) (string, error) {
	attrs, err := r.Attrs(ctx)
	if err != nil {
		return "", err
	}
	return attrs.String("identity"), nil
}

func (r *Resource) Name(ctx context.Context) (string, error) {
	attrs, err := r.Attrs(ctx)
	if err != nil {
		return "", err
	}
	return attrs.String("name"), nil
}

// SubResourcePath resolves the link object found at path.
func (r *Resource) SubResourcePath(ctx context.Context, path ...string) (string, error) {
	doc, err := r.JSON(ctx)
	if err != nil {
		return "", err
	}
	p := Path(path)
	raw, found, err := lookup(doc, p, r.path, nil)
	if err != nil {
		return "", err
	}
	if !found || raw == nil {
		return "", &MissingAttributeError{Attribute: p.String(), Resource: r.path}
	}
	id, err := Identity(raw)
	if err != nil {
		return "", &MalformedAttributeError{Attribute: p.String(), Resource: r.path, Value: raw, Err: err}
	}
	if id == nil {
		return "", &MissingAttributeError{Attribute: p.join("@odata.id").String(), Resource: r.path}
	}
	return id.(string), nil
}

// SubResourcePaths resolves an array of link objects found at path.
func (r *Resource) SubResourcePaths(ctx context.Context, path ...string) ([]string, error) {
	doc, err := r.JSON(ctx)
	if err != nil {
		return nil, err
	}
	p := Path(path)
	raw, found, err := lookup(doc, p, r.path, nil)
	if err != nil {
		return nil, err
	}
	if !found || raw == nil {
		return nil, &MissingAttributeError{Attribute: p.String(), Resource: r.path}
	}
	ids, err := Identities(raw)
	if err != nil {
		return nil, &MalformedAttributeError{Attribute: p.String(), Resource: r.path, Value: raw, Err: err}
	}
	return ids.([]string), nil
}

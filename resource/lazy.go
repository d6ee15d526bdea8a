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
)

// Lazy caches a value derived from an owning resource, typically a linked
// sub-resource. The cached value is dropped whenever the owner's generation
// changes. The zero value is ready to use.
type Lazy[T any] struct {
	value T
	gen   uint64
	ok    bool
}

// Get returns the cached value or calls build to create it.
func (l *Lazy[T]) Get(ctx context.Context, owner *Resource, build func(context.Context) (T, error)) (T, error) {
	if l.ok && l.gen == owner.Generation() {
		return l.value, nil
	}
	v, err := build(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	l.value, l.gen, l.ok = v, owner.Generation(), true
	return v, nil
}

// Cached returns the value if it is still valid for owner.
func (l *Lazy[T]) Cached(owner *Resource) (T, bool) {
	if l.ok && l.gen == owner.Generation() {
		return l.value, true
	}
	var zero T
	return zero, false
}

// Linked resolves the link object at path in owner and caches the resource
// built from it.
func Linked[T any](ctx context.Context, owner *Resource, cache *Lazy[T], build func(path string) T, path ...string) (T, error) {
	return cache.Get(ctx, owner, func(ctx context.Context) (T, error) {
		p, err := owner.SubResourcePath(ctx, path...)
		if err != nil {
			var zero T
			return zero, err
		}
		return build(p), nil
	})
}

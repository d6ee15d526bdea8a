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

	"github.com/comcast/rsdfish/pool"
	"go.uber.org/zap"
)

// Parser is implemented by every resource type.
type Parser interface {
	Parse(ctx context.Context) error
}

// Collection is a resource listing the paths of its members. Members are
// built on request and never fetched by the collection itself.
type Collection[T Parser] struct {
	*Resource

	newMember func(conn Transport, path, version string) T
}

func NewCollection[T Parser](conn Transport, path, version string, newMember func(conn Transport, path, version string) T) *Collection[T] {
	return NewCollectionWithFields(conn, path, version, CollectionFields, newMember)
}

// NewCollectionWithFields is NewCollection for collections that carry
// attributes beyond the common ones.
func NewCollectionWithFields[T Parser](conn Transport, path, version string, fields *Fields, newMember func(conn Transport, path, version string) T) *Collection[T] {
	return &Collection[T]{
		Resource:  New(conn, path, version, fields),
		newMember: newMember,
	}
}

// MembersIdentities returns the member paths in document order, duplicates
// included.
func (c *Collection[T]) MembersIdentities(ctx context.Context) ([]string, error) {
	attrs, err := c.Attrs(ctx)
	if err != nil {
		return nil, err
	}
	return attrs.Strings("members_identities"), nil
}

// GetMember builds the member at identity. The identity is not checked
// against the collection.
func (c *Collection[T]) GetMember(identity string) T {
	return c.newMember(c.Conn(), identity, c.RedfishVersion())
}

// GetMembers builds one member per identity.
func (c *Collection[T]) GetMembers(ctx context.Context) ([]T, error) {
	ids, err := c.MembersIdentities(ctx)
	if err != nil {
		return nil, err
	}
	members := make([]T, 0, len(ids))
	for _, id := range ids {
		members = append(members, c.GetMember(id))
	}
	return members, nil
}

// LoadMembers builds every member and parses them with at most concurrency
// fetches in flight. Each member is parsed by a single worker. The members
// are returned together with the joined parse errors.
func (c *Collection[T]) LoadMembers(ctx context.Context, concurrency int) ([]T, error) {
	ids, err := c.MembersIdentities(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]T, len(ids))
	tasks := make([]*pool.Task, len(ids))
	for i, id := range ids {
		members[i] = c.GetMember(id)
		tasks[i] = pool.NewTask(id, members[i].Parse)
	}
	p := pool.NewPool(tasks, concurrency)
	p.Run(ctx)

	if err := p.Err(); err != nil {
		zap.L().Error("unable to load collection members", zap.String("collection", c.Path()), zap.Error(err))
		return members, err
	}
	return members, nil
}

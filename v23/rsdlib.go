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

package v23

import (
	"context"

	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/v22"
)

// RSDLib is the entry point of the RSD 2.3 API. Nodes and ethernet switches
// are linked from the top level of the service root.
type RSDLib struct {
	*v22.RSDLib
}

func NewRSDLib(conn resource.Transport, version string) *RSDLib {
	return &RSDLib{RSDLib: v22.NewRSDLib(conn, version)}
}

func (l *RSDLib) GetNodeCollection(ctx context.Context) (*NodeCollection, error) {
	p, v, err := l.Link(ctx, "Nodes")
	if err != nil {
		return nil, err
	}
	return NewNodeCollection(l.Conn(), p, v), nil
}

func (l *RSDLib) GetNode(ctx context.Context, identity string) (*Node, error) {
	v, err := l.RedfishVersion(ctx)
	if err != nil {
		return nil, err
	}
	return NewNode(l.Conn(), identity, v), nil
}

func (l *RSDLib) GetEthernetSwitchCollection(ctx context.Context) (*EthernetSwitchCollection, error) {
	p, v, err := l.Link(ctx, "EthernetSwitches")
	if err != nil {
		return nil, err
	}
	return NewEthernetSwitchCollection(l.Conn(), p, v), nil
}

func (l *RSDLib) GetEthernetSwitch(ctx context.Context, identity string) (*EthernetSwitch, error) {
	v, err := l.RedfishVersion(ctx)
	if err != nil {
		return nil, err
	}
	return NewEthernetSwitch(l.Conn(), identity, v), nil
}

func (l *RSDLib) GetFabricCollection(ctx context.Context) (*FabricCollection, error) {
	p, v, err := l.Link(ctx, "Fabrics")
	if err != nil {
		return nil, err
	}
	return NewFabricCollection(l.Conn(), p, v), nil
}

func (l *RSDLib) GetFabric(ctx context.Context, identity string) (*Fabric, error) {
	v, err := l.RedfishVersion(ctx)
	if err != nil {
		return nil, err
	}
	return NewFabric(l.Conn(), identity, v), nil
}

func (l *RSDLib) GetStorageServiceCollection(ctx context.Context) (*StorageServiceCollection, error) {
	p, v, err := l.Link(ctx, "StorageServices")
	if err != nil {
		return nil, err
	}
	return NewStorageServiceCollection(l.Conn(), p, v), nil
}

func (l *RSDLib) GetStorageService(ctx context.Context, identity string) (*StorageService, error) {
	v, err := l.RedfishVersion(ctx)
	if err != nil {
		return nil, err
	}
	return NewStorageService(l.Conn(), identity, v), nil
}

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

package v21

import (
	"context"

	"github.com/comcast/rsdfish/resource"
)

// RootPath is the path of the service root.
const RootPath = "/redfish/v1/"

var RootFields = resource.NewFields(
	resource.Field("identity", "Id"),
	resource.Field("name", "Name"),
	resource.Field("redfish_version", "RedfishVersion"),
	resource.Field("rsd_api_version", "Oem", "Intel_RackScale", "ApiVersion"),
	resource.Field("uuid", "UUID").Convert(resource.UUID),
)

// RSDLib is the entry point of the RSD 2.1 API. The service root is fetched
// on first use and every factory resolves its path from it.
type RSDLib struct {
	root    *resource.Resource
	version string
}

// NewRSDLib creates a facade over conn. version is used until the service
// root reports its own Redfish version.
func NewRSDLib(conn resource.Transport, version string) *RSDLib {
	return &RSDLib{root: resource.New(conn, RootPath, version, RootFields), version: version}
}

// Root returns the service root resource.
func (l *RSDLib) Root() *resource.Resource { return l.root }

func (l *RSDLib) Conn() resource.Transport { return l.root.Conn() }

// RedfishVersion returns the version advertised by the service root.
func (l *RSDLib) RedfishVersion(ctx context.Context) (string, error) {
	attrs, err := l.root.Attrs(ctx)
	if err != nil {
		return "", err
	}
	if v := attrs.String("redfish_version"); v != "" {
		return v, nil
	}
	return l.version, nil
}

// APIVersion returns the RSD API version advertised by the service root.
func (l *RSDLib) APIVersion(ctx context.Context) (string, error) {
	attrs, err := l.root.Attrs(ctx)
	if err != nil {
		return "", err
	}
	return attrs.String("rsd_api_version"), nil
}

// Link resolves the link object found under path in the service root.
func (l *RSDLib) Link(ctx context.Context, path ...string) (string, string, error) {
	p, err := l.root.SubResourcePath(ctx, path...)
	if err != nil {
		return "", "", err
	}
	v, err := l.RedfishVersion(ctx)
	if err != nil {
		return "", "", err
	}
	return p, v, nil
}

func (l *RSDLib) GetSystemCollection(ctx context.Context) (*SystemCollection, error) {
	p, v, err := l.Link(ctx, "Systems")
	if err != nil {
		return nil, err
	}
	return NewSystemCollection(l.Conn(), p, v), nil
}

func (l *RSDLib) GetSystem(ctx context.Context, identity string) (*System, error) {
	v, err := l.RedfishVersion(ctx)
	if err != nil {
		return nil, err
	}
	return NewSystem(l.Conn(), identity, v), nil
}

func (l *RSDLib) GetChassisCollection(ctx context.Context) (*ChassisCollection, error) {
	p, v, err := l.Link(ctx, "Chassis")
	if err != nil {
		return nil, err
	}
	return NewChassisCollection(l.Conn(), p, v), nil
}

func (l *RSDLib) GetChassis(ctx context.Context, identity string) (*Chassis, error) {
	v, err := l.RedfishVersion(ctx)
	if err != nil {
		return nil, err
	}
	return NewChassis(l.Conn(), identity, v), nil
}

func (l *RSDLib) GetManagerCollection(ctx context.Context) (*ManagerCollection, error) {
	p, v, err := l.Link(ctx, "Managers")
	if err != nil {
		return nil, err
	}
	return NewManagerCollection(l.Conn(), p, v), nil
}

func (l *RSDLib) GetManager(ctx context.Context, identity string) (*Manager, error) {
	v, err := l.RedfishVersion(ctx)
	if err != nil {
		return nil, err
	}
	return NewManager(l.Conn(), identity, v), nil
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

func (l *RSDLib) GetNodeCollection(ctx context.Context) (*NodeCollection, error) {
	p, v, err := l.Link(ctx, "Oem", "Intel_RackScale", "Nodes")
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
	p, v, err := l.Link(ctx, "Oem", "Intel_RackScale", "EthernetSwitches")
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

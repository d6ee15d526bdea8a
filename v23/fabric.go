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
	"github.com/comcast/rsdfish/v21"
)

type Fabric struct {
	*v21.Fabric

	zones     resource.Lazy[*ZoneCollection]
	endpoints resource.Lazy[*EndpointCollection]
}

func NewFabric(conn resource.Transport, path, version string) *Fabric {
	return &Fabric{Fabric: v21.NewFabric(conn, path, version)}
}

func (f *Fabric) Zones(ctx context.Context) (*ZoneCollection, error) {
	return resource.Linked(ctx, f.Resource, &f.zones, func(p string) *ZoneCollection {
		return NewZoneCollection(f.Conn(), p, f.RedfishVersion())
	}, "Zones")
}

func (f *Fabric) Endpoints(ctx context.Context) (*EndpointCollection, error) {
	return resource.Linked(ctx, f.Resource, &f.endpoints, func(p string) *EndpointCollection {
		return NewEndpointCollection(f.Conn(), p, f.RedfishVersion())
	}, "Endpoints")
}

type FabricCollection = resource.Collection[*Fabric]

func NewFabricCollection(conn resource.Transport, path, version string) *FabricCollection {
	return resource.NewCollection(conn, path, version, NewFabric)
}

type Zone struct {
	*v21.Zone

	endpoints resource.Lazy[[]*Endpoint]
}

func NewZone(conn resource.Transport, path, version string) *Zone {
	return &Zone{Zone: v21.NewZone(conn, path, version)}
}

// Endpoints returns one Endpoint per zone member. The slice is kept until
// the zone is invalidated.
func (z *Zone) Endpoints(ctx context.Context) ([]*Endpoint, error) {
	return z.endpoints.Get(ctx, z.Resource, func(ctx context.Context) ([]*Endpoint, error) {
		paths, err := z.EndpointPaths(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*Endpoint, len(paths))
		for i, p := range paths {
			out[i] = NewEndpoint(z.Conn(), p, z.RedfishVersion())
		}
		return out, nil
	})
}

type ZoneCollection = resource.Collection[*Zone]

func NewZoneCollection(conn resource.Transport, path, version string) *ZoneCollection {
	return resource.NewCollection(conn, path, version, NewZone)
}

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
	"github.com/comcast/rsdfish/schema"
	"go.uber.org/zap"
)

var FabricFields = resource.ResourceFields.Extend(
	resource.Field("fabric_type", "FabricType"),
	resource.Field("max_zones", "MaxZones").Convert(resource.Int),
	StatusSpec,
	link("zones", "Zones"),
	link("endpoints", "Endpoints"),
	link("switches", "Switches"),
	oemSpec(),
)

type Fabric struct {
	*resource.Resource

	zones     resource.Lazy[*ZoneCollection]
	endpoints resource.Lazy[*EndpointCollection]
	switches  resource.Lazy[*SwitchCollection]
}

func NewFabric(conn resource.Transport, path, version string) *Fabric {
	return NewFabricWithFields(conn, path, version, FabricFields)
}

func NewFabricWithFields(conn resource.Transport, path, version string, fields *resource.Fields) *Fabric {
	return &Fabric{Resource: resource.New(conn, path, version, fields)}
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

func (f *Fabric) Switches(ctx context.Context) (*SwitchCollection, error) {
	return resource.Linked(ctx, f.Resource, &f.switches, func(p string) *SwitchCollection {
		return NewSwitchCollection(f.Conn(), p, f.RedfishVersion())
	}, "Switches")
}

type FabricCollection = resource.Collection[*Fabric]

func NewFabricCollection(conn resource.Transport, path, version string) *FabricCollection {
	return resource.NewCollection(conn, path, version, NewFabric)
}

var ZoneFields = resource.ResourceFields.Extend(
	StatusSpec,
	resource.Composite("links", "Links").Fields(
		links("endpoints", "Endpoints"),
		links("involved_switches", "InvolvedSwitches"),
	),
	oemSpec(),
)

// Zone groups the endpoints of a fabric that may reach each other.
type Zone struct {
	*resource.Resource

	endpoints resource.Lazy[[]*Endpoint]
}

func NewZone(conn resource.Transport, path, version string) *Zone {
	return &Zone{Resource: resource.New(conn, path, version, ZoneFields)}
}

// EndpointPaths returns the paths of the endpoints in the zone.
func (z *Zone) EndpointPaths(ctx context.Context) ([]string, error) {
	attrs, err := z.Attrs(ctx)
	if err != nil {
		return nil, err
	}
	return attrs.Composite("links").Strings("endpoints"), nil
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

type zoneUpdate struct {
	Endpoints []resource.Link `json:"Endpoints"`
}

// Update replaces the zone membership with endpoints.
func (z *Zone) Update(ctx context.Context, endpoints []string) error {
	body := zoneUpdate{Endpoints: resource.Links(endpoints)}
	if err := schema.Validate(body, schema.ZoneUpdate); err != nil {
		return err
	}
	if _, err := z.Conn().Patch(ctx, z.Path(), body); err != nil {
		zap.L().Error("unable to update zone", zap.String("zone", z.Path()), zap.Error(err))
		return err
	}
	zap.L().Info("zone updated", zap.String("zone", z.Path()), zap.Strings("endpoints", endpoints))
	z.Invalidate()
	return nil
}

type ZoneCollection = resource.Collection[*Zone]

func NewZoneCollection(conn resource.Transport, path, version string) *ZoneCollection {
	return resource.NewCollection(conn, path, version, NewZone)
}

func pciIDSpec(name string, path ...string) resource.Spec {
	return resource.Composite(name, path...).Fields(
		resource.Field("device_id", "DeviceId"),
		resource.Field("vendor_id", "VendorId"),
		resource.Field("subsystem_id", "SubsystemId"),
		resource.Field("subsystem_vendor_id", "SubsystemVendorId"),
	)
}

var EndpointFields = resource.ResourceFields.Extend(
	resource.Field("protocol", "EndpointProtocol"),
	pciIDSpec("pci_id", "PciId"),
	resource.Field("host_reservation_memory_bytes", "HostReservationMemoryBytes").Convert(resource.Int),
	resource.List("connected_entities", "ConnectedEntities").Fields(
		resource.Field("entity_type", "EntityType"),
		resource.Field("entity_role", "EntityRole"),
		link("entity_link", "EntityLink"),
		resource.Field("pci_function_number", "PciFunctionNumber").Convert(resource.Int),
		resource.Field("pci_class_code", "PciClassCode"),
		pciIDSpec("entity_pci_id", "EntityPciId"),
	),
	IdentifiersSpec,
	StatusSpec,
	resource.Composite("links", "Links").Fields(
		links("mutually_exclusive_endpoints", "MutuallyExclusiveEndpoints"),
		links("ports", "Ports"),
	),
	oemSpec(),
)

type Endpoint struct {
	*resource.Resource
}

func NewEndpoint(conn resource.Transport, path, version string) *Endpoint {
	return NewEndpointWithFields(conn, path, version, EndpointFields)
}

func NewEndpointWithFields(conn resource.Transport, path, version string, fields *resource.Fields) *Endpoint {
	return &Endpoint{Resource: resource.New(conn, path, version, fields)}
}

type EndpointCollection = resource.Collection[*Endpoint]

func NewEndpointCollection(conn resource.Transport, path, version string) *EndpointCollection {
	return resource.NewCollection(conn, path, version, NewEndpoint)
}

var SwitchFields = resource.ResourceFields.Extend(
	resource.Field("switch_type", "SwitchType"),
	resource.Field("manufacturer", "Manufacturer"),
	resource.Field("model", "Model"),
	resource.Field("sku", "SKU"),
	resource.Field("serial_number", "SerialNumber"),
	resource.Field("part_number", "PartNumber"),
	resource.Field("asset_tag", "AssetTag"),
	resource.Field("domain_id", "DomainID").Convert(resource.Int),
	resource.Field("is_managed", "IsManaged").Convert(resource.Bool),
	resource.Field("total_switch_width", "TotalSwitchWidth").Convert(resource.Int),
	resource.Field("indicator_led", "IndicatorLED"),
	resource.Field("power_state", "PowerState"),
	StatusSpec,
	link("ports", "Ports"),
	resource.Composite("links", "Links").Fields(
		links("chassis", "Chassis"),
		links("managed_by", "ManagedBy"),
	),
	resource.Composite("actions", "Actions").Fields(
		resetAction("reset", "#Switch.Reset"),
	),
	oemSpec(),
)

// Switch is a PCIe switch of a fabric.
type Switch struct {
	*resource.Resource
}

func NewSwitch(conn resource.Transport, path, version string) *Switch {
	return &Switch{Resource: resource.New(conn, path, version, SwitchFields)}
}

func (s *Switch) Reset(ctx context.Context, resetType string) error {
	return Reset(ctx, s.Resource, "reset", resetType)
}

type SwitchCollection = resource.Collection[*Switch]

func NewSwitchCollection(conn resource.Transport, path, version string) *SwitchCollection {
	return resource.NewCollection(conn, path, version, NewSwitch)
}

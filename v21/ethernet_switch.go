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

var EthernetSwitchFields = resource.ResourceFields.Extend(
	resource.Field("switch_id", "SwitchId"),
	resource.Field("manufacturer", "Manufacturer"),
	resource.Field("model", "Model"),
	resource.Field("manufacturing_date", "ManufacturingDate"),
	resource.Field("serial_number", "SerialNumber"),
	resource.Field("part_number", "PartNumber"),
	resource.Field("firmware_name", "FirmwareName"),
	resource.Field("firmware_version", "FirmwareVersion"),
	resource.Field("role", "Role"),
	StatusSpec,
	oemSpec(),
	link("acls", "ACLs"),
	link("ports", "Ports"),
	resource.Composite("links", "Links").Fields(
		link("chassis", "Chassis"),
		links("managed_by", "ManagedBy"),
	),
)

type EthernetSwitch struct {
	*resource.Resource

	acls  resource.Lazy[*ACLCollection]
	ports resource.Lazy[*PortCollection]
}

func NewEthernetSwitch(conn resource.Transport, path, version string) *EthernetSwitch {
	return NewEthernetSwitchWithFields(conn, path, version, EthernetSwitchFields)
}

func NewEthernetSwitchWithFields(conn resource.Transport, path, version string, fields *resource.Fields) *EthernetSwitch {
	return &EthernetSwitch{Resource: resource.New(conn, path, version, fields)}
}

func (s *EthernetSwitch) ACLs(ctx context.Context) (*ACLCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.acls, func(p string) *ACLCollection {
		return NewACLCollection(s.Conn(), p, s.RedfishVersion())
	}, "ACLs")
}

func (s *EthernetSwitch) Ports(ctx context.Context) (*PortCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.ports, func(p string) *PortCollection {
		return NewPortCollection(s.Conn(), p, s.RedfishVersion())
	}, "Ports")
}

type EthernetSwitchCollection = resource.Collection[*EthernetSwitch]

func NewEthernetSwitchCollection(conn resource.Transport, path, version string) *EthernetSwitchCollection {
	return resource.NewCollection(conn, path, version, NewEthernetSwitch)
}

var ACLFields = resource.ResourceFields.Extend(
	oemSpec(),
	link("rules", "Rules"),
	resource.Composite("links", "Links").Fields(
		links("bound_ports", "BoundPorts"),
		oemSpec(),
	),
)

// ACL is an access control list of an ethernet switch.
type ACL struct {
	*resource.Resource

	rules resource.Lazy[*ACLRuleCollection]
}

func NewACL(conn resource.Transport, path, version string) *ACL {
	return &ACL{Resource: resource.New(conn, path, version, ACLFields)}
}

func (a *ACL) Rules(ctx context.Context) (*ACLRuleCollection, error) {
	return resource.Linked(ctx, a.Resource, &a.rules, func(p string) *ACLRuleCollection {
		return NewACLRuleCollection(a.Conn(), p, a.RedfishVersion())
	}, "Rules")
}

type ACLCollection = resource.Collection[*ACL]

func NewACLCollection(conn resource.Transport, path, version string) *ACLCollection {
	return resource.NewCollection(conn, path, version, NewACL)
}

func maskedSpec(name, key, value, valueKey string, convert resource.Converter) resource.Spec {
	v := resource.Field(value, valueKey)
	m := resource.Field("mask", "Mask")
	if convert != nil {
		v, m = v.Convert(convert), m.Convert(convert)
	}
	return resource.Composite(name, key).Fields(v, m)
}

var ACLRuleFields = resource.ResourceFields.Extend(
	resource.Field("rule_id", "RuleId").Convert(resource.Int),
	resource.Field("action", "Action"),
	link("forward_mirror_interface", "ForwardMirrorInterface"),
	links("mirror_port_region", "MirrorPortRegion"),
	resource.Field("mirror_type", "MirrorType"),
	resource.Composite("condition", "Condition").Fields(
		maskedSpec("ip_source", "IPSource", "ipv4_address", "IPv4Address", nil),
		maskedSpec("ip_destination", "IPDestination", "ipv4_address", "IPv4Address", nil),
		maskedSpec("mac_source", "MACSource", "address", "MACAddress", nil),
		maskedSpec("mac_destination", "MACDestination", "address", "MACAddress", nil),
		maskedSpec("vlan_id", "VLANId", "id", "Id", resource.Int),
		maskedSpec("l4_source_port", "L4SourcePort", "port", "Port", resource.Int),
		maskedSpec("l4_destination_port", "L4DestinationPort", "port", "Port", resource.Int),
		resource.Field("l4_protocol", "L4Protocol").Convert(resource.Int),
	),
	oemSpec(),
)

type ACLRule struct {
	*resource.Resource
}

func NewACLRule(conn resource.Transport, path, version string) *ACLRule {
	return &ACLRule{Resource: resource.New(conn, path, version, ACLRuleFields)}
}

type ACLRuleCollection = resource.Collection[*ACLRule]

func NewACLRuleCollection(conn resource.Transport, path, version string) *ACLRuleCollection {
	return resource.NewCollection(conn, path, version, NewACLRule)
}

var PortFields = resource.ResourceFields.Extend(
	resource.Field("port_id", "PortId"),
	resource.Field("link_type", "LinkType"),
	resource.Field("operational_state", "OperationalState"),
	resource.Field("administrative_state", "AdministrativeState"),
	resource.Field("link_speed_mbps", "LinkSpeedMbps").Convert(resource.Int),
	resource.Composite("neighbor_info", "NeighborInfo").Fields(
		resource.Field("switch_id", "SwitchId"),
		resource.Field("port_id", "PortId"),
		resource.Field("cable_id", "CableId"),
	),
	resource.Field("neighbor_mac", "NeighborMAC"),
	resource.Field("frame_size", "FrameSize").Convert(resource.Int),
	resource.Field("autosense", "Autosense").Convert(resource.Bool),
	resource.Field("full_duplex", "FullDuplex").Convert(resource.Bool),
	resource.Field("mac_address", "MACAddress"),
	resource.List("ipv4_addresses", "IPv4Addresses").Fields(
		resource.Field("address", "Address"),
		resource.Field("subnet_mask", "SubnetMask"),
		resource.Field("address_origin", "AddressOrigin"),
		resource.Field("gateway", "Gateway"),
	),
	resource.Field("port_class", "PortClass"),
	resource.Field("port_mode", "PortMode"),
	resource.Field("port_type", "PortType"),
	StatusSpec,
	link("vlans", "VLANs"),
	link("static_macs", "StaticMACs"),
	resource.Composite("links", "Links").Fields(
		link("primary_vlan", "PrimaryVLAN"),
		link("switch", "Switch"),
		link("member_of_port", "MemberOfPort"),
		links("port_members", "PortMembers"),
		links("active_acls", "ActiveACLs"),
	),
	oemSpec(),
)

type Port struct {
	*resource.Resource

	vlans resource.Lazy[*VLANCollection]
}

func NewPort(conn resource.Transport, path, version string) *Port {
	return NewPortWithFields(conn, path, version, PortFields)
}

func NewPortWithFields(conn resource.Transport, path, version string, fields *resource.Fields) *Port {
	return &Port{Resource: resource.New(conn, path, version, fields)}
}

func (p *Port) VLANs(ctx context.Context) (*VLANCollection, error) {
	return resource.Linked(ctx, p.Resource, &p.vlans, func(path string) *VLANCollection {
		return NewVLANCollection(p.Conn(), path, p.RedfishVersion())
	}, "VLANs")
}

type PortCollection = resource.Collection[*Port]

func NewPortCollection(conn resource.Transport, path, version string) *PortCollection {
	return resource.NewCollection(conn, path, version, NewPort)
}

var VLANFields = resource.ResourceFields.Extend(
	resource.Field("vlan_enable", "VLANEnable").Convert(resource.Bool),
	resource.Field("vlan_id", "VLANId").Convert(resource.Int),
	oemSpec(),
)

// VLAN is a VLAN network interface of a port or of a system NIC.
type VLAN struct {
	*resource.Resource
}

func NewVLAN(conn resource.Transport, path, version string) *VLAN {
	return &VLAN{Resource: resource.New(conn, path, version, VLANFields)}
}

type VLANCollection struct {
	*resource.Collection[*VLAN]
}

func NewVLANCollection(conn resource.Transport, path, version string) *VLANCollection {
	return &VLANCollection{Collection: resource.NewCollection(conn, path, version, NewVLAN)}
}

// NewVLANRequest builds the body of a VLAN creation request.
func NewVLANRequest(vlanID int, enabled, tagged bool) map[string]any {
	return map[string]any{
		"VLANId":     vlanID,
		"VLANEnable": enabled,
		"Oem": map[string]any{
			"Intel_RackScale": map[string]any{"Tagged": tagged},
		},
	}
}

// AddVLAN creates a VLAN network interface and returns its identity. The
// request is validated before anything is sent.
func (c *VLANCollection) AddVLAN(ctx context.Context, req map[string]any) (string, error) {
	if err := schema.Validate(req, schema.VLANNetworkInterface); err != nil {
		return "", err
	}
	id, err := resource.Create(ctx, c.Conn(), c.Path(), c.Path(), req)
	if err != nil {
		zap.L().Error("unable to create vlan", zap.String("collection", c.Path()), zap.Error(err))
		return "", err
	}
	c.Invalidate()
	zap.L().Info("vlan created", zap.String("vlan", id))
	return id, nil
}

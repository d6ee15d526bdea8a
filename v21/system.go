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

var SystemFields = resource.ResourceFields.Extend(
	resource.Field("asset_tag", "AssetTag"),
	resource.Field("bios_version", "BiosVersion"),
	resource.Field("hostname", "HostName"),
	resource.Field("indicator_led", "IndicatorLED"),
	resource.Field("manufacturer", "Manufacturer"),
	resource.Field("model", "Model"),
	resource.Field("part_number", "PartNumber"),
	resource.Field("serial_number", "SerialNumber"),
	resource.Field("sku", "SKU"),
	resource.Field("system_type", "SystemType"),
	resource.Field("uuid", "UUID").Convert(resource.UUID),
	resource.Field("power_state", "PowerState"),
	StatusSpec,
	resource.Composite("boot", "Boot").Fields(
		resource.Field("enabled", "BootSourceOverrideEnabled"),
		resource.Field("target", "BootSourceOverrideTarget"),
		resource.Field("mode", "BootSourceOverrideMode"),
		resource.Field("allowed_values", "BootSourceOverrideTarget@Redfish.AllowableValues").Convert(resource.Strings),
	),
	resource.Composite("memory_summary", "MemorySummary").Fields(
		resource.Field("size_gib", "TotalSystemMemoryGiB").Convert(resource.Float),
		resource.Field("health", "Status", "HealthRollup"),
	),
	resource.Composite("processor_summary", "ProcessorSummary").Fields(
		resource.Field("count", "Count").Convert(resource.Int),
		resource.Field("model", "Model"),
		resource.Field("health", "Status", "HealthRollup"),
	),
	oemSpec(),
	resource.Composite("actions", "Actions").Fields(
		resetAction("reset", "#ComputerSystem.Reset"),
	),
)

type System struct {
	*resource.Resource

	processors resource.Lazy[*ProcessorCollection]
	memory     resource.Lazy[*MemoryCollection]
	storage    resource.Lazy[*StorageCollection]
	interfaces resource.Lazy[*EthernetInterfaceCollection]
}

func NewSystem(conn resource.Transport, path, version string) *System {
	return NewSystemWithFields(conn, path, version, SystemFields)
}

// NewSystemWithFields builds a System bound with fields, which must be an
// extension of SystemFields.
func NewSystemWithFields(conn resource.Transport, path, version string, fields *resource.Fields) *System {
	return &System{Resource: resource.New(conn, path, version, fields)}
}

func (s *System) Processors(ctx context.Context) (*ProcessorCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.processors, func(p string) *ProcessorCollection {
		return NewProcessorCollection(s.Conn(), p, s.RedfishVersion())
	}, "Processors")
}

func (s *System) Memory(ctx context.Context) (*MemoryCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.memory, func(p string) *MemoryCollection {
		return NewMemoryCollection(s.Conn(), p, s.RedfishVersion())
	}, "Memory")
}

func (s *System) Storage(ctx context.Context) (*StorageCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.storage, func(p string) *StorageCollection {
		return NewStorageCollection(s.Conn(), p, s.RedfishVersion())
	}, "Storage")
}

func (s *System) EthernetInterfaces(ctx context.Context) (*EthernetInterfaceCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.interfaces, func(p string) *EthernetInterfaceCollection {
		return NewEthernetInterfaceCollection(s.Conn(), p, s.RedfishVersion())
	}, "EthernetInterfaces")
}

func (s *System) AllowedResetTypes(ctx context.Context) ([]string, error) {
	return AllowedResetTypes(ctx, s.Resource, "reset")
}

// Reset requests a power transition of the system.
func (s *System) Reset(ctx context.Context, resetType string) error {
	return Reset(ctx, s.Resource, "reset", resetType)
}

type SystemCollection = resource.Collection[*System]

func NewSystemCollection(conn resource.Transport, path, version string) *SystemCollection {
	return resource.NewCollection(conn, path, version, NewSystem)
}

var ProcessorFields = resource.ResourceFields.Extend(
	resource.Field("socket", "Socket"),
	resource.Field("processor_type", "ProcessorType"),
	resource.Field("processor_architecture", "ProcessorArchitecture"),
	resource.Field("instruction_set", "InstructionSet"),
	resource.Field("manufacturer", "Manufacturer"),
	resource.Field("model", "Model"),
	resource.Field("max_speed_mhz", "MaxSpeedMHz").Convert(resource.Int),
	resource.Field("total_cores", "TotalCores").Convert(resource.Int),
	resource.Field("total_threads", "TotalThreads").Convert(resource.Int),
	resource.Composite("processor_id", "ProcessorId").Fields(
		resource.Field("identification_registers", "IdentificationRegisters"),
		resource.Field("effective_family", "EffectiveFamily"),
		resource.Field("effective_model", "EffectiveModel"),
		resource.Field("step", "Step"),
		resource.Field("microcode_info", "MicrocodeInfo"),
		resource.Field("vendor_id", "VendorId"),
	),
	resource.Composite("status", "Status").Fields(
		resource.Field("state", "State"),
		resource.Field("health", "Health"),
	),
	oemSpec(),
)

type Processor struct {
	*resource.Resource
}

func NewProcessor(conn resource.Transport, path, version string) *Processor {
	return NewProcessorWithFields(conn, path, version, ProcessorFields)
}

func NewProcessorWithFields(conn resource.Transport, path, version string, fields *resource.Fields) *Processor {
	return &Processor{Resource: resource.New(conn, path, version, fields)}
}

type ProcessorCollection = resource.Collection[*Processor]

func NewProcessorCollection(conn resource.Transport, path, version string) *ProcessorCollection {
	return resource.NewCollection(conn, path, version, NewProcessor)
}

var MemoryFields = resource.ResourceFields.Extend(
	resource.Field("memory_type", "MemoryType"),
	resource.Field("memory_device_type", "MemoryDeviceType"),
	resource.Field("base_module_type", "BaseModuleType"),
	resource.Field("capacity_mib", "CapacityMiB").Convert(resource.Int),
	resource.Field("data_width_bits", "DataWidthBits").Convert(resource.Int),
	resource.Field("bus_width_bits", "BusWidthBits").Convert(resource.Int),
	resource.Field("manufacturer", "Manufacturer"),
	resource.Field("serial_number", "SerialNumber"),
	resource.Field("part_number", "PartNumber"),
	resource.Field("allowed_speeds_mhz", "AllowedSpeedsMHz").Convert(resource.Ints),
	resource.Field("operating_speed_mhz", "OperatingSpeedMhz").Convert(resource.Int),
	resource.Field("device_locator", "DeviceLocator"),
	resource.Field("rank_count", "RankCount").Convert(resource.Int),
	resource.Field("error_correction", "ErrorCorrection"),
	StatusSpec,
	oemSpec(),
)

type Memory struct {
	*resource.Resource
}

func NewMemory(conn resource.Transport, path, version string) *Memory {
	return NewMemoryWithFields(conn, path, version, MemoryFields)
}

func NewMemoryWithFields(conn resource.Transport, path, version string, fields *resource.Fields) *Memory {
	return &Memory{Resource: resource.New(conn, path, version, fields)}
}

type MemoryCollection = resource.Collection[*Memory]

func NewMemoryCollection(conn resource.Transport, path, version string) *MemoryCollection {
	return resource.NewCollection(conn, path, version, NewMemory)
}

var StorageFields = resource.ResourceFields.Extend(
	StatusSpec,
	resource.List("storage_controllers", "StorageControllers").Fields(
		resource.Field("member_id", "MemberId"),
		StatusSpec,
		resource.Field("manufacturer", "Manufacturer"),
		resource.Field("model", "Model"),
		resource.Field("sku", "SKU"),
		resource.Field("serial_number", "SerialNumber"),
		resource.Field("part_number", "PartNumber"),
		resource.Field("asset_tag", "AssetTag"),
		resource.Field("speed_gbps", "SpeedGbps").Convert(resource.Float),
		resource.Field("firmware_version", "FirmwareVersion"),
		resource.Field("supported_controller_protocols", "SupportedControllerProtocols").Convert(resource.Strings),
		resource.Field("supported_device_protocols", "SupportedDeviceProtocols").Convert(resource.Strings),
		IdentifiersSpec,
	),
	links("drives", "Drives"),
	oemSpec(),
)

// Storage is a storage subsystem of a system.
type Storage struct {
	*resource.Resource
}

func NewStorage(conn resource.Transport, path, version string) *Storage {
	return &Storage{Resource: resource.New(conn, path, version, StorageFields)}
}

type StorageCollection = resource.Collection[*Storage]

func NewStorageCollection(conn resource.Transport, path, version string) *StorageCollection {
	return resource.NewCollection(conn, path, version, NewStorage)
}

var EthernetInterfaceFields = resource.ResourceFields.Extend(
	resource.Field("mac_address", "MACAddress"),
	resource.Field("permanent_mac_address", "PermanentMACAddress"),
	resource.Field("speed_mbps", "SpeedMbps").Convert(resource.Int),
	resource.Field("auto_neg", "AutoNeg").Convert(resource.Bool),
	resource.Field("full_duplex", "FullDuplex").Convert(resource.Bool),
	resource.Field("mtu_size", "MTUSize").Convert(resource.Int),
	resource.Field("host_name", "HostName"),
	resource.Field("fqdn", "FQDN"),
	resource.List("ipv4_addresses", "IPv4Addresses").Fields(
		resource.Field("address", "Address"),
		resource.Field("subnet_mask", "SubnetMask"),
		resource.Field("address_origin", "AddressOrigin"),
		resource.Field("gateway", "Gateway"),
	),
	resource.List("ipv6_addresses", "IPv6Addresses").Fields(
		resource.Field("address", "Address"),
		resource.Field("prefix_length", "PrefixLength").Convert(resource.Int),
		resource.Field("address_origin", "AddressOrigin"),
		resource.Field("address_state", "AddressState"),
	),
	link("vlans", "VLANs"),
	StatusSpec,
	oemSpec(),
)

type EthernetInterface struct {
	*resource.Resource

	vlans resource.Lazy[*VLANCollection]
}

func NewEthernetInterface(conn resource.Transport, path, version string) *EthernetInterface {
	return &EthernetInterface{Resource: resource.New(conn, path, version, EthernetInterfaceFields)}
}

func (e *EthernetInterface) VLANs(ctx context.Context) (*VLANCollection, error) {
	return resource.Linked(ctx, e.Resource, &e.vlans, func(p string) *VLANCollection {
		return NewVLANCollection(e.Conn(), p, e.RedfishVersion())
	}, "VLANs")
}

type EthernetInterfaceCollection = resource.Collection[*EthernetInterface]

func NewEthernetInterfaceCollection(conn resource.Transport, path, version string) *EthernetInterfaceCollection {
	return resource.NewCollection(conn, path, version, NewEthernetInterface)
}

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
	"go.uber.org/zap"
)

var StorageServiceFields = resource.ResourceFields.Extend(
	v21.StatusSpec,
	resource.Field("volumes", "Volumes").Convert(resource.Identity),
	resource.Field("storage_pools", "StoragePools").Convert(resource.Identity),
	resource.Field("drives", "Drives").Convert(resource.Identity),
	resource.Field("endpoints", "Endpoints").Convert(resource.Identity),
	resource.Composite("links", "Links").Fields(
		resource.Field("hosting_system", "HostingSystem").Convert(resource.Identity),
	),
	resource.Field("oem", "Oem").Convert(resource.OEM),
)

// StorageService exposes the pooled storage of a storage server.
type StorageService struct {
	*resource.Resource

	volumes   resource.Lazy[*VolumeCollection]
	pools     resource.Lazy[*StoragePoolCollection]
	drives    resource.Lazy[*DriveCollection]
	endpoints resource.Lazy[*EndpointCollection]
}

func NewStorageService(conn resource.Transport, path, version string) *StorageService {
	return &StorageService{Resource: resource.New(conn, path, version, StorageServiceFields)}
}

func (s *StorageService) Volumes(ctx context.Context) (*VolumeCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.volumes, func(p string) *VolumeCollection {
		return NewVolumeCollection(s.Conn(), p, s.RedfishVersion())
	}, "Volumes")
}

func (s *StorageService) StoragePools(ctx context.Context) (*StoragePoolCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.pools, func(p string) *StoragePoolCollection {
		return NewStoragePoolCollection(s.Conn(), p, s.RedfishVersion())
	}, "StoragePools")
}

func (s *StorageService) Drives(ctx context.Context) (*DriveCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.drives, func(p string) *DriveCollection {
		return NewDriveCollection(s.Conn(), p, s.RedfishVersion())
	}, "Drives")
}

// Endpoints returns the NVMe-oF and iSCSI endpoints of the service.
func (s *StorageService) Endpoints(ctx context.Context) (*EndpointCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.endpoints, func(p string) *EndpointCollection {
		return NewEndpointCollection(s.Conn(), p, s.RedfishVersion())
	}, "Endpoints")
}

type StorageServiceCollection = resource.Collection[*StorageService]

func NewStorageServiceCollection(conn resource.Transport, path, version string) *StorageServiceCollection {
	return resource.NewCollection(conn, path, version, NewStorageService)
}

var VolumeFields = resource.ResourceFields.Extend(
	v21.StatusSpec,
	resource.Field("capacity_bytes", "CapacityBytes").Convert(resource.Int),
	resource.Field("allocated_bytes", "Capacity", "Data", "AllocatedBytes").Convert(resource.Int),
	resource.List("capacity_sources", "CapacitySources").Fields(
		resource.Field("allocated_bytes", "ProvidedCapacity", "Data", "AllocatedBytes").Convert(resource.Int),
		resource.Field("providing_pools", "ProvidingPools").Convert(resource.Identities).Default([]string{}),
	),
	resource.Field("access_capabilities", "AccessCapabilities").Convert(resource.Strings).Default([]string{}),
	v21.IdentifiersSpec,
	resource.List("replica_infos", "ReplicaInfos").Fields(
		resource.Field("replica_readonly_access", "ReplicaReadOnlyAccess"),
		resource.Field("replica_type", "ReplicaType"),
		resource.Field("replica_role", "ReplicaRole"),
		resource.Field("replica", "Replica").Convert(resource.Identity),
	),
	resource.Field("bootable", "Oem", "Intel_RackScale", "Bootable").Convert(resource.Bool),
	resource.Field("erased", "Oem", "Intel_RackScale", "Erased").Convert(resource.Bool),
	resource.Field("erase_on_detach", "Oem", "Intel_RackScale", "EraseOnDetach").Convert(resource.Bool),
	resource.Composite("links", "Links", "Oem", "Intel_RackScale").Fields(
		resource.Field("endpoints", "Endpoints").Convert(resource.Identities).Default([]string{}),
		resource.Field("metrics", "Metrics").Convert(resource.Identity),
	),
	resource.Composite("actions", "Actions").Fields(
		resource.Action("initialize", "#Volume.Initialize").Fields(
			resource.Field("initialize_type_allowable_values", "InitializeType@Redfish.AllowableValues").Convert(resource.AllowableValues),
		),
	),
)

type Volume struct {
	*resource.Resource
}

func NewVolume(conn resource.Transport, path, version string) *Volume {
	return &Volume{Resource: resource.New(conn, path, version, VolumeFields)}
}

type initializeRequest struct {
	InitializeType string `json:"InitializeType,omitempty"`
}

// Initialize erases the volume. An empty initializeType leaves the choice to
// the service.
func (v *Volume) Initialize(ctx context.Context, initializeType string) error {
	action, err := v.Action(ctx, "initialize")
	if err != nil {
		return err
	}
	if allowed := action.Strings("initialize_type_allowable_values"); initializeType != "" && len(allowed) > 0 {
		if err := resource.CheckAllowed("initialize_type", initializeType, allowed); err != nil {
			return err
		}
	}
	req := initializeRequest{InitializeType: initializeType}
	if _, err := v.Conn().Post(ctx, action.String("target_uri"), req); err != nil {
		zap.L().Error("unable to initialize volume", zap.String("volume", v.Path()), zap.Error(err))
		return err
	}
	zap.L().Info("volume initialization requested", zap.String("volume", v.Path()))
	v.Invalidate()
	return nil
}

type VolumeCollection = resource.Collection[*Volume]

func NewVolumeCollection(conn resource.Transport, path, version string) *VolumeCollection {
	return resource.NewCollection(conn, path, version, NewVolume)
}

func capacitySpec(name string, path ...string) resource.Spec {
	return resource.Composite(name, path...).Fields(
		resource.Field("allocated_bytes", "AllocatedBytes").Convert(resource.Int),
		resource.Field("consumed_bytes", "ConsumedBytes").Convert(resource.Int),
		resource.Field("guaranteed_bytes", "GuaranteedBytes").Convert(resource.Int),
		resource.Field("provisioned_bytes", "ProvisionedBytes").Convert(resource.Int),
	)
}

var StoragePoolFields = resource.ResourceFields.Extend(
	v21.StatusSpec,
	resource.Composite("identifier", "Identifier").Fields(
		resource.Field("name_format", "DurableNameFormat"),
		resource.Field("name", "DurableName"),
	),
	capacitySpec("capacity", "Capacity", "Data"),
	resource.List("capacity_sources", "CapacitySources").Fields(
		capacitySpec("provided_capacity", "ProvidedCapacity", "Data"),
		resource.Field("providing_drives", "ProvidingDrives").Convert(resource.Identities).Default([]string{}),
	),
	resource.Field("allocated_volumes", "AllocatedVolumes").Convert(resource.Identity),
	resource.Field("allocated_pools", "AllocatedPools").Convert(resource.Identity),
)

type StoragePool struct {
	*resource.Resource

	volumes resource.Lazy[*VolumeCollection]
}

func NewStoragePool(conn resource.Transport, path, version string) *StoragePool {
	return &StoragePool{Resource: resource.New(conn, path, version, StoragePoolFields)}
}

// AllocatedVolumes returns the volumes carved out of the pool.
func (p *StoragePool) AllocatedVolumes(ctx context.Context) (*VolumeCollection, error) {
	return resource.Linked(ctx, p.Resource, &p.volumes, func(path string) *VolumeCollection {
		return NewVolumeCollection(p.Conn(), path, p.RedfishVersion())
	}, "AllocatedVolumes")
}

type StoragePoolCollection = resource.Collection[*StoragePool]

func NewStoragePoolCollection(conn resource.Transport, path, version string) *StoragePoolCollection {
	return resource.NewCollection(conn, path, version, NewStoragePool)
}

var DriveFields = resource.ResourceFields.Extend(
	v21.StatusSpec,
	resource.Field("protocol", "Protocol"),
	resource.Field("media_type", "MediaType"),
	resource.Field("capacity_bytes", "CapacityBytes").Convert(resource.Int),
	resource.Field("manufacturer", "Manufacturer"),
	resource.Field("model", "Model"),
	resource.Field("serial_number", "SerialNumber"),
	resource.Field("part_number", "PartNumber"),
	resource.Field("sku", "SKU"),
	resource.Field("asset_tag", "AssetTag"),
	resource.Field("revision", "Revision"),
	resource.Field("rotation_speed_rpm", "RotationSpeedRPM").Convert(resource.Float),
	resource.Field("indicator_led", "IndicatorLED"),
	resource.Field("status_indicator", "StatusIndicator"),
	v21.IdentifiersSpec,
	resource.List("location", "Location").Fields(
		resource.Field("info", "Info"),
		resource.Field("info_format", "InfoFormat"),
	),
	resource.Field("erased", "Oem", "Intel_RackScale", "DriveErased").Convert(resource.Bool),
	resource.Field("firmware_version", "Oem", "Intel_RackScale", "FirmwareVersion"),
	resource.Composite("links", "Links").Fields(
		resource.Field("chassis", "Chassis").Convert(resource.Identity),
		resource.Field("endpoints", "Endpoints").Convert(resource.Identities).Default([]string{}),
		resource.Field("volumes", "Volumes").Convert(resource.Identities).Default([]string{}),
	),
	resource.Composite("actions", "Actions").Fields(
		resource.Action("secure_erase", "#Drive.SecureErase"),
	),
)

type Drive struct {
	*resource.Resource
}

func NewDrive(conn resource.Transport, path, version string) *Drive {
	return &Drive{Resource: resource.New(conn, path, version, DriveFields)}
}

// SecureErase wipes the drive.
func (d *Drive) SecureErase(ctx context.Context) error {
	action, err := d.Action(ctx, "secure_erase")
	if err != nil {
		return err
	}
	if _, err := d.Conn().Post(ctx, action.String("target_uri"), struct{}{}); err != nil {
		zap.L().Error("unable to erase drive", zap.String("drive", d.Path()), zap.Error(err))
		return err
	}
	zap.L().Info("drive erase requested", zap.String("drive", d.Path()))
	d.Invalidate()
	return nil
}

type DriveCollection = resource.Collection[*Drive]

func NewDriveCollection(conn resource.Transport, path, version string) *DriveCollection {
	return resource.NewCollection(conn, path, version, NewDrive)
}

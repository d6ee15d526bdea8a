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
	"github.com/comcast/rsdfish/resource"
)

var ChassisFields = resource.ResourceFields.Extend(
	resource.Field("asset_tag", "AssetTag"),
	resource.Field("manufacturer", "Manufacturer"),
	resource.Field("part_number", "PartNumber"),
	resource.Field("serial_number", "SerialNumber"),
	resource.Field("sku", "SKU"),
	StatusSpec,
	resource.Field("chassis_type", "ChassisType"),
	oemSpec(),
)

type Chassis struct {
	*resource.Resource
}

func NewChassis(conn resource.Transport, path, version string) *Chassis {
	return &Chassis{Resource: resource.New(conn, path, version, ChassisFields)}
}

type ChassisCollection = resource.Collection[*Chassis]

func NewChassisCollection(conn resource.Transport, path, version string) *ChassisCollection {
	return resource.NewCollection(conn, path, version, NewChassis)
}

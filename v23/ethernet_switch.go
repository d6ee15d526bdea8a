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
	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/v21"
	"github.com/comcast/rsdfish/v22"
)

func priorityMappingSpec(name, key string) resource.Spec {
	return resource.List(name, key).Fields(
		resource.Field("priority", "Priority").Convert(resource.Int),
		resource.Field("traffic_class", "TrafficClass").Convert(resource.Int),
	)
}

var EthernetSwitchFields = v21.EthernetSwitchFields.Extend(
	priorityMappingSpec("class_to_priority_mapping", "ClassToPriorityMapping"),
	resource.Field("dcbx_enabled", "DCBXEnabled").Convert(resource.Bool),
	resource.Field("ets_enabled", "ETSEnabled").Convert(resource.Bool),
	resource.Field("lldp_enabled", "LLDPEnabled").Convert(resource.Bool),
	resource.Field("max_acl_number", "MaxACLNumber").Convert(resource.Int),
	resource.Field("metrics", "Metrics").Convert(resource.Identity),
	resource.Composite("priority_flow_control", "PriorityFlowControl").Fields(
		resource.Field("enabled", "Enabled").Convert(resource.Bool),
		resource.Field("lossless_priorities", "LosslessPriorities").Convert(resource.Ints).Default([]int{}),
	),
	priorityMappingSpec("priority_to_class_mapping", "PriorityToClassMapping"),
	resource.List("traffic_classification", "TrafficClassification").Fields(
		resource.Field("port", "Port").Convert(resource.Int),
		resource.Field("protocol", "Protocol"),
		resource.Field("traffic_class", "TrafficClass").Convert(resource.Int),
	),
	resource.List("transmission_selection", "TransmissionSelection").Fields(
		resource.Field("bandwidth_percent", "BandwidthPercent").Convert(resource.Int),
		resource.Field("traffic_class", "TrafficClass").Convert(resource.Int),
	),
)

// EthernetSwitch adds the data center bridging settings of RSD 2.3.
type EthernetSwitch struct {
	*v22.EthernetSwitch
}

func NewEthernetSwitch(conn resource.Transport, path, version string) *EthernetSwitch {
	return &EthernetSwitch{EthernetSwitch: v22.NewEthernetSwitchWithFields(conn, path, version, EthernetSwitchFields)}
}

type EthernetSwitchCollection = resource.Collection[*EthernetSwitch]

func NewEthernetSwitchCollection(conn resource.Transport, path, version string) *EthernetSwitchCollection {
	return resource.NewCollection(conn, path, version, NewEthernetSwitch)
}

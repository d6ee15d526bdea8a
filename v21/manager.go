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

func consoleSpec(name string, path ...string) resource.Spec {
	return resource.Composite(name, path...).Fields(
		resource.Field("service_enabled", "ServiceEnabled").Convert(resource.Bool),
		resource.Field("max_concurrent_sessions", "MaxConcurrentSessions").Convert(resource.Int),
		resource.Field("connect_types_supported", "ConnectTypesSupported").Convert(resource.Strings),
	)
}

var ManagerFields = resource.ResourceFields.Extend(
	resource.Field("manager_type", "ManagerType"),
	resource.Field("service_entry_point_uuid", "ServiceEntryPointUUID").Convert(resource.UUID),
	resource.Field("uuid", "UUID").Convert(resource.UUID),
	resource.Field("model", "Model"),
	StatusSpec,
	consoleSpec("graphical_console", "GraphicalConsole"),
	consoleSpec("serial_console", "SerialConsole"),
	consoleSpec("command_shell", "CommandShell"),
	resource.Field("firmware_version", "FirmwareVersion"),
	link("network_protocol", "NetworkProtocol"),
	link("ethernet_interfaces", "EthernetInterfaces"),
	resource.Composite("links", "Links").Fields(
		links("manager_for_servers", "ManagerForServers"),
		links("manager_for_chassis", "ManagerForChassis"),
		oemSpec(),
	),
	oemSpec(),
	resource.Field("power_state", "PowerState"),
)

type Manager struct {
	*resource.Resource
}

func NewManager(conn resource.Transport, path, version string) *Manager {
	return &Manager{Resource: resource.New(conn, path, version, ManagerFields)}
}

type ManagerCollection = resource.Collection[*Manager]

func NewManagerCollection(conn resource.Transport, path, version string) *ManagerCollection {
	return resource.NewCollection(conn, path, version, NewManager)
}

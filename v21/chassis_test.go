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
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chassisPath = "/redfish/v1/Chassis/Drawer1"
	managerPath = "/redfish/v1/Managers/PSME"
)

func Test_Chassis(t *testing.T) {
	conn := newConn(t, map[string]string{
		chassisPath:           "chassis.json",
		"/redfish/v1/Chassis": "chassis_collection.json",
	})
	ctx := context.Background()

	chassis := NewChassis(conn, chassisPath, version)
	attrs, err := chassis.Attrs(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Drawer1", attrs.String("identity"))
	assert.Equal(t, "Drawer 1", attrs.String("name"))
	assert.Equal(t, "Drawer with compute modules", attrs.String("description"))
	assert.Equal(t, "Rack42-Drawer1", attrs.String("asset_tag"))
	assert.Equal(t, "Intel Corporation", attrs.String("manufacturer"))
	assert.Equal(t, "224071-J23", attrs.String("part_number"))
	assert.Equal(t, "FR456", attrs.String("serial_number"))
	assert.Equal(t, "SKU443", attrs.String("sku"))
	assert.Equal(t, "Drawer", attrs.String("chassis_type"))
	assert.Equal(t, "Enabled", attrs.Composite("status").String("state"))
	assert.Equal(t, "OK", attrs.Composite("status").String("health_rollup"))

	o := attrs.OEM("oem")
	require.NotNil(t, o)
	require.NotNil(t, o.IntelRackScale)
	assert.Equal(t, "Rack1", o.IntelRackScale.Location.ParentID)
	assert.Equal(t, map[string]any{"Slot": float64(4)}, o.Vendors["Contoso"])

	col := NewChassisCollection(conn, "/redfish/v1/Chassis", version)
	ids, err := col.MembersIdentities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/redfish/v1/Chassis/Rack1", chassisPath}, ids)
	member := col.GetMember(chassisPath)
	assert.Equal(t, version, member.RedfishVersion())
	assert.True(t, member.Stale())
}

func Test_Manager(t *testing.T) {
	conn := newConn(t, map[string]string{managerPath: "manager.json"})
	ctx := context.Background()

	attrs, err := NewManager(conn, managerPath, version).Attrs(ctx)
	require.NoError(t, err)

	assert.Equal(t, "PSME", attrs.String("identity"))
	assert.Equal(t, "EnclosureManager", attrs.String("manager_type"))
	entry, ok := attrs.UUID("service_entry_point_uuid")
	require.True(t, ok)
	assert.Equal(t, uuid.MustParse("92384634-2938-2342-8820-489239905423"), entry)
	id, ok := attrs.UUID("uuid")
	require.True(t, ok)
	assert.Equal(t, uuid.Nil, id)
	assert.Equal(t, "Joo Janta 200", attrs.String("model"))
	assert.Nil(t, attrs.Composite("status").Get("health_rollup"))
	assert.Equal(t, "1.00", attrs.String("firmware_version"))
	assert.Equal(t, "On", attrs.String("power_state"))

	tests := []struct {
		console  string
		sessions int
		types    []string
	}{
		{"graphical_console", 2, []string{"KVMIP"}},
		{"serial_console", 1, []string{"Telnet", "SSH", "IPMI"}},
		{"command_shell", 4, []string{"Telnet", "SSH"}},
	}
	for _, test := range tests {
		t.Run(test.console, func(t *testing.T) {
			c := attrs.Composite(test.console)
			require.NotNil(t, c)
			enabled, _ := c.Bool("service_enabled")
			assert.True(t, enabled)
			n, _ := c.Int("max_concurrent_sessions")
			assert.Equal(t, test.sessions, n)
			assert.Equal(t, test.types, c.Strings("connect_types_supported"))
		})
	}

	assert.Equal(t, "/redfish/v1/Managers/PSME/NetworkProtocol", attrs.String("network_protocol"))
	assert.Equal(t, "/redfish/v1/Managers/PSME/EthernetInterfaces", attrs.String("ethernet_interfaces"))
	links := attrs.Composite("links")
	assert.Equal(t, []string{}, links.Strings("manager_for_servers"))
	assert.Equal(t, []string{"/redfish/v1/Chassis/FabricModule1"}, links.Strings("manager_for_chassis"))
}

func Test_Manager_LinksDefault(t *testing.T) {
	conn := newConn(t, nil)
	conn.Add(t, managerPath, map[string]any{"Id": "PSME", "Links": map[string]any{}})

	attrs, err := NewManager(conn, managerPath, version).Attrs(context.Background())
	require.NoError(t, err)
	links := attrs.Composite("links")
	assert.Equal(t, []string{}, links.Strings("manager_for_servers"))
	assert.Equal(t, []string{}, links.Strings("manager_for_chassis"))
	assert.Nil(t, attrs.Composite("graphical_console"))
}

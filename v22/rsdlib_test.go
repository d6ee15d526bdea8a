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

package v22

import (
	"context"
	"testing"

	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/v21"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RSDLib(t *testing.T) {
	conn := newConn(t, map[string]string{v21.RootPath: "root.json"})
	lib := NewRSDLib(conn, "1.0.0")
	ctx := context.Background()

	api, err := lib.APIVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2.2.0", api)

	systems, err := lib.GetSystemCollection(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/redfish/v1/Systems", systems.Path())
	assert.Equal(t, version, systems.RedfishVersion())

	sys, err := lib.GetSystem(ctx, systemPath)
	require.NoError(t, err)
	assert.Equal(t, systemPath, sys.Path())
	assert.Same(t, SystemFields, sys.Fields())

	switches, err := lib.GetEthernetSwitchCollection(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/redfish/v1/EthernetSwitches", switches.Path())

	sw, err := lib.GetEthernetSwitch(ctx, switchPath)
	require.NoError(t, err)
	assert.Equal(t, switchPath, sw.Path())

	tel, err := lib.GetTelemetryService(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/redfish/v1/TelemetryService", tel.Path())

	nodes, err := lib.GetNodeCollection(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/redfish/v1/Nodes", nodes.Path())

	assert.Equal(t, 1, conn.Gets(v21.RootPath))
}

func Test_RSDLib_NoTelemetry(t *testing.T) {
	conn := resourceConn(t, v21.RootPath, map[string]any{
		"Id":             "RootService",
		"RedfishVersion": "1.1.0",
		"Systems":        map[string]any{"@odata.id": "/redfish/v1/Systems"},
	})
	lib := NewRSDLib(conn, version)

	_, err := lib.GetTelemetryService(context.Background())
	var missing *resource.MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "TelemetryService", missing.Attribute)
}

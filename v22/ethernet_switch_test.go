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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	switchPath = "/redfish/v1/EthernetSwitches/Switch1"
	portsPath  = switchPath + "/Ports"
	portPath   = portsPath + "/Port1"
)

func Test_EthernetSwitch_Ports(t *testing.T) {
	conn := newConn(t, map[string]string{
		switchPath:            "ethernet_switch.json",
		portsPath:             "port_collection.json",
		portPath:              "port.json",
		portPath + "/Metrics": "port_metrics.json",
	})
	ctx := context.Background()
	sw := NewEthernetSwitch(conn, switchPath, version)

	ports, err := sw.Ports(ctx)
	require.NoError(t, err)
	members, err := ports.LoadMembers(ctx, 4)
	require.NoError(t, err)
	require.Len(t, members, 1)

	port := members[0]
	attrs, err := port.Attrs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sw0p10", attrs.String("port_id"))
	assert.Equal(t, portPath+"/Metrics", attrs.String("metrics"))

	m, err := port.Metrics(ctx)
	require.NoError(t, err)
	ma, err := m.Attrs(ctx)
	require.NoError(t, err)

	rx := ma.Composite("received")
	require.NotNil(t, rx)
	packets, _ := rx.Int("packets")
	assert.Equal(t, 8, packets)
	tx := ma.Composite("transmitted")
	require.NotNil(t, tx)
	bytes, _ := tx.Int("bytes")
	assert.Equal(t, 7, bytes)
	collisions, _ := ma.Int("collisions")
	assert.Equal(t, 2, collisions)
	assert.Equal(t, []string{"LinkDown"}, ma.Strings("health"))

	acls, err := sw.ACLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, switchPath+"/ACLs", acls.Path())
}

func Test_Port_MissingMetrics(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		want string
	}{
		{"absent", map[string]any{"Id": "Port1"}, "Metrics"},
		{"null", map[string]any{"Id": "Port1", "Metrics": nil}, "Metrics"},
		{"empty link", map[string]any{"Id": "Port1", "Metrics": map[string]any{}}, "Metrics/@odata.id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := NewPort(resourceConn(t, portPath, tt.doc), portPath, version)
			_, err := port.Metrics(context.Background())
			var missing *resource.MissingAttributeError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.want, missing.Attribute)
			assert.Equal(t, portPath, missing.Resource)
		})
	}
}

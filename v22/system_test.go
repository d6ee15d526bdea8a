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
	systemPath     = "/redfish/v1/Systems/437XR1138R2"
	processorsPath = systemPath + "/Processors"
	processorPath  = processorsPath + "/CPU1"
	memoryPath     = systemPath + "/Memory/DIMM1"
)

func Test_System_Metrics(t *testing.T) {
	conn := newConn(t, map[string]string{
		systemPath:              "system.json",
		systemPath + "/Metrics": "system_metrics.json",
	})
	ctx := context.Background()
	sys := NewSystem(conn, systemPath, version)

	attrs, err := sys.Attrs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/redfish/v1/Systems/437XR1138R2/Metrics", attrs.String("metrics"))
	assert.Equal(t, "Physical", attrs.String("system_type"))

	m, err := sys.Metrics(ctx)
	require.NoError(t, err)
	again, err := sys.Metrics(ctx)
	require.NoError(t, err)
	assert.Same(t, m, again)

	ma, err := m.Attrs(ctx)
	require.NoError(t, err)
	tests := []struct {
		name string
		want float64
	}{
		{"processor_bandwidth_percent", 42},
		{"memory_bandwidth_percent", 78},
		{"memory_throttled_cycles_percent", 0},
		{"processor_power_watt", 12},
		{"memory_power_watt", 15},
		{"io_bandwidth_gbps", 2.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ma.Float(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, []string{"FRB1 BIST Failure", "Processor Failed"}, ma.Strings("health"))

	sys.Invalidate()
	fresh, err := sys.Metrics(ctx)
	require.NoError(t, err)
	assert.NotSame(t, m, fresh)
	assert.Equal(t, 2, conn.Gets(systemPath))
}

func Test_System_Processors(t *testing.T) {
	conn := newConn(t, map[string]string{
		systemPath:                 "system.json",
		processorsPath:             "processor_collection.json",
		processorPath:              "processor.json",
		processorPath + "/Metrics": "processor_metrics.json",
	})
	ctx := context.Background()
	sys := NewSystem(conn, systemPath, version)

	procs, err := sys.Processors(ctx)
	require.NoError(t, err)
	ids, err := procs.MembersIdentities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{processorPath, processorsPath + "/CPU2"}, ids)

	cpu := procs.GetMember(processorPath)
	attrs, err := cpu.Attrs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CPU 1", attrs.String("socket"))
	status := attrs.Composite("status")
	require.NotNil(t, status)
	assert.Equal(t, "Warning", status.String("health_rollup"))

	m, err := cpu.Metrics(ctx)
	require.NoError(t, err)
	ma, err := m.Attrs(ctx)
	require.NoError(t, err)
	freq, _ := ma.Float("average_frequency_mhz")
	assert.Equal(t, 2400.0, freq)
	temp, _ := ma.Float("temperature_celsius")
	assert.Equal(t, 41.0, temp)
	assert.Len(t, ma.Strings("health"), 2)
}

func Test_Processor_NoMetrics(t *testing.T) {
	conn := resourceConn(t, processorPath, map[string]any{
		"Id":     "CPU1",
		"Status": map[string]any{"State": "Enabled", "Health": "OK"},
	})
	cpu := NewProcessor(conn, processorPath, version)

	_, err := cpu.Metrics(context.Background())
	var missing *resource.MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Oem/Intel_RackScale/Metrics", missing.Attribute)
}

func Test_Memory_Metrics(t *testing.T) {
	conn := newConn(t, map[string]string{
		memoryPath:              "memory.json",
		memoryPath + "/Metrics": "memory_metrics.json",
	})
	ctx := context.Background()
	mem := NewMemory(conn, memoryPath, version)

	m, err := mem.Metrics(ctx)
	require.NoError(t, err)
	attrs, err := m.Attrs(ctx)
	require.NoError(t, err)

	size, ok := attrs.Int("block_size_bytes")
	assert.True(t, ok)
	assert.Equal(t, 4096, size)
	written, _ := attrs.Composite("life_time").Int("blocks_written")
	assert.Equal(t, 2048, written)
	shutdown, _ := attrs.Composite("health_data").Bool("last_shutdown_success")
	assert.True(t, shutdown)

	rs := attrs.Composite("rack_scale")
	require.NotNil(t, rs)
	ecc, _ := rs.Int("ecc_correctable_error_count")
	assert.Equal(t, 2, ecc)
	assert.Empty(t, rs.Strings("health"))
}

func Test_System_Memory(t *testing.T) {
	conn := newConn(t, map[string]string{
		systemPath:             "system.json",
		systemPath + "/Memory": "memory_collection.json",
		memoryPath:             "memory.json",
	})
	ctx := context.Background()
	sys := NewSystem(conn, systemPath, version)

	memory, err := sys.Memory(ctx)
	require.NoError(t, err)
	members, err := memory.LoadMembers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, members, 1)
	attrs, err := members[0].Attrs(ctx)
	require.NoError(t, err)
	assert.Equal(t, memoryPath+"/Metrics", attrs.String("metrics"))
}

func Test_SystemCollection(t *testing.T) {
	conn := newConn(t, map[string]string{
		"/redfish/v1/Systems": "system_collection.json",
		systemPath:            "system.json",
	})
	ctx := context.Background()
	systems := NewSystemCollection(conn, "/redfish/v1/Systems", version)

	members, err := systems.GetMembers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, members)
	assert.Equal(t, 0, conn.Gets(systemPath))

	sys := systems.GetMember(systemPath)
	types, err := sys.AllowedResetTypes(ctx)
	require.NoError(t, err)
	assert.Contains(t, types, "ForceRestart")
}

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

package oem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_IntelRackScale(t *testing.T) {
	block := map[string]any{
		"Intel_RackScale": map[string]any{
			"@odata.type":      "#Intel.Oem.ComputerSystem",
			"ProcessorSockets": float64(2),
			"MemorySockets":    float64(16),
			"DiscoveryState":   "Basic",
			"Metrics":          map[string]any{"@odata.id": "/redfish/v1/Systems/System1/Metrics"},
			"PCIeConnectionId": []any{"XYZ1234567890"},
			"Unknown":          "kept",
		},
		"Contoso": map[string]any{"Foo": "bar"},
	}

	o, err := Parse(block)
	require.NoError(t, err)
	require.NotNil(t, o.IntelRackScale)

	irs := o.IntelRackScale
	assert.Equal(t, "#Intel.Oem.ComputerSystem", irs.ODataType)
	assert.Equal(t, 2, *irs.ProcessorSockets)
	assert.Equal(t, 16, *irs.MemorySockets)
	assert.Equal(t, "Basic", irs.DiscoveryState)
	assert.Equal(t, "/redfish/v1/Systems/System1/Metrics", irs.MetricsPath())
	assert.Equal(t, []string{"XYZ1234567890"}, irs.PCIeConnectionID)
	assert.Equal(t, "kept", irs.Fields["Unknown"])
	assert.Equal(t, map[string]any{"Foo": "bar"}, o.Vendor("Contoso"))
	assert.Equal(t, block, o.Raw())
}

func Test_Parse_Errors(t *testing.T) {
	_, err := Parse(map[string]any{"Intel_RackScale": "nope"})
	assert.Error(t, err)

	_, err = Parse(map[string]any{"Intel_RackScale": map[string]any{"Tagged": "yes"}})
	assert.Error(t, err)
}

func Test_Parse_NoRackScale(t *testing.T) {
	o, err := Parse(map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, o.IntelRackScale)
	assert.Equal(t, "", o.IntelRackScale.MetricsPath())
	assert.Nil(t, o.Vendor("Contoso"))
}

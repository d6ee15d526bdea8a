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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	telemetryPath   = "/redfish/v1/TelemetryService"
	definitionsPath = telemetryPath + "/MetricDefinitions"
	definitionPath  = definitionsPath + "/CPU1Temperature"
)

func Test_Telemetry(t *testing.T) {
	conn := newConn(t, map[string]string{
		telemetryPath:   "telemetry.json",
		definitionsPath: "metric_definition_collection.json",
		definitionPath:  "metric_definition.json",
	})
	ctx := context.Background()
	tel := NewTelemetry(conn, telemetryPath, version)

	attrs, err := tel.Attrs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Enabled", attrs.Composite("status").String("state"))
	reports, ok := attrs.Int("max_reports")
	assert.True(t, ok)
	assert.Equal(t, 0, reports)
	assert.Equal(t, "PT1S", attrs.String("min_collection_interval"))
	assert.Equal(t, []string{"Average", "Maximum"}, attrs.Strings("supported_collection_functions"))

	defs, err := tel.MetricDefinitions(ctx)
	require.NoError(t, err)
	ids, err := defs.MembersIdentities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{definitionPath, definitionsPath + "/CPUHealth"}, ids)

	def := defs.GetMember(definitionPath)
	da, err := def.Attrs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Numeric", da.String("metric_type"))
	assert.Equal(t, "Cel", da.String("units"))
	assert.Nil(t, da.Get("discrete_values"))
	accuracy, _ := da.Float("accuracy")
	assert.Equal(t, 0.25, accuracy)
	calibration, _ := da.Float("calibration")
	assert.Equal(t, -0.5, calibration)
	maxRange, _ := da.Float("max_reading_range")
	assert.Equal(t, 80.0, maxRange)

	wildcards := da.List("wildcards")
	require.Len(t, wildcards, 1)
	assert.Equal(t, "Member", wildcards[0].String("name"))
	assert.Equal(t, []string{"CPU1", "CPU2"}, wildcards[0].Strings("values"))
}

func Test_Telemetry_NoDefinitions(t *testing.T) {
	conn := resourceConn(t, telemetryPath, map[string]any{"Id": "TelemetryService"})
	tel := NewTelemetry(conn, telemetryPath, version)

	attrs, err := tel.Attrs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, attrs.Strings("supported_collection_functions"))
	assert.Nil(t, attrs.Composite("status"))

	_, err = tel.MetricDefinitions(context.Background())
	assert.Error(t, err)
}

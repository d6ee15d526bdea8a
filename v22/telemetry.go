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

	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/v21"
)

var TelemetryFields = resource.ResourceFields.Extend(
	resource.Composite("status", "Status").Fields(
		resource.Field("state", "State"),
		resource.Field("health", "Health"),
	),
	resource.Field("max_reports", "MaxReports").Convert(resource.Int),
	resource.Field("min_collection_interval", "MinCollectionInterval"),
	resource.Field("supported_collection_functions", "SupportedCollectionFunctions").Convert(resource.Strings).Default([]string{}),
	resource.Field("metric_definitions", "MetricDefinitions").Convert(resource.Identity),
	resource.Field("oem", "Oem").Convert(resource.OEM),
)

// Telemetry is the telemetry service of a 2.2 pod manager.
type Telemetry struct {
	*resource.Resource

	definitions resource.Lazy[*MetricDefinitionCollection]
}

func NewTelemetry(conn resource.Transport, path, version string) *Telemetry {
	return &Telemetry{Resource: resource.New(conn, path, version, TelemetryFields)}
}

func (t *Telemetry) MetricDefinitions(ctx context.Context) (*MetricDefinitionCollection, error) {
	return resource.Linked(ctx, t.Resource, &t.definitions, func(p string) *MetricDefinitionCollection {
		return NewMetricDefinitionCollection(t.Conn(), p, t.RedfishVersion())
	}, "MetricDefinitions")
}

var MetricDefinitionFields = resource.ResourceFields.Extend(
	resource.Field("metric_type", "MetricType"),
	resource.Field("metric_data_type", "MetricDataType"),
	resource.Field("units", "Units"),
	resource.Field("accuracy", "Accuracy").Convert(resource.Float),
	resource.Field("sensing_interval", "SensingInterval"),
	resource.Field("discrete_values", "DiscreteValues").Convert(resource.Strings),
	resource.Field("physical_context", "PhysicalContext"),
	resource.Field("sensor_type", "SensorType"),
	resource.Field("implementation", "Implementation"),
	resource.Field("metric_properties", "MetricProperties").Convert(resource.Strings).Default([]string{}),
	resource.Field("calculable", "Calculable"),
	resource.List("wildcards", "Wildcards").Fields(
		resource.Field("name", "Name"),
		resource.Field("values", "Values").Convert(resource.Strings),
	),
	resource.Field("min_reading_range", "MinReadingRange").Convert(resource.Float),
	resource.Field("max_reading_range", "MaxReadingRange").Convert(resource.Float),
	resource.Field("calibration", "Calibration").Convert(resource.Float),
	resource.Field("timestamp_accuracy", "TimestampAccuracy"),
	v21.StatusSpec,
)

type MetricDefinition struct {
	*resource.Resource
}

func NewMetricDefinition(conn resource.Transport, path, version string) *MetricDefinition {
	return &MetricDefinition{Resource: resource.New(conn, path, version, MetricDefinitionFields)}
}

type MetricDefinitionCollection = resource.Collection[*MetricDefinition]

func NewMetricDefinitionCollection(conn resource.Transport, path, version string) *MetricDefinitionCollection {
	return resource.NewCollection(conn, path, version, NewMetricDefinition)
}

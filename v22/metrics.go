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
	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/v21"
)

var SystemMetricsFields = resource.ResourceFields.Extend(
	resource.Field("processor_bandwidth_percent", "ProcessorBandwidthPercent").Convert(resource.Float),
	resource.Field("memory_bandwidth_percent", "MemoryBandwidthPercent").Convert(resource.Float),
	resource.Field("memory_throttled_cycles_percent", "MemoryThrottledCyclesPercent").Convert(resource.Float),
	resource.Field("processor_power_watt", "ProcessorPowerWatt").Convert(resource.Float),
	resource.Field("memory_power_watt", "MemoryPowerWatt").Convert(resource.Float),
	resource.Field("io_bandwidth_gbps", "IOBandwidthGBps").Convert(resource.Float),
	resource.Field("health", "Health").Convert(resource.Strings).Default([]string{}),
)

type SystemMetrics struct {
	*resource.Resource
}

func NewSystemMetrics(conn resource.Transport, path, version string) *SystemMetrics {
	return &SystemMetrics{Resource: resource.New(conn, path, version, SystemMetricsFields)}
}

var ProcessorMetricsFields = resource.ResourceFields.Extend(
	resource.Field("bandwidth_percent", "BandwidthPercent").Convert(resource.Float),
	resource.Field("average_frequency_mhz", "AverageFrequencyMHz").Convert(resource.Float),
	resource.Field("throttling_celsius", "ThrottlingCelsius").Convert(resource.Float),
	resource.Field("temperature_celsius", "TemperatureCelsius").Convert(resource.Float),
	resource.Field("consumed_power_watt", "ConsumedPowerWatt").Convert(resource.Float),
	resource.Field("health", "Health").Convert(resource.Strings).Default([]string{}),
)

type ProcessorMetrics struct {
	*resource.Resource
}

func NewProcessorMetrics(conn resource.Transport, path, version string) *ProcessorMetrics {
	return &ProcessorMetrics{Resource: resource.New(conn, path, version, ProcessorMetricsFields)}
}

var MemoryMetricsFields = resource.ResourceFields.Extend(
	resource.Field("block_size_bytes", "BlockSizeBytes").Convert(resource.Int),
	resource.Composite("current_period", "CurrentPeriod").Fields(
		resource.Field("blocks_read", "BlocksRead").Convert(resource.Int),
		resource.Field("blocks_written", "BlocksWritten").Convert(resource.Int),
	),
	resource.Composite("life_time", "LifeTime").Fields(
		resource.Field("blocks_read", "BlocksRead").Convert(resource.Int),
		resource.Field("blocks_written", "BlocksWritten").Convert(resource.Int),
	),
	resource.Composite("health_data", "HealthData").Fields(
		resource.Field("remaining_spare_block_percentage", "RemainingSpareBlockPercentage").Convert(resource.Float),
		resource.Field("last_shutdown_success", "LastShutdownSuccess").Convert(resource.Bool),
		resource.Field("data_loss_detected", "DataLossDetected").Convert(resource.Bool),
		resource.Field("performance_degraded", "PerformanceDegraded").Convert(resource.Bool),
	),
	resource.Composite("rack_scale", "Oem", "Intel_RackScale").Fields(
		resource.Field("temperature_celsius", "TemperatureCelsius").Convert(resource.Float),
		resource.Field("bandwidth_percent", "BandwidthPercent").Convert(resource.Float),
		resource.Field("throttled_cycles_percent", "ThrottledCyclesPercent").Convert(resource.Float),
		resource.Field("consumed_power_watt", "ConsumedPowerWatt").Convert(resource.Float),
		resource.Field("thermal_margin_celsius", "ThermalMarginCelsius").Convert(resource.Float),
		resource.Field("ecc_correctable_error_count", "ECCCorrectableErrorCount").Convert(resource.Int),
		resource.Field("ecc_uncorrectable_error_count", "ECCUncorrectableErrorCount").Convert(resource.Int),
		resource.Field("health", "Health").Convert(resource.Strings).Default([]string{}),
	),
)

type MemoryMetrics struct {
	*resource.Resource
}

func NewMemoryMetrics(conn resource.Transport, path, version string) *MemoryMetrics {
	return &MemoryMetrics{Resource: resource.New(conn, path, version, MemoryMetricsFields)}
}

func trafficSpec(name, key string) resource.Spec {
	return resource.Composite(name, key).Fields(
		resource.Field("packets", "Packets").Convert(resource.Int),
		resource.Field("dropped_packets", "DroppedPackets").Convert(resource.Int),
		resource.Field("error_packets", "ErrorPackets").Convert(resource.Int),
		resource.Field("broadcast_packets", "BroadcastPackets").Convert(resource.Int),
		resource.Field("multicast_packets", "MulticastPackets").Convert(resource.Int),
		resource.Field("errors", "Errors").Convert(resource.Int),
		resource.Field("bytes", "Bytes").Convert(resource.Int),
	)
}

var PortMetricsFields = resource.ResourceFields.Extend(
	trafficSpec("received", "Received"),
	trafficSpec("transmitted", "Transmitted"),
	resource.Field("collisions", "Collisions").Convert(resource.Int),
	resource.Field("health", "Health").Convert(resource.Strings).Default([]string{}),
	v21.StatusSpec,
)

type PortMetrics struct {
	*resource.Resource
}

func NewPortMetrics(conn resource.Transport, path, version string) *PortMetrics {
	return &PortMetrics{Resource: resource.New(conn, path, version, PortMetricsFields)}
}

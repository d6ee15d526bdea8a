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

// Package v22 overlays the RSD 2.2 additions on the 2.1 object model:
// metrics resources, the telemetry service and reworked processors.
package v22

import (
	"context"

	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/v21"
)

var SystemFields = v21.SystemFields.Extend(
	resource.Field("metrics", "Oem", "Intel_RackScale", "Metrics").Convert(resource.Identity),
)

type System struct {
	*v21.System

	metrics    resource.Lazy[*SystemMetrics]
	processors resource.Lazy[*ProcessorCollection]
	memory     resource.Lazy[*MemoryCollection]
}

func NewSystem(conn resource.Transport, path, version string) *System {
	return &System{System: v21.NewSystemWithFields(conn, path, version, SystemFields)}
}

// Metrics returns the utilization metrics of the system.
func (s *System) Metrics(ctx context.Context) (*SystemMetrics, error) {
	return resource.Linked(ctx, s.Resource, &s.metrics, func(p string) *SystemMetrics {
		return NewSystemMetrics(s.Conn(), p, s.RedfishVersion())
	}, "Oem", "Intel_RackScale", "Metrics")
}

func (s *System) Processors(ctx context.Context) (*ProcessorCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.processors, func(p string) *ProcessorCollection {
		return NewProcessorCollection(s.Conn(), p, s.RedfishVersion())
	}, "Processors")
}

func (s *System) Memory(ctx context.Context) (*MemoryCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.memory, func(p string) *MemoryCollection {
		return NewMemoryCollection(s.Conn(), p, s.RedfishVersion())
	}, "Memory")
}

type SystemCollection = resource.Collection[*System]

func NewSystemCollection(conn resource.Transport, path, version string) *SystemCollection {
	return resource.NewCollection(conn, path, version, NewSystem)
}

var ProcessorFields = v21.ProcessorFields.Extend(
	v21.StatusSpec,
	resource.Field("metrics", "Oem", "Intel_RackScale", "Metrics").Convert(resource.Identity),
)

type Processor struct {
	*v21.Processor

	metrics resource.Lazy[*ProcessorMetrics]
}

func NewProcessor(conn resource.Transport, path, version string) *Processor {
	return &Processor{Processor: v21.NewProcessorWithFields(conn, path, version, ProcessorFields)}
}

func (p *Processor) Metrics(ctx context.Context) (*ProcessorMetrics, error) {
	return resource.Linked(ctx, p.Resource, &p.metrics, func(path string) *ProcessorMetrics {
		return NewProcessorMetrics(p.Conn(), path, p.RedfishVersion())
	}, "Oem", "Intel_RackScale", "Metrics")
}

type ProcessorCollection = resource.Collection[*Processor]

func NewProcessorCollection(conn resource.Transport, path, version string) *ProcessorCollection {
	return resource.NewCollection(conn, path, version, NewProcessor)
}

var MemoryFields = v21.MemoryFields.Extend(
	resource.Field("metrics", "Metrics").Convert(resource.Identity),
)

type Memory struct {
	*v21.Memory

	metrics resource.Lazy[*MemoryMetrics]
}

func NewMemory(conn resource.Transport, path, version string) *Memory {
	return &Memory{Memory: v21.NewMemoryWithFields(conn, path, version, MemoryFields)}
}

func (m *Memory) Metrics(ctx context.Context) (*MemoryMetrics, error) {
	return resource.Linked(ctx, m.Resource, &m.metrics, func(p string) *MemoryMetrics {
		return NewMemoryMetrics(m.Conn(), p, m.RedfishVersion())
	}, "Metrics")
}

type MemoryCollection = resource.Collection[*Memory]

func NewMemoryCollection(conn resource.Transport, path, version string) *MemoryCollection {
	return resource.NewCollection(conn, path, version, NewMemory)
}

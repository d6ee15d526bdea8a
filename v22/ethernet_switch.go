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

var PortFields = v21.PortFields.Extend(
	resource.Field("metrics", "Metrics").Convert(resource.Identity),
)

type Port struct {
	*v21.Port

	metrics resource.Lazy[*PortMetrics]
}

func NewPort(conn resource.Transport, path, version string) *Port {
	return &Port{Port: v21.NewPortWithFields(conn, path, version, PortFields)}
}

// Metrics returns the traffic counters of the port.
func (p *Port) Metrics(ctx context.Context) (*PortMetrics, error) {
	return resource.Linked(ctx, p.Resource, &p.metrics, func(path string) *PortMetrics {
		return NewPortMetrics(p.Conn(), path, p.RedfishVersion())
	}, "Metrics")
}

type PortCollection = resource.Collection[*Port]

func NewPortCollection(conn resource.Transport, path, version string) *PortCollection {
	return resource.NewCollection(conn, path, version, NewPort)
}

type EthernetSwitch struct {
	*v21.EthernetSwitch

	ports resource.Lazy[*PortCollection]
}

func NewEthernetSwitch(conn resource.Transport, path, version string) *EthernetSwitch {
	return NewEthernetSwitchWithFields(conn, path, version, v21.EthernetSwitchFields)
}

func NewEthernetSwitchWithFields(conn resource.Transport, path, version string, fields *resource.Fields) *EthernetSwitch {
	return &EthernetSwitch{EthernetSwitch: v21.NewEthernetSwitchWithFields(conn, path, version, fields)}
}

func (s *EthernetSwitch) Ports(ctx context.Context) (*PortCollection, error) {
	return resource.Linked(ctx, s.Resource, &s.ports, func(p string) *PortCollection {
		return NewPortCollection(s.Conn(), p, s.RedfishVersion())
	}, "Ports")
}

type EthernetSwitchCollection = resource.Collection[*EthernetSwitch]

func NewEthernetSwitchCollection(conn resource.Transport, path, version string) *EthernetSwitchCollection {
	return resource.NewCollection(conn, path, version, NewEthernetSwitch)
}

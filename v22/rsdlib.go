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

// RSDLib is the entry point of the RSD 2.2 API. Factories not redeclared
// here return the 2.1 types.
type RSDLib struct {
	*v21.RSDLib
}

func NewRSDLib(conn resource.Transport, version string) *RSDLib {
	return &RSDLib{RSDLib: v21.NewRSDLib(conn, version)}
}

func (l *RSDLib) GetSystemCollection(ctx context.Context) (*SystemCollection, error) {
	p, v, err := l.Link(ctx, "Systems")
	if err != nil {
		return nil, err
	}
	return NewSystemCollection(l.Conn(), p, v), nil
}

func (l *RSDLib) GetSystem(ctx context.Context, identity string) (*System, error) {
	v, err := l.RedfishVersion(ctx)
	if err != nil {
		return nil, err
	}
	return NewSystem(l.Conn(), identity, v), nil
}

func (l *RSDLib) GetEthernetSwitchCollection(ctx context.Context) (*EthernetSwitchCollection, error) {
	p, v, err := l.Link(ctx, "Oem", "Intel_RackScale", "EthernetSwitches")
	if err != nil {
		return nil, err
	}
	return NewEthernetSwitchCollection(l.Conn(), p, v), nil
}

func (l *RSDLib) GetEthernetSwitch(ctx context.Context, identity string) (*EthernetSwitch, error) {
	v, err := l.RedfishVersion(ctx)
	if err != nil {
		return nil, err
	}
	return NewEthernetSwitch(l.Conn(), identity, v), nil
}

// GetTelemetryService returns the telemetry service advertised by the
// service root.
func (l *RSDLib) GetTelemetryService(ctx context.Context) (*Telemetry, error) {
	p, v, err := l.Link(ctx, "TelemetryService")
	if err != nil {
		return nil, err
	}
	return NewTelemetry(l.Conn(), p, v), nil
}

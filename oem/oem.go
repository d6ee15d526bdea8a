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
	"encoding/json"
	"fmt"
)

// IntelRackScaleKey is the vendor key of the RSD extensions.
const IntelRackScaleKey = "Intel_RackScale"

// Oem is the parsed Oem block of a resource. The Intel_RackScale extension
// is decoded into its typed form, every other vendor block is kept as-is.
type Oem struct {
	IntelRackScale *IntelRackScale
	Vendors        map[string]any
}

// Link is a Redfish link object
type Link struct {
	ODataID string `json:"@odata.id"`
}

// Location places a component in the pod/rack/drawer hierarchy
type Location struct {
	ID       string `json:"Id,omitempty"`
	ParentID string `json:"ParentId,omitempty"`
}

// IntelRackScale contains the members of the Intel_RackScale extension the
// client knows about. Fields holds the complete block, known members included.
type IntelRackScale struct {
	ODataType                         string    `json:"@odata.type,omitempty"`
	Metrics                           *Link     `json:"Metrics,omitempty"`
	Location                          *Location `json:"Location,omitempty"`
	Tagged                            *bool     `json:"Tagged,omitempty"`
	DiscoveryState                    string    `json:"DiscoveryState,omitempty"`
	ProcessorSockets                  *int      `json:"ProcessorSockets,omitempty"`
	MemorySockets                     *int      `json:"MemorySockets,omitempty"`
	UserModeEnabled                   *bool     `json:"UserModeEnabled,omitempty"`
	TrustedExecutionTechnologyEnabled *bool     `json:"TrustedExecutionTechnologyEnabled,omitempty"`
	PCIeConnectionID                  []string  `json:"PCIeConnectionId,omitempty"`

	Fields map[string]any `json:"-"`
}

// MetricsPath returns the path of the linked metrics resource, if any.
func (i *IntelRackScale) MetricsPath() string {
	if i == nil || i.Metrics == nil {
		return ""
	}
	return i.Metrics.ODataID
}

// Parse decodes an Oem block.
func Parse(block map[string]any) (*Oem, error) {
	o := &Oem{Vendors: make(map[string]any)}
	for vendor, v := range block {
		if vendor != IntelRackScaleKey {
			o.Vendors[vendor] = v
			continue
		}
		if v == nil {
			continue
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s block is not an object", vendor)
		}
		irs, err := parseIntelRackScale(m)
		if err != nil {
			return nil, err
		}
		o.IntelRackScale = irs
	}
	return o, nil
}

func parseIntelRackScale(m map[string]any) (*IntelRackScale, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	irs := &IntelRackScale{}
	if err := json.Unmarshal(b, irs); err != nil {
		return nil, fmt.Errorf("decoding %s block: %w", IntelRackScaleKey, err)
	}
	irs.Fields = m
	return irs, nil
}

// Vendor returns the raw block of a vendor other than Intel_RackScale.
func (o *Oem) Vendor(name string) map[string]any {
	if o == nil {
		return nil
	}
	m, _ := o.Vendors[name].(map[string]any)
	return m
}

// Raw rebuilds the original Oem block.
func (o *Oem) Raw() map[string]any {
	if o == nil {
		return nil
	}
	out := make(map[string]any, len(o.Vendors)+1)
	for k, v := range o.Vendors {
		out[k] = v
	}
	if o.IntelRackScale != nil {
		out[IntelRackScaleKey] = o.IntelRackScale.Fields
	}
	return out
}

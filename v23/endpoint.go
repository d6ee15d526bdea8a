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

package v23

import (
	"context"
	"errors"

	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/schema"
	"github.com/comcast/rsdfish/v21"
	"go.uber.org/zap"
)

var EndpointFields = v21.EndpointFields.Without("pci_id", "host_reservation_memory_bytes").Extend(
	resource.List("connected_entities", "ConnectedEntities").Fields(
		resource.Field("entity_type", "EntityType"),
		resource.Field("entity_role", "EntityRole"),
		resource.Field("entity_link", "EntityLink").Convert(resource.Identity),
		v21.IdentifiersSpec,
	),
	resource.Composite("links", "Links").Fields(
		resource.Field("ports", "Ports").Convert(resource.Identities).Default([]string{}),
		resource.Field("endpoints", "Endpoints").Convert(resource.Identities).Default([]string{}),
		resource.Field("zones", "Oem", "Intel_RackScale", "Zones").Convert(resource.Identities).Default([]string{}),
		resource.Field("interface", "Oem", "Intel_RackScale", "Interface").Convert(resource.Identity),
	),
	resource.List("ip_transport_details", "IPTransportDetails").Fields(
		resource.Field("transport_protocol", "TransportProtocol"),
		resource.Field("ipv4_address", "IPv4Address", "Address"),
		resource.Field("ipv6_address", "IPv6Address", "Address"),
		resource.Field("port", "Port").Convert(resource.Int),
	),
	resource.Composite("oem", "Oem").Fields(
		resource.Composite("authentication", "Intel_RackScale", "Authentication").Fields(
			resource.Field("username", "Username"),
			resource.Field("password", "Password"),
		),
	),
)

// ErrNoCredentials is returned by UpdateAuthentication when neither a
// username nor a password is given.
var ErrNoCredentials = errors.New("at least a username or a password has to be specified")

type Endpoint struct {
	*v21.Endpoint
}

func NewEndpoint(conn resource.Transport, path, version string) *Endpoint {
	return &Endpoint{Endpoint: v21.NewEndpointWithFields(conn, path, version, EndpointFields)}
}

// Authentication carries the credentials an endpoint presents to its peer.
type Authentication struct {
	Username string `json:"Username,omitempty"`
	Password string `json:"Password,omitempty"`
}

type authenticationUpdate struct {
	Oem struct {
		RackScale struct {
			ODataType      string         `json:"@odata.type"`
			Authentication Authentication `json:"Authentication"`
		} `json:"Intel_RackScale"`
	} `json:"Oem"`
}

// UpdateAuthentication changes the endpoint credentials. Empty values are
// left untouched on the service.
func (e *Endpoint) UpdateAuthentication(ctx context.Context, username, password string) error {
	if username == "" && password == "" {
		return ErrNoCredentials
	}
	var body authenticationUpdate
	body.Oem.RackScale.ODataType = "#Intel.Oem.Endpoint"
	body.Oem.RackScale.Authentication = Authentication{Username: username, Password: password}
	if _, err := e.Conn().Patch(ctx, e.Path(), body); err != nil {
		zap.L().Error("unable to update endpoint authentication", zap.String("endpoint", e.Path()), zap.Error(err))
		return err
	}
	zap.L().Info("endpoint authentication updated", zap.String("endpoint", e.Path()))
	e.Invalidate()
	return nil
}

type Identifier struct {
	DurableNameFormat string `json:"DurableNameFormat,omitempty"`
	DurableName       string `json:"DurableName,omitempty"`
}

type ConnectedEntity struct {
	EntityRole  string         `json:"EntityRole,omitempty"`
	EntityType  string         `json:"EntityType,omitempty"`
	EntityLink  *resource.Link `json:"EntityLink,omitempty"`
	Identifiers []Identifier   `json:"Identifiers,omitempty"`
}

type Address struct {
	Address string `json:"Address"`
}

type IPTransportDetail struct {
	TransportProtocol string   `json:"TransportProtocol,omitempty"`
	IPv4Address       *Address `json:"IPv4Address,omitempty"`
	IPv6Address       *Address `json:"IPv6Address,omitempty"`
	Port              int      `json:"Port,omitempty"`
}

// EndpointRequest describes an endpoint to create. Identifiers and
// ConnectedEntities are mandatory.
type EndpointRequest struct {
	Identifiers        []Identifier
	ConnectedEntities  []ConnectedEntity
	Protocol           string
	IPTransportDetails []IPTransportDetail
	Interface          string
	Authentication     *Authentication
}

type endpointLinks struct {
	Oem struct {
		RackScale struct {
			Interfaces []resource.Link `json:"Interfaces"`
		} `json:"Intel_RackScale"`
	} `json:"Oem"`
}

type endpointOem struct {
	RackScale struct {
		Authentication *Authentication `json:"Authentication"`
	} `json:"Intel_RackScale"`
}

type createEndpointBody struct {
	Identifiers        []Identifier        `json:"Identifiers"`
	ConnectedEntities  []ConnectedEntity   `json:"ConnectedEntities"`
	EndpointProtocol   string              `json:"EndpointProtocol,omitempty"`
	IPTransportDetails []IPTransportDetail `json:"IPTransportDetails,omitempty"`
	Links              *endpointLinks      `json:"Links,omitempty"`
	Oem                *endpointOem        `json:"Oem,omitempty"`
}

func (r EndpointRequest) body() (createEndpointBody, error) {
	body := createEndpointBody{
		Identifiers:       r.Identifiers,
		ConnectedEntities: r.ConnectedEntities,
	}
	if err := schema.Validate(r.Identifiers, schema.EndpointIdentifiers); err != nil {
		return body, err
	}
	if err := schema.Validate(r.ConnectedEntities, schema.EndpointConnectedEntities); err != nil {
		return body, err
	}
	if r.Protocol != "" {
		if err := schema.Validate(r.Protocol, schema.EndpointProtocol); err != nil {
			return body, err
		}
		body.EndpointProtocol = r.Protocol
	}
	if r.IPTransportDetails != nil {
		if err := schema.Validate(r.IPTransportDetails, schema.EndpointIPTransportDetails); err != nil {
			return body, err
		}
		body.IPTransportDetails = r.IPTransportDetails
	}
	if r.Interface != "" {
		if err := schema.Validate(r.Interface, schema.EndpointInterface); err != nil {
			return body, err
		}
		body.Links = &endpointLinks{}
		body.Links.Oem.RackScale.Interfaces = resource.Links([]string{r.Interface})
	}
	if r.Authentication != nil {
		if err := schema.Validate(r.Authentication, schema.EndpointAuthentication); err != nil {
			return body, err
		}
		body.Oem = &endpointOem{}
		body.Oem.RackScale.Authentication = r.Authentication
	}
	return body, nil
}

type EndpointCollection struct {
	*resource.Collection[*Endpoint]
}

func NewEndpointCollection(conn resource.Transport, path, version string) *EndpointCollection {
	return &EndpointCollection{Collection: resource.NewCollection(conn, path, version, NewEndpoint)}
}

// CreateEndpoint creates an endpoint and returns its identity.
func (c *EndpointCollection) CreateEndpoint(ctx context.Context, req EndpointRequest) (string, error) {
	body, err := req.body()
	if err != nil {
		return "", err
	}
	id, err := resource.Create(ctx, c.Conn(), c.Path(), c.Path(), body)
	if err != nil {
		zap.L().Error("unable to create endpoint", zap.String("collection", c.Path()), zap.Error(err))
		return "", err
	}
	zap.L().Info("endpoint created", zap.String("endpoint", id))
	c.Invalidate()
	return id, nil
}

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

// Package v23 overlays the RSD 2.3 additions: endpoint attachment on
// composed nodes, endpoint management and storage services.
package v23

import (
	"context"

	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/v21"
	"go.uber.org/zap"
)

var NodeFields = v21.NodeFields.Extend(
	v21.NodeActions.Required().Fields(
		resource.Action("attach_endpoint", "#ComposedNode.AttachResource"),
		resource.Action("detach_endpoint", "#ComposedNode.DetachResource"),
	),
)

var ActionInfoFields = resource.ResourceFields.Extend(
	resource.List("parameters", "Parameters").Fields(
		resource.Field("name", "Name"),
		resource.Field("required", "Required").Convert(resource.Bool),
		resource.Field("data_type", "DataType"),
		resource.Field("object_data_type", "ObjectDataType"),
		resource.Field("allowable_values", "AllowableValues").Convert(resource.AllowableValues).Default([]string{}),
	),
)

// ActionInfo describes the parameters accepted by an action.
type ActionInfo struct {
	*resource.Resource
}

func NewActionInfo(conn resource.Transport, path, version string) *ActionInfo {
	return &ActionInfo{Resource: resource.New(conn, path, version, ActionInfoFields)}
}

// AllowableValues returns the values advertised for parameter, empty when
// the parameter is not described.
func (a *ActionInfo) AllowableValues(ctx context.Context, parameter string) ([]string, error) {
	attrs, err := a.Attrs(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range attrs.List("parameters") {
		if p.String("name") == parameter {
			if values := p.Strings("allowable_values"); values != nil {
				return values, nil
			}
			break
		}
	}
	return []string{}, nil
}

type Node struct {
	*v21.Node

	attachInfo resource.Lazy[*ActionInfo]
	detachInfo resource.Lazy[*ActionInfo]
}

func NewNode(conn resource.Transport, path, version string) *Node {
	return &Node{Node: v21.NewNodeWithFields(conn, path, version, NodeFields)}
}

var actionKeys = map[string]string{
	"attach_endpoint": "#ComposedNode.AttachResource",
	"detach_endpoint": "#ComposedNode.DetachResource",
}

// actionInfo returns the ActionInfo of the action called name. It is built
// once per generation of the node.
func (n *Node) actionInfo(ctx context.Context, name string, cache *resource.Lazy[*ActionInfo]) (*ActionInfo, error) {
	action, err := n.Action(ctx, name)
	if err != nil {
		return nil, err
	}
	return cache.Get(ctx, n.Resource, func(ctx context.Context) (*ActionInfo, error) {
		p := action.String("action_info_path")
		if p == "" {
			return nil, &resource.MissingAttributeError{
				Attribute: "Actions/" + actionKeys[name] + "/@Redfish.ActionInfo",
				Resource:  n.Path(),
			}
		}
		return NewActionInfo(n.Conn(), p, n.RedfishVersion()), nil
	})
}

func (n *Node) allowedEndpoints(ctx context.Context, name string, cache *resource.Lazy[*ActionInfo]) ([]string, error) {
	info, err := n.actionInfo(ctx, name, cache)
	if err != nil {
		return nil, err
	}
	return info.AllowableValues(ctx, "Resource")
}

// AllowedAttachEndpoints lists the endpoints that may be attached to the node.
func (n *Node) AllowedAttachEndpoints(ctx context.Context) ([]string, error) {
	return n.allowedEndpoints(ctx, "attach_endpoint", &n.attachInfo)
}

// AllowedDetachEndpoints lists the endpoints that may be detached from the node.
func (n *Node) AllowedDetachEndpoints(ctx context.Context) ([]string, error) {
	return n.allowedEndpoints(ctx, "detach_endpoint", &n.detachInfo)
}

type endpointRequest struct {
	Resource *resource.Link `json:"Resource,omitempty"`
	Protocol string         `json:"Protocol,omitempty"`
}

func newEndpointRequest(endpoint, protocol string) endpointRequest {
	req := endpointRequest{Protocol: protocol}
	if endpoint != "" {
		req.Resource = &resource.Link{ODataID: endpoint}
	}
	return req
}

// AttachEndpoint attaches endpoint to the node. An empty endpoint lets the
// service pick one; protocol is optional.
func (n *Node) AttachEndpoint(ctx context.Context, endpoint, protocol string) error {
	action, err := n.Action(ctx, "attach_endpoint")
	if err != nil {
		return err
	}
	if endpoint != "" {
		allowed, err := n.AllowedAttachEndpoints(ctx)
		if err != nil {
			return err
		}
		if err := resource.CheckAllowed("resource", endpoint, allowed); err != nil {
			return err
		}
	}
	return n.post(ctx, action.String("target_uri"), "attach", newEndpointRequest(endpoint, protocol))
}

// DetachEndpoint detaches endpoint from the node.
func (n *Node) DetachEndpoint(ctx context.Context, endpoint string) error {
	action, err := n.Action(ctx, "detach_endpoint")
	if err != nil {
		return err
	}
	allowed, err := n.AllowedDetachEndpoints(ctx)
	if err != nil {
		return err
	}
	if err := resource.CheckAllowed("resource", endpoint, allowed); err != nil {
		return err
	}
	return n.post(ctx, action.String("target_uri"), "detach", newEndpointRequest(endpoint, ""))
}

func (n *Node) post(ctx context.Context, target, op string, req endpointRequest) error {
	log := zap.L().With(zap.String("node", n.Path()), zap.String("operation", op))
	if req.Resource != nil {
		log = log.With(zap.String("endpoint", req.Resource.ODataID))
	}
	if _, err := n.Conn().Post(ctx, target, req); err != nil {
		log.Error("endpoint request failed", zap.Error(err))
		return err
	}
	log.Info("endpoint request sent")
	n.Invalidate()
	return nil
}

type NodeCollection struct {
	*resource.Collection[*Node]
}

func NewNodeCollection(conn resource.Transport, path, version string) *NodeCollection {
	return &NodeCollection{
		Collection: resource.NewCollectionWithFields(conn, path, version, v21.NodeCollectionFields, NewNode),
	}
}

// ComposeNode allocates a node and returns its identity.
func (c *NodeCollection) ComposeNode(ctx context.Context, req v21.ComposeRequest) (string, error) {
	return v21.ComposeNode(ctx, c.Resource, req)
}

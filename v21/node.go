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

package v21

import (
	"context"

	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/schema"
	"go.uber.org/zap"
)

// NodeActions binds the actions of a composed node.
var NodeActions = resource.Composite("actions", "Actions").Fields(
	resetAction("reset", "#ComposedNode.Reset"),
	resource.Action("assemble", "#ComposedNode.Assemble"),
)

var NodeFields = resource.ResourceFields.Extend(
	resource.Field("uuid", "UUID").Convert(resource.UUID),
	resource.Field("power_state", "PowerState"),
	resource.Field("composed_node_state", "ComposedNodeState"),
	StatusSpec,
	resource.Composite("boot", "Boot").Fields(
		resource.Field("enabled", "BootSourceOverrideEnabled"),
		resource.Field("target", "BootSourceOverrideTarget"),
		resource.Field("mode", "BootSourceOverrideMode"),
		resource.Field("allowed_values", "BootSourceOverrideTarget@Redfish.AllowableValues").Convert(resource.Strings),
	),
	resource.Composite("processor_summary", "Processors").Fields(
		resource.Field("count", "Count").Convert(resource.Int),
		resource.Field("model", "Model"),
		StatusSpec,
	),
	resource.Composite("memory_summary", "Memory").Fields(
		resource.Field("size_gib", "TotalSystemMemoryGiB").Convert(resource.Float),
		StatusSpec,
	),
	resource.Composite("links", "Links").Fields(
		link("system", "ComputerSystem"),
		links("processors", "Processors"),
		links("memory", "Memory"),
		links("ethernet_interfaces", "EthernetInterfaces"),
		links("local_drives", "LocalDrives"),
		links("remote_drives", "RemoteDrives"),
		links("managed_by", "ManagedBy"),
	),
	NodeActions,
	oemSpec(),
)

// Node is a composed node: a logical system assembled from pooled resources.
type Node struct {
	*resource.Resource

	system resource.Lazy[*System]
}

func NewNode(conn resource.Transport, path, version string) *Node {
	return NewNodeWithFields(conn, path, version, NodeFields)
}

func NewNodeWithFields(conn resource.Transport, path, version string, fields *resource.Fields) *Node {
	return &Node{Resource: resource.New(conn, path, version, fields)}
}

// System returns the computer system backing the node.
func (n *Node) System(ctx context.Context) (*System, error) {
	return resource.Linked(ctx, n.Resource, &n.system, func(p string) *System {
		return NewSystem(n.Conn(), p, n.RedfishVersion())
	}, "Links", "ComputerSystem")
}

func (n *Node) AllowedResetTypes(ctx context.Context) ([]string, error) {
	return AllowedResetTypes(ctx, n.Resource, "reset")
}

// Reset requests a power transition of the node.
func (n *Node) Reset(ctx context.Context, resetType string) error {
	return Reset(ctx, n.Resource, "reset", resetType)
}

// Assemble asks the service to assemble an allocated node.
func (n *Node) Assemble(ctx context.Context) error {
	action, err := n.Action(ctx, "assemble")
	if err != nil {
		return err
	}
	if _, err := n.Conn().Post(ctx, action.String("target_uri"), struct{}{}); err != nil {
		zap.L().Error("unable to assemble node", zap.String("node", n.Path()), zap.Error(err))
		return err
	}
	zap.L().Info("node assembly requested", zap.String("node", n.Path()))
	n.Invalidate()
	return nil
}

var NodeCollectionFields = resource.CollectionFields.Extend(
	resource.Composite("actions", "Actions").Fields(
		resource.Action("compose", "#ComposedNodeCollection.Allocate"),
	),
)

// ComposeRequest describes the node to allocate. Requirement entries are
// passed through to the service unchanged.
type ComposeRequest struct {
	Name                 string           `json:"Name"`
	Description          string           `json:"Description,omitempty"`
	Processors           []map[string]any `json:"Processors,omitempty"`
	Memory               []map[string]any `json:"Memory,omitempty"`
	RemoteDrives         []map[string]any `json:"RemoteDrives,omitempty"`
	LocalDrives          []map[string]any `json:"LocalDrives,omitempty"`
	EthernetInterfaces   []map[string]any `json:"EthernetInterfaces,omitempty"`
	Security             map[string]any   `json:"Security,omitempty"`
	TotalSystemCoreCount int              `json:"TotalSystemCoreCount,omitempty"`
	TotalSystemMemoryMiB int              `json:"TotalSystemMemoryMiB,omitempty"`
}

type NodeCollection struct {
	*resource.Collection[*Node]
}

func NewNodeCollection(conn resource.Transport, path, version string) *NodeCollection {
	return &NodeCollection{
		Collection: resource.NewCollectionWithFields(conn, path, version, NodeCollectionFields, NewNode),
	}
}

// ComposeNode allocates a node and returns its identity.
func (c *NodeCollection) ComposeNode(ctx context.Context, req ComposeRequest) (string, error) {
	return ComposeNode(ctx, c.Resource, req)
}

// ComposeNode posts req to the allocate action of the node collection c.
func ComposeNode(ctx context.Context, c *resource.Resource, req ComposeRequest) (string, error) {
	if err := schema.Validate(req, schema.NodeCompose); err != nil {
		return "", err
	}
	action, err := c.Action(ctx, "compose")
	if err != nil {
		return "", err
	}
	id, err := resource.Create(ctx, c.Conn(), action.String("target_uri"), c.Path(), req)
	if err != nil {
		zap.L().Error("unable to compose node", zap.String("name", req.Name), zap.Error(err))
		return "", err
	}
	zap.L().Info("node composed", zap.String("node", id))
	c.Invalidate()
	return id, nil
}

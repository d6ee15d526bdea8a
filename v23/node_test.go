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
	"testing"

	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/resource/resourcetest"
	"github.com/comcast/rsdfish/v21"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	nodesPath      = "/redfish/v1/Nodes"
	nodePath       = nodesPath + "/Node1"
	attachInfoPath = nodePath + "/Actions/AttachResourceActionInfo"
	detachInfoPath = nodePath + "/Actions/DetachResourceActionInfo"
	volume1        = "/redfish/v1/StorageServices/1/Volumes/1"
	volume2        = "/redfish/v1/StorageServices/1/Volumes/2"
)

func newNodeFixture(t *testing.T) *resourcetest.Transport {
	t.Helper()
	return newConn(t, map[string]string{
		nodePath:       "node.json",
		nodesPath:      "node_collection.json",
		attachInfoPath: "attach_action_info.json",
		detachInfoPath: "detach_action_info.json",
	})
}

func Test_Node_Actions(t *testing.T) {
	conn := newNodeFixture(t)
	ctx := context.Background()
	node := NewNode(conn, nodePath, version)

	attach, err := node.Action(ctx, "attach_endpoint")
	require.NoError(t, err)
	assert.Equal(t, nodePath+"/Actions/ComposedNode.AttachResource", attach.String("target_uri"))
	assert.Equal(t, attachInfoPath, attach.String("action_info_path"))

	detach, err := node.Action(ctx, "detach_endpoint")
	require.NoError(t, err)
	assert.Equal(t, detachInfoPath, detach.String("action_info_path"))

	types, err := node.AllowedResetTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 8)
}

func Test_Node_AllowedEndpoints(t *testing.T) {
	conn := newNodeFixture(t)
	ctx := context.Background()
	node := NewNode(conn, nodePath, version)

	attach, err := node.AllowedAttachEndpoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{volume1, volume2}, attach)

	detach, err := node.AllowedDetachEndpoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{volume1}, detach)

	_, err = node.AllowedAttachEndpoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, conn.Gets(attachInfoPath))
	assert.Equal(t, 1, conn.Gets(nodePath))

	node.Invalidate()
	_, err = node.AllowedAttachEndpoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, conn.Gets(attachInfoPath))
	assert.Equal(t, 2, conn.Gets(nodePath))
}

func Test_Node_AllowedEndpoints_NoResourceParameter(t *testing.T) {
	conn := newNodeFixture(t)
	conn.Add(t, attachInfoPath, map[string]any{
		"Id":         "AttachResourceActionInfo",
		"Parameters": []any{map[string]any{"Name": "Protocol", "AllowableValues": []any{"iSCSI"}}},
	})
	node := NewNode(conn, nodePath, version)

	allowed, err := node.AllowedAttachEndpoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, allowed)
}

func Test_Node_AttachEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		protocol string
		want     map[string]any
		infoGets int
	}{
		{
			name:     "endpoint and protocol",
			endpoint: volume2,
			protocol: "NVMeOverFabrics",
			want: map[string]any{
				"Resource": map[string]any{"@odata.id": volume2},
				"Protocol": "NVMeOverFabrics",
			},
			infoGets: 1,
		},
		{
			name:     "endpoint only",
			endpoint: volume1,
			want:     map[string]any{"Resource": map[string]any{"@odata.id": volume1}},
			infoGets: 1,
		},
		{
			name: "service picks the endpoint",
			want: map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := newNodeFixture(t)
			node := NewNode(conn, nodePath, version)

			require.NoError(t, node.AttachEndpoint(context.Background(), tt.endpoint, tt.protocol))
			require.Len(t, conn.Posts(), 1)
			assert.Equal(t, nodePath+"/Actions/ComposedNode.AttachResource", conn.Posts()[0].Path)
			assert.Equal(t, tt.want, resourcetest.JSON(t, conn.Posts()[0].Data))
			assert.Equal(t, tt.infoGets, conn.Gets(attachInfoPath))
			assert.True(t, node.Stale())
		})
	}
}

func Test_Node_AttachEndpoint_Invalid(t *testing.T) {
	conn := newNodeFixture(t)
	node := NewNode(conn, nodePath, version)

	err := node.AttachEndpoint(context.Background(), "/redfish/v1/StorageServices/1/Volumes/3", "")
	var ie *resource.InvalidParameterValueError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "resource", ie.Parameter)
	assert.Equal(t, []string{volume1, volume2}, ie.ValidValues)
	assert.Empty(t, conn.Posts())
}

func Test_Node_DetachEndpoint(t *testing.T) {
	conn := newNodeFixture(t)
	ctx := context.Background()
	node := NewNode(conn, nodePath, version)

	for _, endpoint := range []string{"", volume2} {
		err := node.DetachEndpoint(ctx, endpoint)
		var ie *resource.InvalidParameterValueError
		require.ErrorAs(t, err, &ie, endpoint)
	}
	assert.Empty(t, conn.Posts())

	require.NoError(t, node.DetachEndpoint(ctx, volume1))
	require.Len(t, conn.Posts(), 1)
	assert.Equal(t, nodePath+"/Actions/ComposedNode.DetachResource", conn.Posts()[0].Path)
	assert.Equal(t, map[string]any{"Resource": map[string]any{"@odata.id": volume1}}, resourcetest.JSON(t, conn.Posts()[0].Data))
}

func Test_Node_MutateError(t *testing.T) {
	conn := newNodeFixture(t)
	conn.MutateErr = &resource.HTTPError{Method: "POST", Path: nodePath, StatusCode: 500}
	node := NewNode(conn, nodePath, version)

	err := node.AttachEndpoint(context.Background(), volume1, "")
	var he *resource.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 500, he.StatusCode)
	assert.False(t, node.Stale())
}

func Test_Node_MissingActionInfo(t *testing.T) {
	conn := resourcetest.NewTransport()
	conn.Add(t, nodePath, map[string]any{
		"Id": "Node1",
		"Actions": map[string]any{
			"#ComposedNode.AttachResource": map[string]any{"target": nodePath + "/Actions/ComposedNode.AttachResource"},
		},
	})
	node := NewNode(conn, nodePath, version)
	ctx := context.Background()

	_, err := node.AllowedAttachEndpoints(ctx)
	var missing *resource.MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Actions/#ComposedNode.AttachResource/@Redfish.ActionInfo", missing.Attribute)

	err = node.DetachEndpoint(ctx, volume1)
	var me *resource.MissingActionError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "Actions/#ComposedNode.DetachResource", me.Action)
	assert.Empty(t, conn.Posts())
}

func Test_Node_MissingActions(t *testing.T) {
	conn := resourcetest.NewTransport()
	conn.Add(t, nodePath, map[string]any{"Id": "Node1"})
	node := NewNode(conn, nodePath, version)

	err := node.Parse(context.Background())
	var missing *resource.MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Actions", missing.Attribute)
}

func Test_NodeCollection(t *testing.T) {
	conn := newNodeFixture(t)
	ctx := context.Background()
	nodes := NewNodeCollection(conn, nodesPath, version)

	members, err := nodes.GetMembers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, members)
	assert.IsType(t, &Node{}, members[0])

	conn.PostHeader.Set("Location", "https://podm.example.com:8443/redfish/v1/Nodes/2")
	id, err := nodes.ComposeNode(ctx, v21.ComposeRequest{Name: "node"})
	require.NoError(t, err)
	assert.Equal(t, "/redfish/v1/Nodes/2", id)
}

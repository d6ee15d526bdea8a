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

package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "/redfish/v1/Systems/System1"

func Test_Extract(t *testing.T) {
	doc := map[string]any{
		"Id":   "System1",
		"Name": nil,
		"Status": map[string]any{
			"State":  "Enabled",
			"Health": nil,
		},
		"MemoryGiB": "32",
		"Bad":       "x",
		"Scalar":    "flat",
		"Null":      nil,
	}

	tests := []struct {
		name    string
		spec    Spec
		want    any
		wantErr any
	}{
		{name: "present", spec: Field("identity", "Id").Required(), want: "System1"},
		{name: "nested", spec: Field("state", "Status", "State"), want: "Enabled"},
		{name: "null leaf", spec: Field("health", "Status", "Health").Default("OK").Convert(failing), want: nil},
		{name: "absent default", spec: Field("model", "Model").Default("none").Convert(failing), want: "none"},
		{name: "absent no default", spec: Field("model", "Model"), want: nil},
		{name: "null intermediate", spec: Field("x", "Null", "Inner").Default(1), want: 1},
		{name: "converted", spec: Field("memory", "MemoryGiB").Convert(Int), want: 32},
		{name: "absent required", spec: Field("uuid", "Status", "UUID").Required(), wantErr: &MissingAttributeError{}},
		{name: "bad conversion", spec: Field("bad", "Bad").Convert(Int), wantErr: &MalformedAttributeError{}},
		{name: "non object intermediate", spec: Field("x", "Scalar", "Inner"), wantErr: &MalformedAttributeError{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Extract(doc, test.spec, testPath)
			switch test.wantErr.(type) {
			case *MissingAttributeError:
				var e *MissingAttributeError
				require.True(t, errors.As(err, &e), "got %v", err)
				assert.Equal(t, "Status/UUID", e.Attribute)
				assert.Equal(t, testPath, e.Resource)
			case *MalformedAttributeError:
				var e *MalformedAttributeError
				require.True(t, errors.As(err, &e), "got %v", err)
				assert.Equal(t, testPath, e.Resource)
			default:
				require.NoError(t, err)
				assert.Equal(t, test.want, got)
			}
		})
	}
}

func failing(v any) (any, error) {
	return nil, errors.New("converter must not be called")
}

func Test_Extract_MalformedNamesAttribute(t *testing.T) {
	doc := map[string]any{"ProcessorSummary": map[string]any{"Count": "many"}}
	_, err := Extract(doc, Field("count", "ProcessorSummary", "Count").Convert(Int), testPath)

	var e *MalformedAttributeError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "ProcessorSummary/Count", e.Attribute)
	assert.Equal(t, "many", e.Value)
	assert.Contains(t, err.Error(), testPath)
}

func Test_Extract_IntOverflowIsMalformed(t *testing.T) {
	doc := map[string]any{"LifeTime": map[string]any{"BlocksRead": 1e20}}
	v, err := Extract(doc, Field("blocks_read", "LifeTime", "BlocksRead").Convert(Int), testPath)

	var e *MalformedAttributeError
	require.ErrorAs(t, err, &e)
	assert.Nil(t, v)
	assert.Equal(t, "LifeTime/BlocksRead", e.Attribute)
	assert.Equal(t, 1e20, e.Value)
}

func Test_Composite(t *testing.T) {
	status := Composite("status", "Status").Fields(
		Field("state", "State"),
		Field("health", "Health"),
		Field("health_rollup", "HealthRollup"),
	)

	t.Run("bound", func(t *testing.T) {
		got, err := Extract(map[string]any{"Status": map[string]any{"State": "Enabled", "Health": "OK"}}, status, testPath)
		require.NoError(t, err)
		v := got.(*Values)
		assert.Equal(t, "Enabled", v.String("state"))
		assert.Equal(t, "OK", v.String("health"))
		assert.Nil(t, v.Get("health_rollup"))
		assert.True(t, v.Has("health_rollup"))
	})

	t.Run("absent", func(t *testing.T) {
		got, err := Extract(map[string]any{}, status, testPath)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("null", func(t *testing.T) {
		got, err := Extract(map[string]any{"Status": nil}, status, testPath)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("required absent", func(t *testing.T) {
		_, err := Extract(map[string]any{}, status.Required(), testPath)
		var e *MissingAttributeError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "Status", e.Attribute)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := Extract(map[string]any{"Status": []any{}}, status, testPath)
		var e *MalformedAttributeError
		require.ErrorAs(t, err, &e)
	})

	t.Run("inner errors carry the full path", func(t *testing.T) {
		spec := Composite("summary", "ProcessorSummary").Fields(Field("count", "Count").Required())
		_, err := Extract(map[string]any{"ProcessorSummary": map[string]any{}}, spec, testPath)
		var e *MissingAttributeError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "ProcessorSummary/Count", e.Attribute)
	})
}

func Test_List(t *testing.T) {
	transports := List("ip_transport_details", "IPTransportDetails").Fields(
		Field("transport_protocol", "TransportProtocol"),
		Field("ipv4_address", "IPv4Address", "Address"),
		Field("port", "Port").Convert(Int),
	)

	t.Run("bound in order", func(t *testing.T) {
		doc := map[string]any{"IPTransportDetails": []any{
			map[string]any{"TransportProtocol": "RoCEv2", "IPv4Address": map[string]any{"Address": "192.168.0.10"}, "Port": float64(4791)},
			map[string]any{"TransportProtocol": "iSCSI"},
		}}
		got, err := Extract(doc, transports, testPath)
		require.NoError(t, err)
		items := got.([]*Values)
		require.Len(t, items, 2)
		assert.Equal(t, "RoCEv2", items[0].String("transport_protocol"))
		assert.Equal(t, "192.168.0.10", items[0].String("ipv4_address"))
		port, ok := items[0].Int("port")
		assert.True(t, ok)
		assert.Equal(t, 4791, port)
		assert.Equal(t, "iSCSI", items[1].String("transport_protocol"))
		assert.Nil(t, items[1].Get("port"))
	})

	for name, doc := range map[string]map[string]any{
		"absent": {},
		"null":   {"IPTransportDetails": nil},
		"empty":  {"IPTransportDetails": []any{}},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Extract(doc, transports, testPath)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}

	t.Run("non array", func(t *testing.T) {
		_, err := Extract(map[string]any{"IPTransportDetails": "x"}, transports, testPath)
		var e *MalformedAttributeError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "IPTransportDetails", e.Attribute)
	})

	t.Run("non object element", func(t *testing.T) {
		_, err := Extract(map[string]any{"IPTransportDetails": []any{map[string]any{}, "x"}}, transports, testPath)
		var e *MalformedAttributeError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "IPTransportDetails/1", e.Attribute)
	})

	t.Run("element errors carry the index", func(t *testing.T) {
		_, err := Extract(map[string]any{"IPTransportDetails": []any{map[string]any{"Port": "x"}}}, transports, testPath)
		var e *MalformedAttributeError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "IPTransportDetails/0/Port", e.Attribute)
	})
}

func Test_NestedListInComposite(t *testing.T) {
	spec := Composite("links", "Links").Fields(
		List("members", "Members").Fields(Field("id", "@odata.id")),
		Composite("owner", "Owner").Fields(Field("id", "@odata.id")),
	)
	got, err := Extract(map[string]any{"Links": map[string]any{
		"Members": []any{map[string]any{"@odata.id": "/a"}, map[string]any{"@odata.id": "/b"}},
	}}, spec, testPath)
	require.NoError(t, err)

	links := got.(*Values)
	members := links.List("members")
	require.Len(t, members, 2)
	assert.Equal(t, "/b", members[1].String("id"))
	assert.Nil(t, links.Composite("owner"))
	assert.Equal(t, "", links.Composite("owner").String("id"))
}

func Test_Fields_ExtendWithout(t *testing.T) {
	base := NewFields(
		Field("identity", "Id").Required(),
		Field("status", "Status"),
		Field("model", "Model"),
	)
	status := Composite("status", "Status").Fields(Field("state", "State"))

	over := base.Extend(status, Field("metrics", "Metrics").Convert(Identity)).Without("model")

	assert.Equal(t, []string{"identity", "status", "model"}, base.Names())
	assert.Equal(t, []string{"identity", "status", "metrics"}, over.Names())

	old, _ := base.Lookup("status")
	assert.Nil(t, old.Inner())
	replaced, ok := over.Lookup("status")
	require.True(t, ok)
	assert.Equal(t, []string{"state"}, replaced.Inner().Names())

	_, ok = over.Lookup("model")
	assert.False(t, ok)
	assert.Equal(t, 3, base.Len())
}

func Test_Spec_FieldsExtendsCopy(t *testing.T) {
	v1 := Composite("status", "Status").Fields(Field("state", "State"))
	v2 := v1.Fields(Field("health", "Health"))

	assert.Equal(t, []string{"state"}, v1.Inner().Names())
	assert.Equal(t, []string{"state", "health"}, v2.Inner().Names())
}

func Test_Fields_Bind(t *testing.T) {
	fields := NewFields(
		Field("identity", "Id").Required(),
		Field("memory", "MemoryGiB").Convert(Int),
	)

	v, err := fields.Bind(map[string]any{"Id": "1", "MemoryGiB": float64(8)}, testPath)
	require.NoError(t, err)
	assert.Equal(t, "1", v.String("identity"))
	mem, _ := v.Int("memory")
	assert.Equal(t, 8, mem)
	assert.Equal(t, []string{"identity", "memory"}, v.Names())
	assert.Equal(t, map[string]any{"identity": "1", "memory": 8}, v.AsMap())

	_, err = fields.Bind(map[string]any{}, testPath)
	assert.ErrorAs(t, err, new(*MissingAttributeError))
}

func Test_Values_NilSafe(t *testing.T) {
	var v *Values
	assert.Nil(t, v.Get("x"))
	assert.False(t, v.Has("x"))
	assert.Equal(t, "", v.String("x"))
	_, ok := v.Int("x")
	assert.False(t, ok)
	assert.Nil(t, v.Composite("x"))
	assert.Nil(t, v.List("x"))
	assert.Nil(t, v.OEM("x"))
	assert.Nil(t, v.AsMap())
}

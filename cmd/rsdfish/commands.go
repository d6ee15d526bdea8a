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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/comcast/rsdfish/resource"
	"github.com/comcast/rsdfish/v21"
	"github.com/comcast/rsdfish/v22"
	"github.com/comcast/rsdfish/v23"
	"go.uber.org/zap"
)

var (
	ErrUnknownKind      = errors.New("unknown resource kind")
	ErrUnsupportedOnAPI = errors.New("operation not supported by the selected API version")
)

// member is what list needs from a collection member to print it.
type member interface {
	resource.Parser
	Path() string
	Name(ctx context.Context) (string, error)
}

type loader[T member] interface {
	MembersIdentities(ctx context.Context) ([]string, error)
	LoadMembers(ctx context.Context, concurrency int) ([]T, error)
}

// listFunc prints the members of one collection kind.
type listFunc func(ctx context.Context, w io.Writer, names bool, concurrency int) error

func listing[T member, C loader[T]](get func(context.Context) (C, error)) listFunc {
	return func(ctx context.Context, w io.Writer, names bool, concurrency int) error {
		c, err := get(ctx)
		if err != nil {
			return err
		}
		if !names {
			ids, err := c.MembersIdentities(ctx)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(w, id)
			}
			return nil
		}

		members, loadErr := c.LoadMembers(ctx, concurrency)
		for _, m := range members {
			name, err := m.Name(ctx)
			if err != nil {
				// reported through loadErr
				continue
			}
			fmt.Fprintf(w, "%s\t%s\n", m.Path(), name)
		}
		return loadErr
	}
}

// client runs the CLI commands against a single service.
type client struct {
	conn        resource.Transport
	apiVersion  string
	concurrency int
	out         io.Writer
}

func (c *client) kinds() map[string]listFunc {
	switch c.apiVersion {
	case "2.1":
		lib := v21.NewRSDLib(c.conn, "")
		return map[string]listFunc{
			"systems":           listing[*v21.System](lib.GetSystemCollection),
			"chassis":           listing[*v21.Chassis](lib.GetChassisCollection),
			"managers":          listing[*v21.Manager](lib.GetManagerCollection),
			"fabrics":           listing[*v21.Fabric](lib.GetFabricCollection),
			"nodes":             listing[*v21.Node](lib.GetNodeCollection),
			"ethernet-switches": listing[*v21.EthernetSwitch](lib.GetEthernetSwitchCollection),
		}
	case "2.2":
		lib := v22.NewRSDLib(c.conn, "")
		return map[string]listFunc{
			"systems":           listing[*v22.System](lib.GetSystemCollection),
			"chassis":           listing[*v21.Chassis](lib.GetChassisCollection),
			"managers":          listing[*v21.Manager](lib.GetManagerCollection),
			"fabrics":           listing[*v21.Fabric](lib.GetFabricCollection),
			"nodes":             listing[*v21.Node](lib.GetNodeCollection),
			"ethernet-switches": listing[*v22.EthernetSwitch](lib.GetEthernetSwitchCollection),
		}
	default:
		lib := v23.NewRSDLib(c.conn, "")
		return map[string]listFunc{
			"systems":           listing[*v22.System](lib.GetSystemCollection),
			"chassis":           listing[*v21.Chassis](lib.GetChassisCollection),
			"managers":          listing[*v21.Manager](lib.GetManagerCollection),
			"fabrics":           listing[*v23.Fabric](lib.GetFabricCollection),
			"nodes":             listing[*v23.Node](lib.GetNodeCollection),
			"ethernet-switches": listing[*v23.EthernetSwitch](lib.GetEthernetSwitchCollection),
			"storage-services":  listing[*v23.StorageService](lib.GetStorageServiceCollection),
		}
	}
}

func (c *client) kindNames() []string {
	var names []string
	for k := range c.kinds() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (c *client) list(ctx context.Context, kind string, names bool) error {
	fn, ok := c.kinds()[kind]
	if !ok {
		return fmt.Errorf("%w %q, expected one of: %s", ErrUnknownKind, kind, strings.Join(c.kindNames(), ", "))
	}
	return fn(ctx, c.out, names, c.concurrency)
}

// get prints the JSON of the resource at path, or the single value found
// under field when it is set.
func (c *client) get(ctx context.Context, path, field string) error {
	doc, err := c.conn.Get(ctx, path)
	if err != nil {
		return err
	}
	if field == "" {
		return c.print(doc)
	}
	p, err := resource.ParsePath(field)
	if err != nil {
		return err
	}
	v, err := resource.Extract(doc, resource.Field("value", p...).Required(), path)
	if err != nil {
		return err
	}
	return c.print(v)
}

func (c *client) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *client) node(ctx context.Context, path string) (*v23.Node, error) {
	if c.apiVersion != "2.3" {
		return nil, fmt.Errorf("%w: endpoint attachment requires 2.3, have %s", ErrUnsupportedOnAPI, c.apiVersion)
	}
	return v23.NewRSDLib(c.conn, "").GetNode(ctx, path)
}

func (c *client) printLines(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
}

// attach attaches endpoint to the composed node at path. With show set the
// attachable endpoints are printed instead.
func (c *client) attach(ctx context.Context, path, endpoint, protocol string, show bool) error {
	n, err := c.node(ctx, path)
	if err != nil {
		return err
	}
	if show {
		allowed, err := n.AllowedAttachEndpoints(ctx)
		if err != nil {
			return err
		}
		c.printLines(allowed)
		return nil
	}
	return n.AttachEndpoint(ctx, endpoint, protocol)
}

func (c *client) detach(ctx context.Context, path, endpoint string, show bool) error {
	n, err := c.node(ctx, path)
	if err != nil {
		return err
	}
	if show {
		allowed, err := n.AllowedDetachEndpoints(ctx)
		if err != nil {
			return err
		}
		c.printLines(allowed)
		return nil
	}
	return n.DetachEndpoint(ctx, endpoint)
}

// reset resets the composed node at path. An empty resetType prints the
// allowed values.
func (c *client) reset(ctx context.Context, path, resetType string) error {
	version, err := v21.NewRSDLib(c.conn, "").RedfishVersion(ctx)
	if err != nil {
		return err
	}
	n := v21.NewNode(c.conn, path, version)
	if resetType == "" {
		allowed, err := n.AllowedResetTypes(ctx)
		if err != nil {
			return err
		}
		c.printLines(allowed)
		return nil
	}
	if err := n.Reset(ctx, resetType); err != nil {
		return err
	}
	zap.L().Info("node reset requested", zap.String("node", path), zap.String("reset_type", resetType))
	return nil
}

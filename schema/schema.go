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

// Package schema validates request bodies of mutating RSD operations
// against JSON schemas before they are sent.
package schema

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var files embed.FS

// Request schemas of the RSD operations.
var (
	EndpointIdentifiers        = mustLoad("endpoint_identifiers")
	EndpointConnectedEntities  = mustLoad("endpoint_connected_entities")
	EndpointProtocol           = mustLoad("endpoint_protocol")
	EndpointIPTransportDetails = mustLoad("endpoint_ip_transport_details")
	EndpointInterface          = mustLoad("endpoint_interface")
	EndpointAuthentication     = mustLoad("endpoint_authentication")
	VLANNetworkInterface       = mustLoad("vlan_network_interface")
	NodeCompose                = mustLoad("node_compose")
	ZoneUpdate                 = mustLoad("zone_update")
)

// Schema is a JSON schema document compiled on first use.
type Schema struct {
	Name string

	source   []byte
	once     sync.Once
	compiled *gojsonschema.Schema
	err      error
}

// New wraps a JSON schema document.
func New(name string, source []byte) *Schema {
	return &Schema{Name: name, source: source}
}

func mustLoad(name string) *Schema {
	b, err := files.ReadFile("schemas/" + name + ".json")
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return New(name, b)
}

func (s *Schema) compile() (*gojsonschema.Schema, error) {
	s.once.Do(func() {
		s.compiled, s.err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(s.source))
		if s.err != nil {
			s.err = fmt.Errorf("compiling schema %s: %w", s.Name, s.err)
		}
	})
	return s.compiled, s.err
}

// ValidationError lists every violation found in a request body.
type ValidationError struct {
	Schema string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request does not match schema %s: %s", e.Schema, strings.Join(e.Errors, "; "))
}

// Validator checks an instance against a schema.
type Validator interface {
	Validate(instance any, s *Schema) error
}

// JSONSchema is the gojsonschema backed Validator.
type JSONSchema struct{}

// Validate returns a *ValidationError when instance does not conform to s.
// instance may be any value encodable to JSON.
func (JSONSchema) Validate(instance any, s *Schema) error {
	compiled, err := s.compile()
	if err != nil {
		return err
	}
	result, err := compiled.Validate(gojsonschema.NewGoLoader(instance))
	if err != nil {
		return fmt.Errorf("validating against schema %s: %w", s.Name, err)
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{Schema: s.Name}
	for _, re := range result.Errors() {
		verr.Errors = append(verr.Errors, re.String())
	}
	return verr
}

// Default is the validator used when none is configured.
var Default Validator = JSONSchema{}

// Validate checks instance with the Default validator.
func Validate(instance any, s *Schema) error {
	return Default.Validate(instance, s)
}

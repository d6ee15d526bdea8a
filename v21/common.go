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

// Package v21 is the object model of the RSD 2.1 API.
package v21

import (
	"context"

	"github.com/comcast/rsdfish/resource"
	"go.uber.org/zap"
)

// StatusSpec binds a Redfish Status block.
var StatusSpec = resource.Composite("status", "Status").Fields(
	resource.Field("state", "State"),
	resource.Field("health", "Health"),
	resource.Field("health_rollup", "HealthRollup"),
)

// IdentifiersSpec binds a list of durable names.
var IdentifiersSpec = resource.List("identifiers", "Identifiers").Fields(
	resource.Field("name_format", "DurableNameFormat"),
	resource.Field("name", "DurableName"),
)

func oemSpec() resource.Spec {
	return resource.Field("oem", "Oem").Convert(resource.OEM)
}

func link(name string, path ...string) resource.Spec {
	return resource.Field(name, path...).Convert(resource.Identity)
}

func links(name string, path ...string) resource.Spec {
	return resource.Field(name, path...).Convert(resource.Identities).Default([]string{})
}

// DefaultResetTypes are accepted by a reset action that does not advertise
// its allowable values.
var DefaultResetTypes = []string{
	"On", "ForceOff", "GracefulShutdown", "GracefulRestart",
	"ForceRestart", "Nmi", "ForceOn", "PushPowerButton",
}

// AllowedResetTypes returns the reset types advertised by the action called
// name.
func AllowedResetTypes(ctx context.Context, r *resource.Resource, name string) ([]string, error) {
	action, err := r.Action(ctx, name)
	if err != nil {
		return nil, err
	}
	return resetTypes(action), nil
}

func resetTypes(action *resource.Values) []string {
	if allowed := action.Strings("reset_type_allowable_values"); len(allowed) > 0 {
		return allowed
	}
	return DefaultResetTypes
}

type resetRequest struct {
	ResetType string `json:"ResetType"`
}

// Reset posts resetType to the reset action called name and invalidates r.
func Reset(ctx context.Context, r *resource.Resource, name, resetType string) error {
	action, err := r.Action(ctx, name)
	if err != nil {
		return err
	}
	if err := resource.CheckAllowed("value", resetType, resetTypes(action)); err != nil {
		return err
	}
	target := action.String("target_uri")
	if _, err := r.Conn().Post(ctx, target, resetRequest{ResetType: resetType}); err != nil {
		zap.L().Error("reset failed", zap.String("resource", r.Path()), zap.String("reset_type", resetType), zap.Error(err))
		return err
	}
	zap.L().Info("reset requested", zap.String("resource", r.Path()), zap.String("reset_type", resetType))
	r.Invalidate()
	return nil
}

// resetAction declares a reset action with its advertised reset types.
func resetAction(name, key string) resource.Spec {
	return resource.Action(name, key).Fields(
		resource.Field("reset_type_allowable_values", "ResetType@Redfish.AllowableValues").Convert(resource.AllowableValues),
	)
}

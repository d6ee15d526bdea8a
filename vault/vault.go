/*
 * Copyright 2023 Comcast Cable Communications Management, LLC
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

package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"

	vault "github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/approle"
	"go.uber.org/zap"
)

var (
	log *zap.Logger

	ErrNotLoggedIn = errors.New("vault client is not logged in")
)

type Parameters struct {
	// connection and credential parameters
	Address         string
	ApproleRoleID   string
	ApproleSecretID string
	CACertBytes     []byte
}

// the locations / field names of kv secrets
type SecretProperties struct {
	MountPath     string
	Path          string
	UserField     string
	PasswordField string
	SecretName    string
}

type Vault struct {
	mu         sync.RWMutex
	client     *vault.Client
	Parameters Parameters
	isLoggedIn bool
}

// NewVaultAppRoleClient builds a client for the AppRole authentication
// method. Login must be called before secrets can be read.
func NewVaultAppRoleClient(ctx context.Context, parameters Parameters) (*Vault, error) {
	config := vault.DefaultConfig()
	if config.Error != nil {
		return nil, fmt.Errorf("unable to read vault environment: %w", config.Error)
	}
	config.Address = parameters.Address
	if len(parameters.CACertBytes) > 0 {
		if err := config.ConfigureTLS(&vault.TLSConfig{
			CACertBytes: parameters.CACertBytes,
		}); err != nil {
			return nil, fmt.Errorf("unable to configure TLS: %w", err)
		}
	}

	client, err := vault.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize vault client: %w", err)
	}

	vault := &Vault{
		client:     client,
		Parameters: parameters,
	}

	return vault, nil
}

// Login authenticates with the RoleID and SecretID pair. The returned token
// is installed on the client.
func (v *Vault) Login(ctx context.Context) (*vault.Secret, error) {
	var roleId, secretId string
	log = zap.L()

	v.mu.RLock()
	roleId = v.Parameters.ApproleRoleID
	secretId = v.Parameters.ApproleSecretID
	v.mu.RUnlock()

	approleSecretID := &approle.SecretID{
		FromString: secretId,
	}

	appRoleAuth, err := approle.NewAppRoleAuth(
		roleId,
		approleSecretID,
	)
	if err != nil {
		v.setLoggedIn(false)
		return nil, fmt.Errorf("unable to initialize approle authentication method: %w", err)
	}

	authInfo, err := v.client.Auth().Login(ctx, appRoleAuth)
	if err != nil {
		v.setLoggedIn(false)
		return nil, fmt.Errorf("unable to login using approle auth method: %w", err)
	}

	v.setLoggedIn(true)
	log.Info("logged in to vault", zap.String("address", v.Parameters.Address))
	return authInfo, nil
}

// secretPath joins the configured path with the secret name, or with target
// when no fixed name is configured.
func (p *SecretProperties) secretPath(target string) string {
	name := target
	if p.SecretName != "" {
		name = p.SecretName
	}
	if p.Path == "" {
		return name
	}
	return p.Path + "/" + name
}

// GetKVSecret reads the latest version of the secret of target. Mounts named
// "kv2" are read with the v2 API, every other mount with v1.
func (v *Vault) GetKVSecret(ctx context.Context, props *SecretProperties, target string) (*vault.KVSecret, error) {
	if !v.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}

	path := props.secretPath(target)
	var (
		secret *vault.KVSecret
		err    error
	)
	if props.MountPath == "kv2" {
		secret, err = v.client.KVv2(props.MountPath).Get(ctx, path)
	} else {
		secret, err = v.client.KVv1(props.MountPath).Get(ctx, path)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read secret %s/%s: %w", props.MountPath, path, err)
	}
	return secret, nil
}

// Logout revokes the client token. It is a no-op when not logged in.
func (v *Vault) Logout(ctx context.Context) {
	if !v.IsLoggedIn() {
		return
	}
	log = zap.L()
	if err := v.client.Auth().Token().RevokeSelfWithContext(ctx, v.client.Token()); err != nil {
		log.Warn("unable to revoke vault token", zap.Error(err))
	}
	v.setLoggedIn(false)
}

func (v *Vault) IsLoggedIn() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.isLoggedIn
}

func (v *Vault) setLoggedIn(b bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.isLoggedIn = b
}

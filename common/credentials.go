package common

import (
	"context"
	"fmt"
	"sync"

	cm_vault "github.com/comcast/rsdfish/vault"
	"go.uber.org/zap"
)

var (
	log *zap.Logger
)

// Credentials caches the credentials of management endpoints, keyed by
// vault target. Cache misses are resolved from vault when one is configured.
type Credentials struct {
	mu    sync.Mutex
	Creds map[string]*Credential
	Vault *cm_vault.Vault
	Props *cm_vault.SecretProperties
}

type Credential struct {
	User string
	Pass string
}

func NewCredentials(v *cm_vault.Vault, props *cm_vault.SecretProperties) *Credentials {
	return &Credentials{
		Creds: make(map[string]*Credential),
		Vault: v,
		Props: props,
	}
}

func (c *Credentials) Get(key string) (*Credential, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.Creds[key]
	return val, ok
}

func (c *Credentials) Set(key string, value *Credential) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Creds[key] = value
}

func (c *Credentials) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Creds, key)
}

// HasVault reports whether cache misses can be resolved.
func (c *Credentials) HasVault() bool {
	return c != nil && c.Vault != nil
}

// Lookup returns the cached credential of target, fetching it from vault on
// a miss.
func (c *Credentials) Lookup(ctx context.Context, target string) (*Credential, error) {
	if cred, ok := c.Get(target); ok {
		return cred, nil
	}
	cred, err := c.GetCredentials(ctx, target)
	if err != nil {
		return nil, err
	}
	c.Set(target, cred)
	return cred, nil
}

// Rotate drops the cached credential of target and fetches it again.
func (c *Credentials) Rotate(ctx context.Context, target string) (*Credential, error) {
	c.Delete(target)
	return c.Lookup(ctx, target)
}

func (c *Credentials) GetCredentials(ctx context.Context, target string) (*Credential, error) {
	var credential *Credential
	var ok bool
	var user, pass string

	log = zap.L()

	if c.Vault == nil || c.Props == nil {
		log.Error("issue retrieving credentials from vault using target "+target, zap.Error(fmt.Errorf("vault client not configured")))
		return credential, fmt.Errorf("issue retrieving credentials from vault using target: %s", target)
	}

	secret, err := c.Vault.GetKVSecret(ctx, c.Props, target)
	if err != nil {
		log.Error("issue retrieving credentials from vault using target "+target, zap.Error(err))
		return credential, fmt.Errorf("issue retrieving credentials from vault using target: %s: %w", target, err)
	}

	if user, ok = secret.Data[c.Props.UserField].(string); !ok {
		return credential, fmt.Errorf("the secret retrieved from vault using target %s is missing the %q field", target, c.Props.UserField)
	}

	if pass, ok = secret.Data[c.Props.PasswordField].(string); !ok {
		return credential, fmt.Errorf("the secret retrieved from vault using target %s is missing the %q field", target, c.Props.PasswordField)
	}
	credential = &Credential{
		User: user,
		Pass: pass,
	}

	return credential, nil
}

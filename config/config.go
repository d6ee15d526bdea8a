package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Endpoint     string        `yaml:"endpoint"`
	Scheme       string        `yaml:"scheme"`
	Timeout      time.Duration `yaml:"timeout"`
	User         string        `yaml:"user"`
	Pass         string        `yaml:"password"`
	Insecure     bool          `yaml:"insecure"`
	RetryMax     int           `yaml:"retry_max"`
	RetryWaitMin time.Duration `yaml:"retry_wait_min"`
	RetryWaitMax time.Duration `yaml:"retry_wait_max"`
	ProxyURL     string        `yaml:"proxy_url"`
	APIVersion   string        `yaml:"api_version"`
	Concurrency  int           `yaml:"concurrency"`

	// CredentialTarget names the vault secret holding the credentials of
	// the endpoint. Empty means User and Pass are used as-is.
	CredentialTarget string `yaml:"credential_target"`

	Vault VaultConfig `yaml:"vault"`
	Log   LogConfig   `yaml:"log"`
}

type VaultConfig struct {
	Address       string `yaml:"address"`
	RoleID        string `yaml:"role_id"`
	SecretID      string `yaml:"secret_id"`
	CACertFile    string `yaml:"ca_cert_file"`
	MountPath     string `yaml:"mount_path"`
	Path          string `yaml:"path"`
	UserField     string `yaml:"user_field"`
	PasswordField string `yaml:"password_field"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Method     string `yaml:"method"`
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

var (
	config *Config
	once   sync.Once
)

// Default returns a configuration with every optional value filled in.
func Default() *Config {
	return &Config{
		Scheme:       "https",
		Timeout:      30 * time.Second,
		RetryMax:     2,
		RetryWaitMin: 2 * time.Second,
		RetryWaitMax: 2 * time.Second,
		APIVersion:   "2.3",
		Concurrency:  4,
		Vault: VaultConfig{
			MountPath:     "kv2",
			UserField:     "user",
			PasswordField: "password",
		},
		Log: LogConfig{
			Level:      "info",
			Method:     "stdout",
			FilePath:   "/var/log/rsdfish",
			MaxSize:    256,
			MaxBackups: 1,
			MaxAge:     1,
		},
	}
}

// LoadFile reads a YAML configuration file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("unable to parse config file %s: %w", path, err)
	}
	return c, nil
}

func NewConfig(c *Config) {
	once.Do(func() {
		if c != nil {
			config = c
		} else {
			config = Default()
		}
	})
}

func GetConfig() *Config {
	if config != nil {
		return config
	}

	NewConfig(nil)
	return config
}

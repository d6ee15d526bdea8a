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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/comcast/rsdfish/buildinfo"
	"github.com/comcast/rsdfish/common"
	"github.com/comcast/rsdfish/config"
	"github.com/comcast/rsdfish/connector"
	"github.com/comcast/rsdfish/logger"
	"github.com/comcast/rsdfish/vault"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	app = "rsdfish"
)

var (
	a              = kingpin.New(app, "command line client for Intel RSD / redfish pod managers")
	configFile     = a.Flag("config.file", "YAML configuration file, flags take precedence over its values").Default("").Envar("RSDFISH_CONFIG").String()
	endpoint       = a.Flag("endpoint", "pod manager address, a URL or host[:port]").Default("").Envar("RSD_ENDPOINT").String()
	scheme         = a.Flag("scheme", "scheme used when the endpoint has none").Default("").Envar("RSD_SCHEME").String()
	username       = a.Flag("user", "static username").Default("").Envar("RSD_USERNAME").String()
	password       = a.Flag("password", "static password").Default("").Envar("RSD_PASSWORD").String()
	timeout        = a.Flag("timeout", "request timeout").Default("0s").Envar("RSD_TIMEOUT").Duration()
	insecure       = a.Flag("insecure-skip-verify", "Skip TLS verification").Default("false").Envar("INSECURE_SKIP_VERIFY").Bool()
	proxyURL       = a.Flag("proxy-url", "HTTP proxy used to reach the pod manager").Default("").Envar("RSD_PROXY_URL").String()
	apiVersion     = a.Flag("api-version", "RSD API version of the object model").PlaceHolder("[2.1|2.2|2.3]").Default("").Envar("RSD_API_VERSION").Enum("", "2.1", "2.2", "2.3")
	concurrency    = a.Flag("concurrency", "members fetched in parallel when loading a collection").Default("0").Envar("RSD_CONCURRENCY").Int()
	logLevel       = a.Flag("log.level", "log level verbosity").PlaceHolder("[debug|info|warn|error]").Default("").Envar("LOG_LEVEL").String()
	logMethod      = a.Flag("log.method", "alternative method for logging in addition to stderr").PlaceHolder("[file]").Default("").Envar("LOG_METHOD").String()
	logFilePath    = a.Flag("log.file-path", "directory path where log files are written if log-method is file").Default("").Envar("LOG_FILE_PATH").String()
	vaultAddr      = a.Flag("vault.addr", "Vault instance address to get pod manager credentials from").Default("").Envar("VAULT_ADDRESS").String()
	vaultRoleId    = a.Flag("vault.role-id", "Vault Role ID for AppRole").Default("").Envar("VAULT_ROLE_ID").String()
	vaultSecretId  = a.Flag("vault.secret-id", "Vault Secret ID for AppRole").Default("").Envar("VAULT_SECRET_ID").String()
	credTarget     = a.Flag("credentials.target", "secret name holding the pod manager credentials").Default("").Envar("CREDENTIAL_TARGET").String()
	metricsSummary = a.Flag("metrics.summary", "log the client request counters on exit").Default("false").Bool()

	getCmd   = a.Command("get", "print the JSON of a resource")
	getPath  = getCmd.Arg("path", "resource path, e.g. /redfish/v1/Systems/1").Required().String()
	getField = getCmd.Flag("field", `dotted path of a single value, e.g. Oem.Intel_RackScale.Metrics or Actions["#ComposedNode.Reset"].target`).Default("").String()

	listCmd   = a.Command("list", "list the members of a collection")
	listKind  = listCmd.Arg("kind", "systems, chassis, managers, fabrics, nodes, ethernet-switches or storage-services").Required().String()
	listNames = listCmd.Flag("names", "load every member and print its name").Default("false").Bool()

	attachCmd      = a.Command("attach", "attach an endpoint to a composed node")
	attachNode     = attachCmd.Arg("node", "composed node path").Required().String()
	attachEndpoint = attachCmd.Arg("endpoint", "endpoint or volume path, empty lets the service choose").Default("").String()
	attachProtocol = attachCmd.Flag("protocol", "protocol used for the attachment").Default("").String()
	attachShow     = attachCmd.Flag("show", "print the attachable endpoints").Default("false").Bool()

	detachCmd      = a.Command("detach", "detach an endpoint from a composed node")
	detachNode     = detachCmd.Arg("node", "composed node path").Required().String()
	detachEndpoint = detachCmd.Arg("endpoint", "endpoint or volume path").Default("").String()
	detachShow     = detachCmd.Flag("show", "print the detachable endpoints").Default("false").Bool()

	resetCmd  = a.Command("reset", "reset a composed node, without a type the allowed types are printed")
	resetNode = resetCmd.Arg("node", "composed node path").Required().String()
	resetType = resetCmd.Arg("type", "reset type").Default("").String()

	versionCmd = a.Command("version", "print build information")

	log *zap.Logger
)

// overlay copies the flags set on the command line or in the environment
// over the file configuration.
func overlay(c *config.Config) {
	if *endpoint != "" {
		c.Endpoint = *endpoint
	}
	if *scheme != "" {
		c.Scheme = *scheme
	}
	if *username != "" {
		c.User = *username
	}
	if *password != "" {
		c.Pass = *password
	}
	if *timeout > 0 {
		c.Timeout = *timeout
	}
	if *insecure {
		c.Insecure = true
	}
	if *proxyURL != "" {
		c.ProxyURL = *proxyURL
	}
	if *apiVersion != "" {
		c.APIVersion = *apiVersion
	}
	if *concurrency > 0 {
		c.Concurrency = *concurrency
	}
	if *logLevel != "" {
		c.Log.Level = *logLevel
	}
	if *logMethod != "" {
		c.Log.Method = *logMethod
	}
	if *logFilePath != "" {
		c.Log.FilePath = *logFilePath
	}
	if *vaultAddr != "" {
		c.Vault.Address = *vaultAddr
	}
	if *vaultRoleId != "" {
		c.Vault.RoleID = *vaultRoleId
	}
	if *vaultSecretId != "" {
		c.Vault.SecretID = *vaultSecretId
	}
	if *credTarget != "" {
		c.CredentialTarget = *credTarget
	}
}

func loadConfig() (*config.Config, error) {
	c := config.Default()
	if *configFile != "" {
		var err error
		if c, err = config.LoadFile(*configFile); err != nil {
			return nil, err
		}
	}
	overlay(c)
	config.NewConfig(c)
	return config.GetConfig(), nil
}

func credentials(ctx context.Context, c *config.Config) (*common.Credentials, error) {
	if c.Vault.RoleID == "" || c.Vault.SecretID == "" {
		return nil, nil
	}
	params := vault.Parameters{
		Address:         c.Vault.Address,
		ApproleRoleID:   c.Vault.RoleID,
		ApproleSecretID: c.Vault.SecretID,
	}
	if c.Vault.CACertFile != "" {
		b, err := os.ReadFile(c.Vault.CACertFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read vault CA certificate: %w", err)
		}
		params.CACertBytes = b
	}
	v, err := vault.NewVaultAppRoleClient(ctx, params)
	if err != nil {
		return nil, err
	}
	if _, err := v.Login(ctx); err != nil {
		return nil, err
	}
	return common.NewCredentials(v, &vault.SecretProperties{
		MountPath:     c.Vault.MountPath,
		Path:          c.Vault.Path,
		UserField:     c.Vault.UserField,
		PasswordField: c.Vault.PasswordField,
	}), nil
}

// logRequestCounters logs every counter gathered from reg at debug level.
func logRequestCounters(reg prometheus.Gatherer) {
	families, err := reg.Gather()
	if err != nil {
		log.Warn("unable to gather client metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			fields := []zap.Field{zap.String("metric", mf.GetName()), zap.Float64("value", m.GetCounter().GetValue())}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			log.Info("client metric", fields...)
		}
	}
}

// connect builds the client for c. The proxy is installed on ctx before the
// connector is created since New reads it from there.
func connect(ctx context.Context, c *config.Config, creds *common.Credentials, reg prometheus.Registerer, out io.Writer) (context.Context, *client, error) {
	if c.ProxyURL != "" {
		ctx = connector.WithProxyURL(ctx, c.ProxyURL)
	}

	conn, err := connector.New(ctx, connector.Options{
		Endpoint:         c.Endpoint,
		Scheme:           c.Scheme,
		User:             c.User,
		Pass:             c.Pass,
		Insecure:         c.Insecure,
		Timeout:          c.Timeout,
		RetryMax:         c.RetryMax,
		RetryWaitMin:     c.RetryWaitMin,
		RetryWaitMax:     c.RetryWaitMax,
		Credentials:      creds,
		CredentialTarget: c.CredentialTarget,
		Registerer:       reg,
	})
	if err != nil {
		return ctx, nil, err
	}

	return ctx, &client{
		conn:        conn,
		apiVersion:  c.APIVersion,
		concurrency: c.Concurrency,
		out:         out,
	}, nil
}

func run(ctx context.Context, cmd string, c *config.Config, reg prometheus.Registerer) error {
	creds, err := credentials(ctx, c)
	if err != nil {
		return err
	}
	if creds.HasVault() {
		defer creds.Vault.Logout(ctx)
	}

	ctx, cl, err := connect(ctx, c, creds, reg, os.Stdout)
	if err != nil {
		return err
	}

	switch cmd {
	case getCmd.FullCommand():
		return cl.get(ctx, *getPath, *getField)
	case listCmd.FullCommand():
		return cl.list(ctx, *listKind, *listNames)
	case attachCmd.FullCommand():
		return cl.attach(ctx, *attachNode, *attachEndpoint, *attachProtocol, *attachShow)
	case detachCmd.FullCommand():
		return cl.detach(ctx, *detachNode, *detachEndpoint, *detachShow)
	case resetCmd.FullCommand():
		return cl.reset(ctx, *resetNode, *resetType)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func main() {
	ctx := context.Background()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = ""
	}

	a.HelpFlag.Short('h')
	a.Version(buildinfo.UserAgent())

	cmd, err := a.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing arguments - %s\n", err.Error())
		os.Exit(2)
	}

	if cmd == versionCmd.FullCommand() {
		if err := buildinfo.Print(os.Stdout); err != nil {
			os.Exit(1)
		}
		return
	}

	c, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration - %s\n", err.Error())
		os.Exit(2)
	}

	logger.Initialize(app, hostname, logger.LoggerConfig{
		Level:      c.Log.Level,
		Method:     c.Log.Method,
		Path:       c.Log.FilePath,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	})
	log = zap.L()
	defer logger.Flush()

	reg := prometheus.NewRegistry()
	start := time.Now()
	err = run(ctx, cmd, c, reg)
	if *metricsSummary {
		logRequestCounters(reg)
	}
	if err != nil {
		log.Error("command failed", zap.String("command", cmd), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		logger.Flush()
		os.Exit(1)
	}
	log.Debug("command finished", zap.String("command", cmd), zap.Duration("elapsed", time.Since(start)))
}

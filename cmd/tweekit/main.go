// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tweekit CLI, a client for the
// TweekIT document conversion service reached over MCP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/kirsle/configdir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/equilibrium-team/tweekit-go/internal/convert"
	"github.com/equilibrium-team/tweekit-go/internal/history"
	"github.com/equilibrium-team/tweekit-go/internal/mcpclient"
	"github.com/equilibrium-team/tweekit-go/internal/options"
	"github.com/equilibrium-team/tweekit-go/internal/secrets"
	"github.com/equilibrium-team/tweekit-go/internal/storage"
	"github.com/equilibrium-team/tweekit-go/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	appName    = "tweekit"
	envPrefix  = "TWEEKIT"
	secretsDir = ".secrets/"

	// envMCPServer is the historical name of the endpoint variable.
	envMCPServer = "TWEEKIT_MCP_SERVER"
)

// app holds the state shared by the subcommands of one invocation.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer

	// lookup reads environment variables; tests may replace it.
	lookup secrets.LookupFunc

	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	cfg types.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
		lookup: os.LookupEnv,
	}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		// Remote failures were already reported by the printer.
		if !errors.Is(err, convert.ErrRemoteOperation) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	opts := options.Default()
	root := &cobra.Command{
		Use:   appName,
		Short: "Convert documents with the TweekIT MCP service",
		Long: `tweekit converts documents and images by calling the TweekIT conversion
tools over the Model Context Protocol.

The quickstart is the convert subcommand: it reads a local file, lists the
tools the server exposes, calls convert once and prints the result. Given
--file and --outfmt without a subcommand, tweekit runs the same flow.

Credentials are read from TWEAKIT_API_KEY and TWEAKIT_API_SECRET, falling
back to the files tweakit-api-key and tweakit-api-secret in .secrets/.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  tweekit --file report.docx --outfmt pdf
  tweekit convert --file photo.png --outfmt jpg --width 800`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("file") && !cmd.Flags().Changed("outfmt") {
				return cmd.Help()
			}
			return a.runConvert(cmd, &opts)
		},
	}
	opts.BindFlags(root.Flags())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return options.WrapFlagError(err)
	})

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: ./tweekit.yaml or <user config dir>/tweekit/tweekit.yaml)")
	pf.String("server", "", "MCP endpoint URL (default "+types.DefaultServerURL+")")
	pf.String("log-level", "", "log level: debug, info, warn, error (default warn)")
	pf.Duration("timeout", 0, "bound the whole invocation, e.g. 90s (default no timeout)")
	pf.StringP("output", "o", "", "result rendering: text, json or yaml (default text)")
	pf.Bool("history", false, "record tool calls in the local history database")

	for key, flag := range map[string]string{
		"server.url":      "server",
		"server.timeout":  "timeout",
		"log_level":       "log-level",
		"output":          "output",
		"history.enabled": "history",
	} {
		// Lookup cannot return nil for the flags defined above.
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newConvertCmd(a),
		newConvertURLCmd(a),
		newDoctypeCmd(a),
		newToolsCmd(a),
		newHistoryCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration, configures logging and loads secrets. It runs
// before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	used, err := a.loadConfig(cfgFile)
	if err != nil {
		return err
	}
	if err := configureLogging(a.stderr, a.cfg.LogLevel); err != nil {
		return err
	}
	if used != "" {
		logrus.WithField("file", used).Info("using config file")
	}

	s, err := secrets.Load(secretsDir)
	if err != nil {
		return err
	}
	a.loadedSecrets = s
	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		logrus.WithField("secrets", keys).Debug("loaded secrets")
	}
	return nil
}

// loadConfig reads the optional config file and environment into a.cfg.
// It returns the config file used, if any.
func (a *app) loadConfig(cfgFile string) (string, error) {
	v := a.v
	v.SetDefault("server.url", types.DefaultServerURL)
	v.SetDefault("server.timeout", time.Duration(0))
	v.SetDefault("server.user_agent", "tweekit-go/"+version)
	v.SetDefault("output", string(types.OutputText))
	v.SetDefault("log_level", "warn")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.use_path_style", false)
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.url", envMCPServer, envPrefix+"_SERVER_URL"); err != nil {
		return "", fmt.Errorf("binding environment: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(configdir.LocalConfig(appName))
	}

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return "", fmt.Errorf("reading config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&a.cfg); err != nil {
		return "", fmt.Errorf("decoding config: %w", err)
	}
	switch a.cfg.Output {
	case types.OutputText, types.OutputJSON, types.OutputYAML:
	default:
		return "", fmt.Errorf("%w: --output must be text, json or yaml, got %q", options.ErrInvalidArguments, a.cfg.Output)
	}
	return used, nil
}

func configureLogging(w io.Writer, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("%w: --log-level: %v", options.ErrInvalidArguments, err)
	}
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(lvl)
	return nil
}

// credentials resolves the API key pair from the environment, then from
// .secrets/.
func (a *app) credentials() (types.Credentials, error) {
	return secrets.Resolve(a.lookup, a.loadedSecrets)
}

func (a *app) printer() *convert.Printer {
	return &convert.Printer{Out: a.stdout, Err: a.stderr, Format: a.cfg.Output}
}

// withSession connects to the MCP server, runs fn and closes the session
// whether or not fn succeeds.
func (a *app) withSession(ctx context.Context, creds types.Credentials, fn func(context.Context, *mcpclient.Session) error) error {
	if a.cfg.Server.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Server.Timeout)
		defer cancel()
	}

	client := mcpclient.New(a.cfg.Server, version)
	logrus.WithField("endpoint", client.Endpoint()).Info("connecting to MCP server")
	session, err := client.Connect(ctx, creds)
	if err != nil {
		return err
	}
	defer session.Close()

	return fn(ctx, session)
}

// withRunner is withSession for commands that call a conversion tool.
func (a *app) withRunner(ctx context.Context, creds types.Credentials, fn func(context.Context, *convert.Runner) error) error {
	return a.withSession(ctx, creds, func(ctx context.Context, session *mcpclient.Session) error {
		runner := &convert.Runner{
			Session: session,
			Printer: a.printer(),
			Saver:   storage.NewSaver(a.cfg.S3),
		}
		if a.cfg.History.Enabled {
			store, err := history.Open(a.cfg.History.Path)
			if err != nil {
				logrus.WithError(err).Warn("history unavailable, not recording")
			} else {
				defer store.Close()
				runner.Recorder = store
			}
		}
		return fn(ctx, runner)
	})
}

// noArgs rejects positional arguments as invalid arguments.
func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %q; use --flag value pairs", options.ErrInvalidArguments, args[0])
	}
	return nil
}

// Package main implements bindctl, a CLI for checking and inspecting binding
// manifests.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openbindings/binding-go/internal/config"
	"github.com/openbindings/binding-go/internal/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by all subcommands. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "bindctl",
		Short: "Check and inspect binding manifests",
		Long: `bindctl loads binding manifests (JSON, YAML or TOML), validates every
binding against the types they declare and lists the result.

Settings are read from an optional YAML file (--config) and BINDCTL_*
environment variables. Flags override both.

Examples:
  # Validate manifests
  bindctl validate bindings.json plugins.yaml

  # List declared types
  bindctl types bindings.toml

  # List German translation bindings
  bindctl bindings bindings.json --type acme/translations --param locale=de`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (json, console)")

	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newTypesCmd(a))
	root.AddCommand(newBindingsCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}

	logger, err := logging.NewWithSink(cfg.Log.Level, cfg.Log.Format, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

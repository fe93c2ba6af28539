// FILE: lixenwraith/confchain/cmd/confchain/root.go
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/confchain"
)

// app holds the state shared by every command of one invocation
type app struct {
	// Flags
	defines     []string
	propFiles   []string
	logLevel    string
	resourceDir string
	httpTimeout time.Duration

	// environ overrides the process environment for CONFCHAIN_* settings
	environ map[string]string

	sources *confchain.Sources
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&app{})
}

func buildRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "confchain",
		Short: "Resolve configuration values from fallback chains",
		Long: `Resolve configuration values from ordered chains of sources.

A chain is written as source expressions separated by '|', highest priority
first. The first source that is set answers:

  env:NAME         environment variable
  property:KEY     property defined with -D or loaded with --properties
  file:PATH        local file content
  resource:PATH    file under the resource directory
  url:LOCATION     http, https or file URL content
  value:TEXT       literal, always set

Defaults for the CLI itself are read from CONFCHAIN_LOG_LEVEL,
CONFCHAIN_HTTP_TIMEOUT, CONFCHAIN_RESOURCE_DIR and CONFCHAIN_PROPERTIES.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringArrayVarP(&a.defines, "define", "D", nil, "Define a property (key=value), repeatable")
	flags.StringArrayVar(&a.propFiles, "properties", nil, "Load properties from a TOML, YAML or JSON file, repeatable")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when empty")
	flags.StringVar(&a.resourceDir, "resource-dir", "", "Directory searched by resource: sources")
	flags.DurationVar(&a.httpTimeout, "timeout", 0, "Timeout for url: sources")

	rootCmd.AddCommand(
		newGetCmd(a),
		newExplainCmd(a),
		newPropsCmd(a),
		newConvertCmd(a),
		newValidateCmd(a),
		newPrefsCmd(a),
	)
	return rootCmd
}

// setup merges environment settings with flags and builds the shared Sources
func (a *app) setup(cmd *cobra.Command) error {
	s, err := loadSettings(a.environ)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("log-level") {
		a.logLevel = s.LogLevel
	}
	if !flags.Changed("resource-dir") {
		a.resourceDir = s.ResourceDir
	}
	if !flags.Changed("timeout") {
		a.httpTimeout = s.HTTPTimeout
	}

	a.logger, err = newLogger(a.logLevel)
	if err != nil {
		return err
	}

	props := confchain.NewProperties()
	for _, path := range append(s.Properties, a.propFiles...) {
		if err := props.LoadFile(path); err != nil {
			return fmt.Errorf("failed to load properties: %w", err)
		}
		a.logger.Debug("Properties loaded", zap.String("path", path))
	}

	defines := make([]string, len(a.defines))
	for i, d := range a.defines {
		defines[i] = "-D" + d
	}
	if _, err := props.LoadArgs(defines); err != nil {
		return err
	}

	a.sources = confchain.NewSources(
		confchain.WithEnvironment(a.environment()),
		confchain.WithProperties(props),
		confchain.WithLocator(confchain.DirLocator(a.resourceDir)),
		confchain.WithHTTPTimeout(a.httpTimeout),
		confchain.WithLogger(a.logger),
	)
	return nil
}

func (a *app) environment() confchain.Environment {
	if a.environ != nil {
		return confchain.NewMapEnvironment(a.environ)
	}
	return confchain.OSEnvironment{}
}

// chain parses command arguments as one chain; separate arguments are alternatives
func (a *app) chain(args []string) (*confchain.Chain, error) {
	chain := a.sources.New()
	for _, arg := range args {
		next, err := a.sources.ParseChain(arg)
		if err != nil {
			return nil, err
		}
		chain = chain.Or(next)
	}
	if chain.Len() == 0 {
		return nil, fmt.Errorf("%w: no source expression given", confchain.ErrMalformedSource)
	}
	return chain, nil
}

// FILE: lixenwraith/confchain/cmd/confchain/commands.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/confchain"
	"github.com/lixenwraith/confchain/codec"
	"github.com/lixenwraith/confchain/internal/fileutil"
)

// errNotSupplied reports a chain with no set source, or text the requested type rejects
var errNotSupplied = errors.New("value not supplied")

// Conversions accepted by get --as
const (
	asText     = "text"
	asInt      = "int"
	asInt64    = "int64"
	asFloat    = "float"
	asBool     = "bool"
	asTime     = "time"
	asDuration = "duration"
	asSplit    = "split"
)

func newGetCmd(a *app) *cobra.Command {
	var (
		as       string
		layout   string
		fallback string
		read     bool
	)

	cmd := &cobra.Command{
		Use:   "get <expr>...",
		Short: "Print the value of the first set source",
		Long: `Resolve a chain and print the value of its first set source.

Each argument may hold several expressions separated by '|'. Separate
arguments are appended to the chain in order. The command fails when no
source is set or when the value cannot be converted with --as.`,
		Example: `  # Environment first, then a secret file, then a literal
  confchain get 'env:DB_PASSWORD | file:/run/secrets/db | value:changeme'

  # Typed conversion
  confchain get env:WORKERS --as int --default 4

  # Property defined on the command line
  confchain -D server.port=9090 get property:server.port

  # Treat the value as a path and print the file it points to
  confchain get env:APP_CONFIG --read`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := a.chain(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("default") {
				chain = chain.Value(fallback)
			}

			if read {
				if !chain.IsSet() {
					return fmt.Errorf("%w: %s", errNotSupplied, chain)
				}
				content, err := chain.Read()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			in, err := chain.Input()
			if err != nil {
				return err
			}
			if !in.Present() {
				return fmt.Errorf("%w: %s", errNotSupplied, chain)
			}

			out, ok := convert(in, as, layout)
			if !ok {
				return fmt.Errorf("%w: %q is not a valid %s", errNotSupplied, in.String(), as)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", asText, "Convert to text, int, int64, float, bool, time, duration or split")
	cmd.Flags().StringVar(&layout, "layout", time.RFC3339, "Go time layout used by --as time")
	cmd.Flags().StringVar(&fallback, "default", "", "Literal appended as the last fallback")
	cmd.Flags().BoolVar(&read, "read", false, "Print the content the value points to")
	return cmd
}

// convert renders in according to the --as conversion
func convert(in confchain.Input, as, layout string) (string, bool) {
	switch as {
	case asText:
		raw, ok := in.Raw()
		return raw, ok
	case asInt:
		n, ok := in.Int()
		return strconv.Itoa(n), ok
	case asInt64:
		n, ok := in.Int64()
		return strconv.FormatInt(n, 10), ok
	case asFloat:
		f, ok := in.Float64()
		return strconv.FormatFloat(f, 'g', -1, 64), ok
	case asBool:
		b, ok := in.Bool()
		return strconv.FormatBool(b), ok
	case asTime:
		ts, ok := in.Time(layout)
		return ts.Format(time.RFC3339), ok
	case asDuration:
		d, ok := in.Duration()
		return d.String(), ok
	case asSplit:
		items := in.Split()
		return strings.Join(items, "\n"), len(items) > 0
	}
	return "", false
}

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <expr>...",
		Short: "Show which sources of a chain are set",
		Long: `Evaluate every source of a chain and report whether it is set.
The source that answers is marked with '*'.`,
		Example: `  confchain explain 'env:PORT | property:server.port | value:8080'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := a.chain(args)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), chain.Explain())
			return nil
		},
	}
}

func newPropsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "props",
		Short: "List the properties defined by -D and --properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			props := a.sources.Properties()
			for _, key := range props.Keys() {
				value, _ := props.Lookup(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value)
			}
			return nil
		},
	}
}

func newConvertCmd(a *app) *cobra.Command {
	var (
		from   string
		to     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a document between JSON, YAML, TOML and XML",
		Long: `Convert a configuration document to another format.

The input format follows the file extension, then content detection, unless
--from is given. The output goes to stdout unless --out is given, in which
case the file is replaced atomically.`,
		Example: `  confchain convert config.yaml --to toml
  confchain convert settings.conf --from toml --to json --out settings.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read '%s': %w", path, err)
			}

			var source codec.Format
			if from != "" {
				source, err = codec.ParseFormat(from)
			} else {
				source, err = codec.Resolve(path, data)
			}
			if err != nil {
				return err
			}

			target, err := codec.ParseFormat(to)
			if err != nil {
				return err
			}

			set := codec.NewSet(codec.Pretty())
			fromCodec, err := set.Get(source)
			if err != nil {
				return err
			}
			toCodec, err := set.Get(target)
			if err != nil {
				return err
			}

			converted, err := codec.Convert(data, fromCodec, toCodec)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(converted)
				return err
			}
			if err := fileutil.WriteAtomic(output, converted, 0644); err != nil {
				return err
			}
			a.logger.Info("Document converted",
				zap.String("from", string(source)),
				zap.String("to", string(target)),
				zap.String("out", output),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Input format (json, yaml, toml, xml)")
	cmd.Flags().StringVar(&to, "to", "", "Output format (json, yaml, toml, xml)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var schema string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a document against a JSON schema",
		Example: `  confchain validate config.yaml --schema config.schema.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			set := codec.NewSet(codec.WithSchemaFile(schema))

			var doc map[string]any
			if err := set.ReadFile(path, &doc); err != nil {
				return err
			}
			a.logger.Debug("Document validated", zap.String("path", path), zap.String("schema", schema))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d top-level keys)\n", path, len(doc))
			return nil
		},
	}

	cmd.Flags().StringVar(&schema, "schema", "", "JSON schema file")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// FILE: lixenwraith/confchain/cmd/confchain/prefs.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/confchain"
	"github.com/lixenwraith/confchain/preferences"
)

// DefaultPrefsFile is used when --file is not given
const DefaultPrefsFile = "preferences.toml"

func newPrefsCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and edit a preferences file",
		Long: `Inspect and edit a preferences file.

Every key of the file is a text preference; nested tables give dotted ids.`,
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", DefaultPrefsFile, "Preferences file (TOML, YAML or JSON)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				registry, err := loadPrefs(a, file, false)
				if err != nil {
					return err
				}
				for _, entry := range registry.List() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %q\n", entry.ID(), entry.Text())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <id> <value>",
			Short: "Set a preference and save the file",
			Example: `  confchain prefs set ui.theme light
  confchain prefs -f ~/.config/app/prefs.yaml set log.verbose on`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				registry, err := loadPrefs(a, file, true)
				if err != nil {
					return err
				}
				if _, err := preferences.Register(registry, preferences.Spec[string]{
					ID:      args[0],
					Type:    preferences.Text,
					Default: args[1],
				}); err != nil {
					return err
				}
				if err := registry.Set(args[0], args[1]); err != nil {
					return err
				}
				return registry.Save(file)
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Print preference changes as the file is edited",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				registry, err := loadPrefs(a, file, false)
				if err != nil {
					return err
				}

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				events, err := registry.WatchFile(ctx, file, preferences.DefaultWatchOptions())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", file)

				for ev := range events {
					switch ev.Kind {
					case preferences.EventChanged:
						entry, _ := registry.Find(ev.ID)
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %q\n", time.Now().Format(time.TimeOnly), ev.ID, entry.Text())
					case preferences.EventError:
						fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", ev.Err)
					default:
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", time.Now().Format(time.TimeOnly), ev.Kind)
					}
				}
				return nil
			},
		},
	)
	return cmd
}

// loadPrefs registers every key of file as a text preference holding its
// current value. A missing file gives an empty registry when allowMissing is set.
func loadPrefs(a *app, file string, allowMissing bool) (*preferences.Registry, error) {
	registry := preferences.NewRegistry(preferences.WithLogger(a.logger))

	props := confchain.NewProperties()
	if err := props.LoadFile(file); err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			a.logger.Debug("Preferences file not found, starting empty", zap.String("path", file))
			return registry, nil
		}
		return nil, err
	}

	for id, value := range props.Snapshot() {
		if _, err := preferences.Register(registry, preferences.Spec[string]{
			ID:      id,
			Type:    preferences.Text,
			Default: value,
		}); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// FILE: lixenwraith/confchain/example/main.go
package main

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/confchain"
	"github.com/lixenwraith/confchain/codec"
	"github.com/lixenwraith/confchain/preferences"
)

//go:embed defaults
var defaults embed.FS

// AppConfig is decoded from the discovered configuration file.
// Password holds a chain expression resolved on use.
type AppConfig struct {
	Server struct {
		Host string        `toml:"host"`
		Port int           `toml:"port"`
		Idle time.Duration `toml:"idle"`
	} `toml:"server"`
	Database struct {
		URL      string           `toml:"url"`
		Password *confchain.Chain `toml:"password"`
	} `toml:"database"`
}

var (
	prefTheme = preferences.Spec[string]{ID: "ui.theme", Description: "Color theme", Type: preferences.Text, Default: "dark"}
	prefDebug = preferences.Spec[bool]{ID: "log.debug", Description: "Debug logging", Type: preferences.Flag, Default: "off"}
)

const configFile = `
[server]
host = "localhost"
port = 8080
idle = "30s"

[database]
url = "postgres://db.local/app"
password = "env:DEMO_DB_PASSWORD | resource:db_password | value:changeme"
`

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	workDir, err := os.MkdirTemp("", "confchain-demo-")
	if err != nil {
		logger.Fatal("Failed to create work directory", zap.Error(err))
	}
	defer os.RemoveAll(workDir)

	// PART 1: sources with injected capabilities
	props := confchain.NewProperties()
	if _, err := props.LoadArgs(os.Args[1:]); err != nil {
		logger.Fatal("Invalid arguments", zap.Error(err))
	}

	sources := confchain.NewSources(
		confchain.WithProperties(props),
		confchain.WithLocator(confchain.Locators{
			confchain.DirLocator(filepath.Join(workDir, "overrides")),
			confchain.FSLocator{FS: mustSub(defaults, "defaults")},
		}),
		confchain.WithLogger(logger),
	)

	// PART 2: simple chains
	port, err := sources.New().
		Env("DEMO_PORT").
		Property("server.port").
		Resource("port").
		Value("8080").
		Input()
	if err != nil {
		logger.Fatal("Failed to resolve port", zap.Error(err))
	}
	n, _ := port.Int()
	logger.Info("Port resolved", zap.Int("port", n))

	// PART 3: discovery and decoding
	configPath := filepath.Join(workDir, "demo.toml")
	if err := os.WriteFile(configPath, []byte(configFile), 0644); err != nil {
		logger.Fatal("Failed to write config", zap.Error(err))
	}

	opts := confchain.DefaultDiscoveryOptions("demo")
	opts.Paths = []string{workDir}
	discovered := sources.Discover(opts)
	logger.Info("Discovery chain", zap.String("explain", discovered.Explain()))

	c := codec.TOML(codec.WithDecodeHook(sources.DecodeHook()))
	var cfg AppConfig
	if err := confchain.DecodeValue(discovered, c, &cfg); err != nil {
		logger.Fatal("Failed to decode config", zap.Error(err))
	}
	password, err := cfg.Database.Password.Get()
	if err != nil {
		logger.Fatal("Failed to resolve password", zap.Error(err))
	}
	logger.Info("Configuration loaded",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Duration("idle", cfg.Server.Idle),
		zap.Int("password_length", len(password)),
		zap.String("password_source", cfg.Database.Password.String()),
	)

	// PART 4: preferences kept in sync with a file
	registry := preferences.NewRegistry(preferences.WithLogger(logger))
	if err := registry.RegisterAll(prefTheme, prefDebug); err != nil {
		logger.Fatal("Failed to register preferences", zap.Error(err))
	}
	if err := preferences.Watch(registry, prefTheme, func(theme string) {
		logger.Info("Theme applied", zap.String("theme", theme))
	}); err != nil {
		logger.Fatal("Failed to watch preference", zap.Error(err))
	}

	prefsPath := filepath.Join(workDir, "prefs.toml")
	if err := registry.Save(prefsPath); err != nil {
		logger.Fatal("Failed to save preferences", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := registry.WatchFile(ctx, prefsPath, preferences.WatchOptions{
		PollInterval: 200 * time.Millisecond,
		Debounce:     100 * time.Millisecond,
	})
	if err != nil {
		logger.Fatal("Failed to watch preferences file", zap.Error(err))
	}

	if err := os.WriteFile(prefsPath, []byte("[ui]\ntheme = \"light\"\n\n[log]\ndebug = \"on\"\n"), 0644); err != nil {
		logger.Fatal("Failed to edit preferences", zap.Error(err))
	}

	for ev := range events {
		logger.Info("Preference event", zap.String("kind", string(ev.Kind)), zap.String("id", ev.ID))
		if preferences.IsEnabled(registry, prefDebug) {
			cancel()
		}
	}
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

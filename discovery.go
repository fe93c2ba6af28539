// FILE: lixenwraith/confchain/discovery.go
package confchain

import (
	"path/filepath"
	"strings"
)

// DiscoveryOptions describes where Discover looks for a configuration file
type DiscoveryOptions struct {
	// Base name of the file (without extension)
	Name string

	// Extensions to try, in order
	Extensions []string

	// Custom search directories, searched before the defaults
	Paths []string

	// Environment variable holding an explicit path (highest priority)
	EnvVar string

	// Property holding an explicit path, checked after EnvVar
	Property string

	// Whether to search the current directory
	UseCurrentDir bool

	// Whether to search XDG config directories
	UseXDG bool
}

// DefaultDiscoveryOptions returns options for appName: APPNAME_CONFIG and the
// appname.config property, then ./appname.{toml,yaml,yml,json}, then XDG paths
func DefaultDiscoveryOptions(appName string) DiscoveryOptions {
	return DiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json"},
		EnvVar:        strings.ToUpper(strings.ReplaceAll(appName, "-", "_")) + "_CONFIG",
		Property:      appName + ".config",
		UseCurrentDir: true,
		UseXDG:        true,
	}
}

// Discover builds a chain of candidate configuration files. Nothing is read or
// stat'ed until the chain is resolved; Resolve reports the file that won.
func (s *Sources) Discover(opts DiscoveryOptions) *Chain {
	chain := s.New()

	if opts.EnvVar != "" {
		chain = chain.Or(s.FileFrom(s.Env(opts.EnvVar)))
	}
	if opts.Property != "" {
		chain = chain.Or(s.FileFrom(s.Property(opts.Property)))
	}

	var dirs []string
	dirs = append(dirs, opts.Paths...)
	if opts.UseCurrentDir {
		dirs = append(dirs, ".")
	}
	if opts.UseXDG {
		dirs = append(dirs, s.xdgConfigPaths(opts.Name)...)
	}

	for _, dir := range dirs {
		for _, ext := range opts.Extensions {
			chain = chain.File(filepath.Join(dir, opts.Name+ext))
		}
	}
	return chain
}

// Discover builds a discovery chain through the default Sources
func Discover(opts DiscoveryOptions) *Chain {
	return Default().Discover(opts)
}

// xdgConfigPaths returns XDG-compliant config search directories
func (s *Sources) xdgConfigPaths(appName string) []string {
	var paths []string

	if xdgHome, ok := s.env.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home, ok := s.env.LookupEnv("HOME"); ok && home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs, ok := s.env.LookupEnv("XDG_CONFIG_DIRS"); ok && xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}

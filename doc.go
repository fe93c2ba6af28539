// FILE: lixenwraith/confchain/doc.go

// Package confchain resolves configuration strings from an ordered chain of
// sources: environment variables, properties, literals, files, bundled
// resources and URLs. The first source that is set wins.
//
// Quick Start:
//
//	port, _ := confchain.New().
//	    Env("APP_PORT").
//	    Property("app.port").
//	    File("/run/secrets/app_port").
//	    Value("8080").
//	    Input()
//	n, ok := port.Int()
//
// Chains are immutable: every builder call returns a new chain, so a common base
// can be shared and extended. Resolution scans the chain on every call and stops
// at the first set source; later sources are never touched.
//
// Sources:
//   - Env reads the environment on every call
//   - Property reads a Properties table (command-line -Dkey=value, files)
//   - Value/Raw is always set, even when empty
//   - File is set when the path is a readable regular file; read on every call
//   - Resource is looked up through a Locator (embed.FS, directory, map) and cached
//   - URL is always set; content is fetched on first use and cached
//
// Capabilities are injected through Sources, which keeps tests independent of
// the real process environment:
//
//	src := confchain.NewSources(
//	    confchain.WithEnvironment(confchain.NewMapEnvironment(map[string]string{"APP_PORT": "9090"})),
//	    confchain.WithLocator(confchain.FSLocator{FS: embedded}),
//	    confchain.WithLogger(logger),
//	)
//	chain := src.New().Env("APP_PORT").Resource("defaults/port")
//
// Typed Access:
// Input conversions never fail. Missing, empty or unparsable text is reported
// through the second return value:
//
//	in, err := chain.Input()
//	timeout, ok := in.Duration()
//	hosts := in.Split() // "a, b ,c" -> [a b c]
//	month, ok := confchain.EnumOf(in, time.January, time.February, time.March)
//
// Errors:
// A source that is not set is a normal outcome. I/O and network faults of a set
// source are returned wrapped in ErrSourceRead. Malformed URLs and expressions
// fail with ErrMalformedSource.
package confchain

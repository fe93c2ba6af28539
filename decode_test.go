// FILE: lixenwraith/confchain/decode_test.go
package confchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/confchain/codec"
)

func TestParseExpression(t *testing.T) {
	props := NewProperties()
	props.Set("app.name", "demo")
	src := NewSources(
		WithEnvironment(NewMapEnvironment(map[string]string{"HOME": "/home/test"})),
		WithProperties(props),
		WithLocator(MapLocator{"defaults/name": []byte("bundled")}),
	)

	tests := []struct {
		expr string
		kind Kind
		want string
	}{
		{"env:HOME", KindEnv, "/home/test"},
		{" env : HOME ", KindEnv, "/home/test"},
		{"property:app.name", KindProperty, "demo"},
		{"prop:app.name", KindProperty, "demo"},
		{"value:literal text", KindRaw, "literal text"},
		{"raw:  two  words", KindRaw, "  two  words"},
		{"resource:defaults/name", KindResource, "bundled"},
		{"res:defaults/name", KindResource, "bundled"},
		{"ENV:HOME", KindEnv, "/home/test"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := src.Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			got, err := v.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("URL", func(t *testing.T) {
		v, err := src.Parse("url:https://example.com/config")
		require.NoError(t, err)
		assert.Equal(t, KindURL, v.Kind())
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, expr := range []string{"HOME", "secret:x", "url:ftp://host/x"} {
			_, err := src.Parse(expr)
			assert.ErrorIs(t, err, ErrMalformedSource, expr)
		}
	})
}

func TestParseChain(t *testing.T) {
	src := NewSources(
		WithEnvironment(NewMapEnvironment(map[string]string{"DB_PASSWORD": "from-env"})),
		WithProperties(NewProperties()),
	)

	chain, err := src.ParseChain("env:MISSING | env:DB_PASSWORD | value:changeme")
	require.NoError(t, err)
	assert.Equal(t, 3, chain.Len())
	assert.Equal(t, "env:MISSING | env:DB_PASSWORD | value:changeme", chain.String())

	got, err := chain.Get()
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)

	chain, err = src.ParseChain("env:A || value:x |")
	require.NoError(t, err)
	assert.Equal(t, 2, chain.Len())

	_, err = src.ParseChain("env:A | bogus")
	assert.ErrorIs(t, err, ErrMalformedSource)

	t.Run("SeparatorHasNoEscape", func(t *testing.T) {
		v, err := src.Parse("value:a|b")
		require.NoError(t, err)
		got, _ := v.Get()
		assert.Equal(t, "a|b", got)

		chain, err := src.ParseChain("value:a|value:b")
		require.NoError(t, err)
		assert.Equal(t, 2, chain.Len())
		got, _ = chain.Get()
		assert.Equal(t, "a", got)
	})
}

type databaseSettings struct {
	Host     string `yaml:"host"`
	Password *Chain `yaml:"password"`
	Port     Input  `yaml:"port"`
	Mode     Value  `yaml:"mode"`
}

func TestDecodeHook(t *testing.T) {
	src := NewSources(
		WithEnvironment(NewMapEnvironment(map[string]string{"DB_PASS": "hunter2"})),
		WithProperties(NewProperties()),
	)
	c := codec.YAML(codec.WithTagName("yaml"), codec.WithDecodeHook(src.DecodeHook()))
	require.NoError(t, c.Err())

	doc := `
host: db.local
password: "env:DB_PASS | value:changeme"
port: "env:DB_PORT | value:5432"
mode: readonly
`
	var settings databaseSettings
	require.NoError(t, c.Deserialize(doc, &settings))

	assert.Equal(t, "db.local", settings.Host)

	require.NotNil(t, settings.Password)
	password, err := settings.Password.Get()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)

	port, ok := settings.Port.Int()
	assert.True(t, ok)
	assert.Equal(t, 5432, port)

	require.NotNil(t, settings.Mode)
	mode, err := settings.Mode.Get()
	require.NoError(t, err)
	assert.Equal(t, "readonly", mode)
}

func TestDecodeHookScalars(t *testing.T) {
	src := NewSources(WithEnvironment(NewMapEnvironment(nil)), WithProperties(NewProperties()))

	var settings struct {
		Port    Input  `yaml:"port"`
		Debug   *Chain `yaml:"debug"`
		Ratio   Value  `yaml:"ratio"`
		Retries Chain  `yaml:"retries"`
	}
	c := codec.YAML(codec.WithDecodeHook(src.DecodeHook()))
	require.NoError(t, c.Deserialize("port: 5432\ndebug: true\nratio: 0.75\nretries: 3\n", &settings))

	port, ok := settings.Port.Int()
	assert.True(t, ok)
	assert.Equal(t, 5432, port)

	require.NotNil(t, settings.Debug)
	debug, err := settings.Debug.Input()
	require.NoError(t, err)
	enabled, ok := debug.Bool()
	assert.True(t, ok)
	assert.True(t, enabled)

	require.NotNil(t, settings.Ratio)
	ratio, err := settings.Ratio.Get()
	require.NoError(t, err)
	assert.Equal(t, "0.75", ratio)
	assert.Equal(t, KindRaw, settings.Ratio.Kind())

	retries, err := settings.Retries.Get()
	require.NoError(t, err)
	assert.Equal(t, "3", retries)
}

func TestDecodeValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte("host = \"0.0.0.0\"\nport = 8443\n"), 0644))

	src := NewSources(WithEnvironment(NewMapEnvironment(map[string]string{"SERVER_CONFIG": path})))

	var server struct {
		Host string `toml:"host"`
		Port int    `toml:"port"`
	}
	c := codec.TOML()
	require.NoError(t, DecodeValue(src.FileFrom(src.Env("SERVER_CONFIG")), c, &server))
	assert.Equal(t, "0.0.0.0", server.Host)
	assert.Equal(t, 8443, server.Port)

	err := DecodeValue(src.Raw("port = [unclosed"), c, &server)
	assert.Error(t, err)
}

// FILE: lixenwraith/confchain/builder.go
package confchain

import (
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultHTTPTimeout bounds URL fetches made with the default HTTP client
const DefaultHTTPTimeout = 30 * time.Second

// Sources builds Values that share injected capabilities: the environment,
// the property table, the resource locator, the HTTP client and the logger.
type Sources struct {
	env     Environment
	props   *Properties
	locator Locator
	client  *resty.Client
	logger  *zap.Logger
}

// Option configures Sources
type Option func(*Sources)

var defaultSources atomic.Pointer[Sources]

func init() {
	defaultSources.Store(NewSources())
}

// NewSources creates Sources reading the process environment, SystemProperties,
// and resources under the working directory
func NewSources(opts ...Option) *Sources {
	s := &Sources{
		env:     OSEnvironment{},
		props:   SystemProperties(),
		locator: DirLocator("."),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = resty.New().SetTimeout(DefaultHTTPTimeout)
	}
	return s
}

// WithEnvironment sets the environment accessor
func WithEnvironment(env Environment) Option {
	return func(s *Sources) {
		s.env = env
	}
}

// WithProperties sets the property table
func WithProperties(props *Properties) Option {
	return func(s *Sources) {
		s.props = props
	}
}

// WithLocator sets the resource locator
func WithLocator(locator Locator) Option {
	return func(s *Sources) {
		s.locator = locator
	}
}

// WithHTTPClient sets the client used by URL values
func WithHTTPClient(client *resty.Client) Option {
	return func(s *Sources) {
		s.client = client
	}
}

// WithHTTPTimeout sets the timeout of the default HTTP client
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(s *Sources) {
		s.client = resty.New().SetTimeout(timeout)
	}
}

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sources) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Default returns the package-level Sources
func Default() *Sources {
	return defaultSources.Load()
}

// SetDefault replaces the package-level Sources used by the top-level constructors
func SetDefault(s *Sources) {
	defaultSources.Store(s)
}

// Logger returns the logger shared by the Values built from s
func (s *Sources) Logger() *zap.Logger {
	return s.logger
}

// Properties returns the property table read by Property values
func (s *Sources) Properties() *Properties {
	return s.props
}

// Env returns a Value reading the environment variable name
func (s *Sources) Env(name string) Value {
	return &envValue{name: name, env: s.env}
}

// Property returns a Value reading the property name
func (s *Sources) Property(name string) Value {
	return &propertyValue{name: name, props: s.props}
}

// Raw returns a Value holding the literal v
func (s *Sources) Raw(v string) Value {
	return rawValue(v)
}

// File returns a Value reading the file at path
func (s *Sources) File(path string) Value {
	return &fileValue{path: path, logger: s.logger}
}

// FileFrom returns a Value reading the file whose path is held by path
func (s *Sources) FileFrom(path Value) Value {
	return &indirectFileValue{path: path, logger: s.logger}
}

// Resource returns a Value reading a bundled resource through the locator
func (s *Sources) Resource(path string) Value {
	return &resourceValue{path: path, locator: s.locator, logger: s.logger}
}

// URL returns a Value fetching location. Only http, https and file URLs are accepted.
func (s *Sources) URL(location string) (Value, error) {
	v, err := newURLValue(location, s.client, s.logger)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// New starts an empty chain whose builders use s
func (s *Sources) New() *Chain {
	return &Chain{sources: s}
}

// Env returns a Value reading an environment variable through the default Sources
func Env(name string) Value { return Default().Env(name) }

// Property returns a Value reading a property through the default Sources
func Property(name string) Value { return Default().Property(name) }

// Raw returns a Value holding a literal
func Raw(v string) Value { return Default().Raw(v) }

// File returns a Value reading a local file
func File(path string) Value { return Default().File(path) }

// Resource returns a Value reading a resource through the default Sources
func Resource(path string) Value { return Default().Resource(path) }

// URL returns a Value fetching location through the default Sources
func URL(location string) (Value, error) { return Default().URL(location) }

// New starts an empty chain bound to the default Sources
func New() *Chain { return Default().New() }

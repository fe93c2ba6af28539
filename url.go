// FILE: lixenwraith/confchain/url.go
package confchain

import (
	"fmt"
	"net/url"
	"os"
	"sync"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// urlValue fetches remote content on the first Get and caches it for the life of
// the instance. Failed fetches are not cached.
type urlValue struct {
	location *url.URL
	client   *resty.Client
	logger   *zap.Logger

	mu      sync.Mutex
	loaded  bool
	content string
}

func newURLValue(location string, client *resty.Client, logger *zap.Logger) (*urlValue, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: url %q: %w", ErrMalformedSource, location, err)
	}

	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: url %q has no host", ErrMalformedSource, location)
		}
	case "file":
		if u.Path == "" {
			return nil, fmt.Errorf("%w: url %q has no path", ErrMalformedSource, location)
		}
	default:
		return nil, fmt.Errorf("%w: url %q has unsupported scheme %q", ErrMalformedSource, location, u.Scheme)
	}

	return &urlValue{location: u, client: client, logger: logger}, nil
}

// IsSet is always true; availability is only known after fetching
func (v *urlValue) IsSet() bool {
	return true
}

func (v *urlValue) Get() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.loaded {
		return v.content, nil
	}

	content, err := v.fetch()
	if err != nil {
		v.logger.Warn("URL fetch failed", zap.String("url", v.location.Redacted()), zap.Error(err))
		return "", fmt.Errorf("%w: url '%s': %w", ErrSourceRead, v.location.Redacted(), err)
	}

	v.content = content
	v.loaded = true
	v.logger.Debug("URL content cached", zap.String("url", v.location.Redacted()), zap.Int("bytes", len(content)))
	return v.content, nil
}

func (v *urlValue) Read() (string, error) {
	return v.Get()
}

func (v *urlValue) fetch() (string, error) {
	if v.location.Scheme == "file" {
		data, err := os.ReadFile(v.location.Path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	resp, err := v.client.R().Get(v.location.String())
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("unexpected status %s", resp.Status())
	}
	return string(resp.Body()), nil
}

func (v *urlValue) Kind() Kind {
	return KindURL
}

func (v *urlValue) String() string {
	return string(KindURL) + ":" + v.location.Redacted()
}

// FILE: lixenwraith/confchain/codec/hooks.go
package codec

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// decodeHook composes user hooks with the built-in conversions
func (c *Codec) decodeHook() mapstructure.DecodeHookFunc {
	hooks := make([]mapstructure.DecodeHookFunc, 0, len(c.hooks)+7)
	hooks = append(hooks, c.hooks...)
	hooks = append(hooks,
		// Network types
		parseHook(parseIP),
		parseHook(parseCIDR),
		parseHook(parseURL),

		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),

		// Version numbers and other encoding.TextUnmarshaler types
		mapstructure.TextUnmarshallerHookFunc(),
	)
	return mapstructure.ComposeDecodeHookFunc(hooks...)
}

// parseHook converts strings into T, or *T, using parse
func parseHook[T any](parse func(string) (T, error)) mapstructure.DecodeHookFunc {
	target := reflect.TypeFor[T]()

	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Pointer
		if isPtr {
			t = t.Elem()
		}
		if t != target {
			return data, nil
		}

		v, err := parse(reflect.ValueOf(data).String())
		if err != nil {
			return nil, err
		}
		if isPtr {
			return &v, nil
		}
		return v, nil
	}
}

func parseIP(s string) (net.IP, error) {
	if len(s) > 45 { // max IPv6 text length
		return nil, fmt.Errorf("invalid IP length: %d", len(s))
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address: %s", s)
	}
	return ip, nil
}

func parseCIDR(s string) (net.IPNet, error) {
	if len(s) > 49 { // max IPv6 CIDR length
		return net.IPNet{}, fmt.Errorf("invalid CIDR length: %d", len(s))
	}
	_, ipnet, err := net.ParseCIDR(s)
	if err != nil {
		return net.IPNet{}, fmt.Errorf("invalid CIDR: %w", err)
	}
	return *ipnet, nil
}

func parseURL(s string) (url.URL, error) {
	if len(s) > 2048 {
		return url.URL{}, fmt.Errorf("URL too long: %d bytes", len(s))
	}
	u, err := url.Parse(s)
	if err != nil {
		return url.URL{}, fmt.Errorf("invalid URL: %w", err)
	}
	return *u, nil
}

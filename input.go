// FILE: lixenwraith/confchain/input.go
package confchain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultSplitPattern separates list items: a comma with optional surrounding whitespace
var DefaultSplitPattern = regexp.MustCompile(`\s*,\s*`)

var enumReplacer = strings.NewReplacer("-", "_", ".", "_", " ", "_")

// Input is a possibly absent string with lenient typed conversions.
// Conversions never fail: missing, empty or unparsable text yields ok == false.
type Input struct {
	value   string
	present bool
}

// Absent is the Input with no value
var Absent = Input{}

// InputOf wraps s as a present Input
func InputOf(s string) Input {
	return Input{value: s, present: true}
}

// ValueInput resolves v into an Input; an unset Value gives Absent
func ValueInput(v Value) (Input, error) {
	if !v.IsSet() {
		return Absent, nil
	}
	s, err := v.Get()
	if err != nil {
		return Absent, err
	}
	return InputOf(s), nil
}

// Present reports whether a value, possibly empty, exists
func (in Input) Present() bool {
	return in.present
}

// Raw returns the value as stored, including an empty string
func (in Input) Raw() (string, bool) {
	return in.value, in.present
}

// Text returns the value, treating an empty string as absent
func (in Input) Text() (string, bool) {
	if !in.present || in.value == "" {
		return "", false
	}
	return in.value, true
}

// TextOr returns the text or fallback when absent
func (in Input) TextOr(fallback string) string {
	if s, ok := in.Text(); ok {
		return s
	}
	return fallback
}

// Int parses a base-10 integer in the 32-bit range; larger values are absent
func (in Input) Int() (int, bool) {
	return parse(in, func(s string) (int, error) {
		n, err := strconv.ParseInt(s, 10, 32)
		return int(n), err
	})
}

// Int64 parses a base-10 int64
func (in Input) Int64() (int64, bool) {
	return parse(in, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// Float64 parses a float64
func (in Input) Float64() (float64, bool) {
	return parse(in, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// Bool is true only for "true" in any letter case. Any other text is false, not absent.
func (in Input) Bool() (bool, bool) {
	s, ok := in.Text()
	if !ok {
		return false, false
	}
	return strings.EqualFold(s, "true"), true
}

// Time parses the text with a time.Parse layout
func (in Input) Time(layout string) (time.Time, bool) {
	return parse(in, func(s string) (time.Time, error) {
		return time.Parse(layout, s)
	})
}

// Duration parses a time.ParseDuration string
func (in Input) Duration() (time.Duration, bool) {
	return parse(in, time.ParseDuration)
}

// Split separates the text on DefaultSplitPattern, keeping order.
// Trailing empty items are dropped; absent text gives nil.
func (in Input) Split() []string {
	return in.SplitBy(DefaultSplitPattern)
}

// SplitBy separates the text on pattern, dropping trailing empty items
func (in Input) SplitBy(pattern *regexp.Regexp) []string {
	s, ok := in.Text()
	if !ok {
		return nil
	}

	parts := pattern.Split(s, -1)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// String returns the text, or "" when absent
func (in Input) String() string {
	return in.value
}

// Map converts the text with fn; a conversion error gives ok == false
func Map[T any](in Input, fn func(string) (T, error)) (T, bool) {
	return parse(in, fn)
}

// SplitMap splits the text and converts each item, skipping items fn rejects
func SplitMap[T any](in Input, fn func(string) (T, error)) []T {
	var result []T
	for _, item := range in.Split() {
		if v, err := fn(item); err == nil {
			result = append(result, v)
		}
	}
	return result
}

// Enum looks the normalized text up among constants keyed by name.
// Normalization upper-cases the text and replaces '-', '.' and ' ' with '_'.
func Enum[T any](in Input, constants map[string]T) (T, bool) {
	var zero T
	s, ok := in.Text()
	if !ok {
		return zero, false
	}
	v, ok := constants[NormalizeEnum(s)]
	return v, ok
}

// EnumOf matches the normalized text against the normalized String() of each value
func EnumOf[T fmt.Stringer](in Input, values ...T) (T, bool) {
	var zero T
	s, ok := in.Text()
	if !ok {
		return zero, false
	}

	name := NormalizeEnum(s)
	for _, v := range values {
		if NormalizeEnum(v.String()) == name {
			return v, true
		}
	}
	return zero, false
}

// NormalizeEnum upper-cases s and replaces '-', '.' and ' ' with '_'
func NormalizeEnum(s string) string {
	return enumReplacer.Replace(strings.ToUpper(s))
}

func parse[T any](in Input, fn func(string) (T, error)) (T, bool) {
	var zero T
	s, ok := in.Text()
	if !ok {
		return zero, false
	}
	v, err := fn(s)
	if err != nil {
		return zero, false
	}
	return v, true
}

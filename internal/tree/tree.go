// FILE: lixenwraith/confchain/internal/tree/tree.go

// Package tree converts between nested document maps and flat dot-notation keys.
package tree

import "strings"

// Flatten converts a nested map[string]any to a flat map with dot-notation paths.
func Flatten(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if sub, isMap := value.(map[string]any); isMap && len(sub) > 0 {
			for subPath, subValue := range Flatten(sub, path) {
				flat[subPath] = subValue
			}
			continue
		}
		flat[path] = value
	}

	return flat
}

// SetNested sets a value in a nested map using a dot-notation path.
// Intermediate maps are created when missing; a non-map segment is replaced by a map.
func SetNested(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for _, segment := range segments[:len(segments)-1] {
		if next, ok := current[segment].(map[string]any); ok {
			current = next
			continue
		}
		next := make(map[string]any)
		current[segment] = next
		current = next
	}

	current[segments[len(segments)-1]] = value
}

// Navigate walks a nested map down a dot-notation path.
// Returns nil when any segment is missing or not a map.
func Navigate(nested map[string]any, path string) any {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	current := any(nested)
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		value, exists := m[segment]
		if !exists {
			return nil
		}
		current = value
	}

	return current
}

// ValidKeySegment reports whether s is a valid bare key segment (A-Za-z0-9_-).
func ValidKeySegment(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// ValidPath reports whether every dot-separated segment of path is valid.
func ValidPath(path string) bool {
	for _, segment := range strings.Split(path, ".") {
		if !ValidKeySegment(segment) {
			return false
		}
	}
	return true
}

// Package mapsafe provides typed lookups into the loosely typed
// map[string]any parameter bags that travel with rewrite and speech requests.
package mapsafe

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the type cannot be converted, it returns the
// default value. Numeric cross-conversions cover the JSON decoding case
// where every number arrives as float64.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	val, ok := m[key]
	if !ok {
		return defaultValue
	}

	switch any(defaultValue).(type) {
	case int:
		switch x := val.(type) {
		case int:
			return any(x).(T)
		case float64:
			return any(int(x)).(T)
		}
	case float64:
		switch x := val.(type) {
		case float64:
			return any(x).(T)
		case float32:
			return any(float64(x)).(T)
		case int:
			return any(float64(x)).(T)
		}
	case float32:
		switch x := val.(type) {
		case float32:
			return any(x).(T)
		case float64:
			return any(float32(x)).(T)
		case int:
			return any(float32(x)).(T)
		}
	case string:
		if s, ok := val.(string); ok {
			return any(s).(T)
		}
	case bool:
		if b, ok := val.(bool); ok {
			return any(b).(T)
		}
	default:
		if v2, ok := val.(T); ok {
			return v2
		}
	}

	return defaultValue
}

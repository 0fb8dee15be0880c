package config

import (
	"reflect"
)

// GetBoolValue dereferences an optional boolean setting, falling back to the
// provided default when the setting was not present in the config file.
func GetBoolValue(value *bool, defaultValue bool) bool {
	if value == nil {
		return defaultValue
	}
	return *value
}

// SetThen provides a utility to select the first value if set, otherwise defaults.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}
